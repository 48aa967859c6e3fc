package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	layout "github.com/intrakit/intraboard/components/layout"
)

type cli struct {
	Inspect  inspectCmd  `cmd:"" help:"Print the stored layout for a slot, migrating it first when stale."`
	Migrate  migrateCmd  `cmd:"" help:"Upgrade a stored layout to the current schema version."`
	Reset    resetCmd    `cmd:"" help:"Discard a stored layout and re-seed the default dashboard."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget definition to a catalog pack file."`
}

type storeFlags struct {
	DB   string `required:"" type:"path" help:"Path to the layout SQLite database."`
	Slot string `default:"default" help:"Layout slot (one per user profile)."`
	Pack string `type:"path" help:"Optional catalog pack YAML to load on top of the built-in widgets."`
}

type inspectCmd struct {
	storeFlags
	JSON bool `help:"Emit the layout as JSON instead of a table."`
}

type migrateCmd struct {
	storeFlags
}

type resetCmd struct {
	storeFlags
}

type scaffoldCmd struct {
	Type        string `required:"" help:"Widget type slug (e.g. weather)."`
	Name        string `help:"Display name (defaults to a title-cased form of the type)."`
	Description string `help:"One-line description used in the catalog."`
	Category    string `default:"custom" help:"Widget category."`
	Size        string `default:"medium" help:"Default size tag (small, medium, large, full)."`
	Required    bool   `help:"Mark the widget as required so migration backfills it."`
	Anchor      string `help:"Backfill anchor (front or back)."`
	PackPath    string `required:"" type:"path" help:"Path to the catalog pack YAML file to update."`
	Overwrite   bool   `help:"Replace an existing pack entry of the same type."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Layout maintenance utility for intraboard dashboards."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (f storeFlags) controller(ctx context.Context) (*layout.Controller, func() error, error) {
	store, err := layout.NewSQLiteStore(f.DB, f.Slot)
	if err != nil {
		return nil, nil, err
	}
	catalog := layout.NewCatalog()
	if f.Pack != "" {
		if _, err := catalog.LoadPackFile(f.Pack); err != nil {
			store.Close()
			return nil, nil, err
		}
	}
	controller := layout.NewController(layout.Options{Store: store, Catalog: catalog})
	return controller, store.Close, nil
}

func (cmd *inspectCmd) Run(ctx context.Context) error {
	controller, closeStore, err := cmd.controller(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	current := controller.Initialize(ctx)
	if cmd.JSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(current)
	}

	fmt.Fprintf(os.Stdout, "slot %s (schema %s)\n", cmd.Slot, current.Version)
	for _, resolved := range layout.ListWidgets(current, controller.Catalog()) {
		p := resolved.Placement
		visibility := "visible"
		if !p.IsVisible {
			visibility = "hidden"
		}
		fmt.Fprintf(os.Stdout, "%2d  %-12s %-10s %-8s %s\n", p.Order, p.Type, p.Size, visibility, p.Title)
	}
	orphans := layout.Orphans(current, controller.Catalog())
	if len(orphans) > 0 {
		names := make([]string, len(orphans))
		for i, p := range orphans {
			names[i] = string(p.Type)
		}
		fmt.Fprintf(os.Stdout, "orphaned types: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func (cmd *migrateCmd) Run(ctx context.Context) error {
	controller, closeStore, err := cmd.controller(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	current := controller.Initialize(ctx)
	fmt.Fprintf(os.Stdout, "✓ slot %s is at schema %s (%d widgets)\n", cmd.Slot, current.Version, len(current.Widgets))
	return nil
}

func (cmd *resetCmd) Run(ctx context.Context) error {
	controller, closeStore, err := cmd.controller(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	current := controller.Reset(ctx)
	fmt.Fprintf(os.Stdout, "✓ slot %s reset to the default dashboard (%d widgets)\n", cmd.Slot, len(current.Widgets))
	return nil
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	packPath, err := filepath.Abs(cmd.PackPath)
	if err != nil {
		return fmt.Errorf("layoutctl: resolve pack path: %w", err)
	}
	doc, err := loadOrInitPack(packPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, widget := range doc.Widgets {
			if widget.Type == cmd.Type {
				return fmt.Errorf("layoutctl: pack already defines widget %s (use --overwrite to replace)", cmd.Type)
			}
		}
	}

	name := cmd.Name
	if name == "" {
		name = strcase.ToCase(cmd.Type, strcase.TitleCase, ' ')
	}
	entry := layout.PackWidget{
		Type:        cmd.Type,
		Name:        name,
		Description: cmd.Description,
		Category:    cmd.Category,
		DefaultSize: cmd.Size,
		Required:    cmd.Required,
		Anchor:      cmd.Anchor,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Widgets {
			if doc.Widgets[idx].Type == cmd.Type {
				doc.Widgets[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Widgets = append(doc.Widgets, entry)
		}
	} else {
		doc.Widgets = append(doc.Widgets, entry)
	}

	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Type < doc.Widgets[j].Type
	})

	if err := writePack(packPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Type, packPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	if strings.TrimSpace(cmd.Type) == "" {
		return errors.New("layoutctl: widget type is required")
	}
	if !layout.Size(cmd.Size).Valid() {
		return fmt.Errorf("layoutctl: invalid size %q", cmd.Size)
	}
	if cmd.Anchor != "" && cmd.Anchor != string(layout.AnchorFront) && cmd.Anchor != string(layout.AnchorBack) {
		return fmt.Errorf("layoutctl: invalid anchor %q (use front or back)", cmd.Anchor)
	}
	return nil
}

func loadOrInitPack(path string) (*layout.CatalogPackDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &layout.CatalogPackDocument{
				Version: layout.PackVersion,
				Widgets: []layout.PackWidget{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("layoutctl: stat pack: %w", err)
	}
	doc, err := layout.ReadPack(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writePack(path string, doc *layout.CatalogPackDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("layoutctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("layoutctl: create pack %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("layoutctl: write pack: %w", err)
	}
	return nil
}
