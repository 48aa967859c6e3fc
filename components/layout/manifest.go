package layout

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	packVersionV1 = "1"
	// PackVersion exposes the current catalog pack format version for tooling.
	PackVersion = packVersionV1
)

// CatalogPackDocument models a YAML/JSON document extending the widget
// catalog with extra widget types and historical type renames.
type CatalogPackDocument struct {
	Version string       `json:"version" yaml:"version"`
	Name    string       `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []PackWidget `json:"widgets" yaml:"widgets"`
	Renames []PackRename `json:"renames,omitempty" yaml:"renames,omitempty"`
	Source  string       `json:"-" yaml:"-"`
}

// PackWidget describes a single catalog entry within a pack.
type PackWidget struct {
	Type          string            `json:"type" yaml:"type"`
	Name          string            `json:"name" yaml:"name"`
	NameLocalized map[string]string `json:"name_localized,omitempty" yaml:"name_localized,omitempty"`
	Description   string            `json:"description,omitempty" yaml:"description,omitempty"`
	Category      string            `json:"category,omitempty" yaml:"category,omitempty"`
	DefaultSize   string            `json:"default_size,omitempty" yaml:"default_size,omitempty"`
	Required      bool              `json:"required,omitempty" yaml:"required,omitempty"`
	Anchor        string            `json:"anchor,omitempty" yaml:"anchor,omitempty"`
}

// PackRename records one historical type rename.
type PackRename struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// LoadPackFile reads a catalog pack from disk, registers it, and returns
// the document.
func (c *Catalog) LoadPackFile(path string) (*CatalogPackDocument, error) {
	doc, err := ReadPack(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadPackDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadPackDocument registers entries and renames from a decoded pack.
func (c *Catalog) LoadPackDocument(doc *CatalogPackDocument) error {
	if doc == nil {
		return fmt.Errorf("layout: catalog pack document is nil")
	}
	for _, widget := range doc.Widgets {
		entry := CatalogEntry{
			Type:          WidgetType(widget.Type),
			Name:          widget.Name,
			NameLocalized: widget.NameLocalized,
			Description:   widget.Description,
			Category:      widget.Category,
			DefaultSize:   Size(widget.DefaultSize),
			Required:      widget.Required,
			Anchor:        Anchor(widget.Anchor),
		}
		if err := c.Register(entry); err != nil {
			return fmt.Errorf("layout: register widget %s from %s: %w", widget.Type, doc.Source, err)
		}
	}
	for _, rename := range doc.Renames {
		if err := c.RegisterRename(WidgetType(rename.From), WidgetType(rename.To)); err != nil {
			return fmt.Errorf("layout: register rename from %s: %w", doc.Source, err)
		}
	}
	return nil
}

// ReadPack loads a catalog pack file from disk without registering it.
func ReadPack(path string) (*CatalogPackDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("layout: open catalog pack %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodePack(f)
	if err != nil {
		return nil, fmt.Errorf("layout: decode catalog pack %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodePack reads a catalog pack from any reader.
func DecodePack(r io.Reader) (*CatalogPackDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc CatalogPackDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("layout: catalog pack is empty")
		}
		return nil, fmt.Errorf("layout: parse catalog pack: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the pack satisfies required fields.
func (doc *CatalogPackDocument) Validate() error {
	if doc.Version != packVersionV1 {
		return fmt.Errorf("layout: unsupported catalog pack version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, widget := range doc.Widgets {
		if widget.Type == "" {
			return fmt.Errorf("layout: pack widget at index %d is missing type", idx)
		}
		if widget.Name == "" {
			return fmt.Errorf("layout: pack widget %s missing name", widget.Type)
		}
		if widget.DefaultSize != "" && !Size(widget.DefaultSize).Valid() {
			return fmt.Errorf("layout: pack widget %s has invalid default_size %q", widget.Type, widget.DefaultSize)
		}
		if _, exists := seen[widget.Type]; exists {
			return fmt.Errorf("layout: pack duplicates widget type %s", widget.Type)
		}
		seen[widget.Type] = struct{}{}
	}
	for _, rename := range doc.Renames {
		if rename.From == "" || rename.To == "" {
			return fmt.Errorf("layout: pack rename requires both from and to")
		}
	}
	return nil
}

func (doc *CatalogPackDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = packVersionV1
	}
}
