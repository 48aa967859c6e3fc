package layout

import (
	"fmt"
	"sort"
	"sync"
)

// CatalogHook lets packages extend the widget catalog during init().
type CatalogHook func(c *Catalog) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CatalogHook
)

// RegisterCatalogHook registers a hook executed against new catalogs.
func RegisterCatalogHook(h CatalogHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// Anchor declares where a backfilled required widget is inserted relative
// to the placements already present.
type Anchor string

// Anchor positions for required widgets.
const (
	AnchorFront Anchor = "front"
	AnchorBack  Anchor = "back"
)

// CatalogEntry describes a widget type known to the portal: its default
// size, display metadata, and whether the migration engine must
// guarantee a placement of this type exists.
type CatalogEntry struct {
	Type          WidgetType
	Name          string
	NameLocalized map[string]string
	Description   string
	Category      string
	DefaultSize   Size
	Required      bool
	Anchor        Anchor
}

// Catalog is the static registry of known widget types plus the table of
// historical type renames consumed by the migration engine.
type Catalog struct {
	mu      sync.RWMutex
	entries map[WidgetType]CatalogEntry
	renames map[WidgetType]WidgetType
}

// NewCatalog builds a catalog seeded with the built-in portal widgets and
// applies global hooks.
func NewCatalog() *Catalog {
	c := &Catalog{
		entries: map[WidgetType]CatalogEntry{},
		renames: map[WidgetType]WidgetType{},
	}
	for _, entry := range DefaultCatalogEntries() {
		_ = c.Register(entry)
	}
	for from, to := range defaultRenames {
		_ = c.RegisterRename(from, to)
	}
	_ = c.ApplyHooks()
	return c
}

// ApplyHooks executes registered catalog hooks.
func (c *Catalog) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

// Register stores a widget type entry. Entries with no default size fall
// back to medium; entries with no anchor fall back to back.
func (c *Catalog) Register(entry CatalogEntry) error {
	if entry.Type == "" {
		return fmt.Errorf("layout: catalog entry type is required")
	}
	if entry.DefaultSize == "" {
		entry.DefaultSize = SizeMedium
	}
	if !entry.DefaultSize.Valid() {
		return fmt.Errorf("layout: catalog entry %s has invalid size %q", entry.Type, entry.DefaultSize)
	}
	if entry.Anchor == "" {
		entry.Anchor = AnchorBack
	}
	if entry.Anchor != AnchorFront && entry.Anchor != AnchorBack {
		return fmt.Errorf("layout: catalog entry %s has invalid anchor %q", entry.Type, entry.Anchor)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[entry.Type] = entry
	return nil
}

// RegisterRename records that placements persisted with the historical
// type `from` must be rewritten to `to`. The rename table must stay
// total: every type that ever shipped is either current or renamed.
func (c *Catalog) RegisterRename(from, to WidgetType) error {
	if from == "" || to == "" {
		return fmt.Errorf("layout: rename requires both a from and a to type")
	}
	if from == to {
		return fmt.Errorf("layout: rename %s to itself is not allowed", from)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[from]; ok {
		return fmt.Errorf("layout: cannot rename %s, it is a current catalog type", from)
	}
	c.renames[from] = to
	return nil
}

// Entry fetches a catalog entry by widget type.
func (c *Catalog) Entry(t WidgetType) (CatalogEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[t]
	return entry, ok
}

// Entries returns all registered entries, sorted by type for stable
// listings.
func (c *Catalog) Entries() []CatalogEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]CatalogEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		out = append(out, entry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out
}

// Required returns the entries the migration engine must backfill,
// front-anchored entries first.
func (c *Catalog) Required() []CatalogEntry {
	entries := c.Entries()
	out := entries[:0:0]
	for _, entry := range entries {
		if entry.Required && entry.Anchor == AnchorFront {
			out = append(out, entry)
		}
	}
	for _, entry := range entries {
		if entry.Required && entry.Anchor == AnchorBack {
			out = append(out, entry)
		}
	}
	return out
}

// Canonical follows the rename table until it reaches a type with no
// further rename. ok reports whether any rewrite applied. Chains are
// bounded by the table size, so a cycle cannot loop forever.
func (c *Catalog) Canonical(t WidgetType) (WidgetType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	renamed := false
	for range c.renames {
		next, ok := c.renames[t]
		if !ok {
			break
		}
		t = next
		renamed = true
	}
	return t, renamed
}
