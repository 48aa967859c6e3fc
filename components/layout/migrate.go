package layout

import (
	"sort"

	"github.com/google/uuid"
)

// Schema version tags carried by the persisted blob.
const (
	// SchemaVersion tags layouts produced by the current migration engine.
	SchemaVersion = "2.0"
	// LegacySchemaVersion is the tag of the first portal release, whose
	// blob still contained the countdown widget type.
	LegacySchemaVersion = "1.0"
)

// NeedsMigration reports whether a stored layout must be run through
// Migrate before use. Any version other than the current one (including
// the empty tag of the legacy array-only blob) forces a migration.
func NeedsMigration(raw RawLayout) bool {
	return raw.Version != SchemaVersion
}

// Migrate upgrades a stored layout of unknown or older shape to the
// current schema. It is pure, deterministic, and idempotent: running it
// on already-migrated data is a no-op apart from the version tag.
//
// Steps, each independently idempotent:
//  1. rewrite historically shipped types per the catalog rename table,
//     resetting the title to the new type's catalog default;
//  2. backfill required widget types, front-anchored ones before the
//     current minimum order, back-anchored ones after the maximum;
//  3. renumber orders contiguously 1..N preserving relative order.
//
// Placements whose type has no catalog entry are preserved untouched;
// they are skipped at render time only, so the type can become valid
// again after a catalog rollback.
func Migrate(raw RawLayout, catalog *Catalog) Layout {
	widgets := make([]WidgetPlacement, len(raw.Widgets))
	copy(widgets, raw.Widgets)

	widgets = applyRenames(widgets, catalog)
	widgets = backfillRequired(widgets, catalog)
	normalizeOrder(widgets)

	return Layout{Version: SchemaVersion, Widgets: widgets}
}

func applyRenames(widgets []WidgetPlacement, catalog *Catalog) []WidgetPlacement {
	for i, p := range widgets {
		current, renamed := catalog.Canonical(p.Type)
		if !renamed {
			continue
		}
		widgets[i].Type = current
		if entry, ok := catalog.Entry(current); ok {
			widgets[i].Title = entry.Name
		}
	}
	return widgets
}

func backfillRequired(widgets []WidgetPlacement, catalog *Catalog) []WidgetPlacement {
	for _, entry := range catalog.Required() {
		if hasType(widgets, entry.Type) {
			continue
		}
		placement := WidgetPlacement{
			ID:        freeID(widgets, entry.Type),
			Type:      entry.Type,
			Title:     entry.Name,
			Size:      entry.DefaultSize,
			IsVisible: true,
		}
		if entry.Anchor == AnchorFront {
			min := minOrder(widgets)
			for i := range widgets {
				widgets[i].Order++
			}
			placement.Order = min
			widgets = append([]WidgetPlacement{placement}, widgets...)
			continue
		}
		placement.Order = maxOrder(widgets) + 1
		widgets = append(widgets, placement)
	}
	return widgets
}

// normalizeOrder renumbers orders to exactly {1..N}, visible and hidden
// alike, preserving the relative order of equal keys. Only stored Order
// values decide the sequence; callers that have already arranged the
// slice must use renumber instead.
func normalizeOrder(widgets []WidgetPlacement) {
	sort.SliceStable(widgets, func(i, j int) bool {
		return widgets[i].Order < widgets[j].Order
	})
	renumber(widgets)
}

// renumber assigns orders 1..N by slice position.
func renumber(widgets []WidgetPlacement) {
	for i := range widgets {
		widgets[i].Order = i + 1
	}
}

func hasType(widgets []WidgetPlacement, t WidgetType) bool {
	for _, p := range widgets {
		if p.Type == t {
			return true
		}
	}
	return false
}

// freeID prefers the type slug as the placement id and only falls back
// to a random id when a stored placement already claims the slug.
func freeID(widgets []WidgetPlacement, t WidgetType) string {
	id := string(t)
	for _, p := range widgets {
		if p.ID == id {
			return uuid.NewString()
		}
	}
	return id
}

func minOrder(widgets []WidgetPlacement) int {
	if len(widgets) == 0 {
		return 1
	}
	min := widgets[0].Order
	for _, p := range widgets[1:] {
		if p.Order < min {
			min = p.Order
		}
	}
	return min
}

func maxOrder(widgets []WidgetPlacement) int {
	max := 0
	for _, p := range widgets {
		if p.Order > max {
			max = p.Order
		}
	}
	return max
}
