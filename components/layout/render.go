package layout

import "sort"

// ResolvedWidget pairs a placement with its catalog entry, ready for the
// presentation layer.
type ResolvedWidget struct {
	Placement WidgetPlacement
	Entry     CatalogEntry
}

// VisibleWidgets returns the render list: visible placements whose type
// is known to the catalog, ascending by order. Placements with unknown
// types are skipped here but never deleted from the layout; they come
// back automatically if the type becomes valid again.
func VisibleWidgets(l Layout, catalog *Catalog) []ResolvedWidget {
	return resolve(l, catalog, true)
}

// ListWidgets returns the widget-manager listing: every placement with a
// catalog entry, hidden ones included, ascending by order.
func ListWidgets(l Layout, catalog *Catalog) []ResolvedWidget {
	return resolve(l, catalog, false)
}

// Orphans returns the placements whose type has no catalog entry. They
// are reported for tooling, not rendered and not removed.
func Orphans(l Layout, catalog *Catalog) []WidgetPlacement {
	var out []WidgetPlacement
	for _, p := range l.Widgets {
		if _, ok := catalog.Entry(p.Type); !ok {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

func resolve(l Layout, catalog *Catalog, visibleOnly bool) []ResolvedWidget {
	out := make([]ResolvedWidget, 0, len(l.Widgets))
	for _, p := range l.Widgets {
		if visibleOnly && !p.IsVisible {
			continue
		}
		entry, ok := catalog.Entry(p.Type)
		if !ok {
			continue
		}
		out = append(out, ResolvedWidget{Placement: p, Entry: entry})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Placement.Order < out[j].Placement.Order
	})
	return out
}
