package queries

import (
	"context"
	"testing"

	layout "github.com/intrakit/intraboard/components/layout"
)

func newTestController(t *testing.T) *layout.Controller {
	t.Helper()
	ctrl := layout.NewController(layout.Options{Store: layout.NewMemoryStore()})
	ctrl.Initialize(context.Background())
	return ctrl
}

func TestLayoutQueryReturnsSeededLayout(t *testing.T) {
	q := NewLayoutQuery(newTestController(t))

	out, err := q.Query(context.Background(), LayoutQueryInput{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if out.Version != layout.SchemaVersion {
		t.Fatalf("expected version %q, got %q", layout.SchemaVersion, out.Version)
	}
	if len(out.Widgets) != 7 {
		t.Fatalf("expected 7 widgets, got %d", len(out.Widgets))
	}
	if len(out.Orphans) != 0 {
		t.Fatalf("expected no orphans, got %v", out.Orphans)
	}
	for i, w := range out.Widgets {
		if w.Placement.Order != i+1 {
			t.Fatalf("widget %d has order %d", i, w.Placement.Order)
		}
		if w.Entry.Type != w.Placement.Type {
			t.Fatalf("widget %s resolved to entry %s", w.Placement.Type, w.Entry.Type)
		}
	}
}

func TestLayoutQueryVisibleOnly(t *testing.T) {
	ctrl := newTestController(t)
	ctx := context.Background()
	ctrl.ToggleVisibility(ctx, string(layout.TypeMenu))

	q := NewLayoutQuery(ctrl)
	out, err := q.Query(ctx, LayoutQueryInput{VisibleOnly: true})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out.Widgets) != 6 {
		t.Fatalf("expected 6 visible widgets, got %d", len(out.Widgets))
	}
	for _, w := range out.Widgets {
		if w.Placement.Type == layout.TypeMenu {
			t.Fatal("hidden menu widget leaked into visible listing")
		}
	}
}

func TestLayoutQueryRequiresController(t *testing.T) {
	q := NewLayoutQuery(nil)
	if _, err := q.Query(context.Background(), LayoutQueryInput{}); err == nil {
		t.Fatal("expected error without controller")
	}
}

func TestCatalogQueryListsEntries(t *testing.T) {
	q := NewCatalogQuery(newTestController(t))

	out, err := q.Query(context.Background(), CatalogQueryInput{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out.Entries) != 7 {
		t.Fatalf("expected 7 catalog entries, got %d", len(out.Entries))
	}
}

func TestCatalogQueryFiltersByCategory(t *testing.T) {
	q := NewCatalogQuery(newTestController(t))

	all, err := q.Query(context.Background(), CatalogQueryInput{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	want := all.Entries[0].Category

	out, err := q.Query(context.Background(), CatalogQueryInput{Category: want})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out.Entries) == 0 {
		t.Fatalf("expected entries for category %q", want)
	}
	for _, entry := range out.Entries {
		if entry.Category != want {
			t.Fatalf("entry %s has category %q, want %q", entry.Type, entry.Category, want)
		}
	}
}
