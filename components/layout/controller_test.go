package layout

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestInitializeOnEmptyStorageSeedsDefaults(t *testing.T) {
	ctrl := NewController(Options{})
	l := ctrl.Initialize(context.Background())
	if len(l.Widgets) != 7 {
		t.Fatalf("expected 7 seed placements, got %d", len(l.Widgets))
	}
	assertContiguous(t, l)
	types := map[WidgetType]bool{}
	for _, p := range l.Widgets {
		if !p.IsVisible {
			t.Fatalf("expected seed placements visible, got %#v", p)
		}
		types[p.Type] = true
	}
	for _, want := range []WidgetType{TypeDirector, TypeNews, TypeSafety, TypeCalendar, TypeIdeas, TypeApps, TypeMenu} {
		if !types[want] {
			t.Fatalf("expected seed type %q, got %v", want, types)
		}
	}
}

func TestInitializePersistsSeedAndMigration(t *testing.T) {
	store := NewMemoryStore()
	ctrl := NewController(Options{Store: store})
	ctrl.Initialize(context.Background())
	raw, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected seed persisted, ok=%v err=%v", ok, err)
	}
	if raw.Version != SchemaVersion {
		t.Fatalf("expected version tag %q persisted, got %q", SchemaVersion, raw.Version)
	}
}

func TestInitializeMigratesStaleVersion(t *testing.T) {
	store := NewMemoryStore()
	blob, err := EncodeWidgets([]WidgetPlacement{
		{ID: "x", Type: "countdown", Title: "Old", Size: SizeSmall, Order: 1, IsVisible: true},
	})
	if err != nil {
		t.Fatalf("EncodeWidgets returned error: %v", err)
	}
	store.SeedLegacy(blob, LegacySchemaVersion)

	ctrl := NewController(Options{Store: store})
	l := ctrl.Initialize(context.Background())
	if len(l.Widgets) != 3 {
		t.Fatalf("expected migrated layout with backfill, got %#v", l.Widgets)
	}
	raw, ok, err := store.Load(context.Background())
	if err != nil || !ok || raw.Version != SchemaVersion {
		t.Fatalf("expected migrated layout re-persisted with %q, got %#v ok=%v err=%v", SchemaVersion, raw, ok, err)
	}
}

func TestInitializeRecoversCorruptBlob(t *testing.T) {
	store := NewMemoryStore()
	store.SeedLegacy([]byte("{not json"), SchemaVersion)
	telemetry := &recordingTelemetry{}

	ctrl := NewController(Options{Store: store, Telemetry: telemetry})
	l := ctrl.Initialize(context.Background())
	if len(l.Widgets) != 7 {
		t.Fatalf("expected defaults after corrupt blob, got %d placements", len(l.Widgets))
	}
	if !telemetry.saw("layout.store.corrupt") {
		t.Fatalf("expected corrupt blob recorded, got %v", telemetry.events)
	}
}

func TestReorderMovesOntoTargetPosition(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	l := ctrl.Reorder(context.Background(), "c", "a")
	assertOrder(t, l, []string{"c", "a", "b"})
	assertContiguous(t, l)
}

func TestReorderForwardUsesTargetIndex(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	l := ctrl.Reorder(context.Background(), "a", "c")
	assertOrder(t, l, []string{"b", "c", "a"})
}

func TestReorderPersistsMovedOrder(t *testing.T) {
	store := NewMemoryStore()
	ctrl := NewController(Options{Store: store})
	ctx := context.Background()
	ctrl.Initialize(ctx)

	ctrl.Reorder(ctx, "menu", "director")
	raw, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("expected persisted layout, ok=%v err=%v", ok, err)
	}
	if raw.Widgets[0].ID != "menu" || raw.Widgets[0].Order != 1 {
		t.Fatalf("expected menu persisted at order 1, got %#v", raw.Widgets[0])
	}
	if raw.Widgets[1].ID != "director" || raw.Widgets[1].Order != 2 {
		t.Fatalf("expected director pushed to order 2, got %#v", raw.Widgets[1])
	}
}

func TestReorderChainsAcrossCalls(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	ctx := context.Background()
	ctrl.Reorder(ctx, "c", "a")
	l := ctrl.Reorder(ctx, "b", "c")
	assertOrder(t, l, []string{"b", "c", "a"})
}

func TestReorderUnknownIDIsNoop(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	before := ctrl.Current(context.Background())
	after := ctrl.Reorder(context.Background(), "nonexistent-id", "a")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected unchanged layout, got %#v", after)
	}
}

func TestReorderHiddenPlacementIsNoop(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	ctrl.ToggleVisibility(context.Background(), "b")
	before := ctrl.Current(context.Background())
	after := ctrl.Reorder(context.Background(), "b", "a")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected reorder of hidden placement rejected, got %#v", after)
	}
}

func TestReorderRenumbersAcrossHiddenPlacements(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	ctrl.ToggleVisibility(context.Background(), "b")
	l := ctrl.Reorder(context.Background(), "c", "a")
	assertContiguous(t, l)
	assertOrder(t, l, []string{"c", "a", "b"})
}

func TestToggleVisibilityTwiceRestoresLayout(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	before := ctrl.Current(context.Background())
	ctrl.ToggleVisibility(context.Background(), "b")
	after := ctrl.ToggleVisibility(context.Background(), "b")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected double toggle to restore layout, before %#v after %#v", before, after)
	}
}

func TestToggleVisibilityKeepsOrder(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	l := ctrl.ToggleVisibility(context.Background(), "b")
	assertOrder(t, l, []string{"a", "b", "c"})
	if l.Widgets[1].IsVisible {
		t.Fatalf("expected b hidden, got %#v", l.Widgets[1])
	}
}

func TestSetSizeChangesOnlySize(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	l := ctrl.SetSize(context.Background(), "b", SizeFull)
	assertOrder(t, l, []string{"a", "b", "c"})
	if l.Widgets[1].Size != SizeFull {
		t.Fatalf("expected size full, got %q", l.Widgets[1].Size)
	}
}

func TestSetSizeInvalidTagIsNoop(t *testing.T) {
	ctrl := newThreeWidgetController(t)
	before := ctrl.Current(context.Background())
	after := ctrl.SetSize(context.Background(), "b", Size("gigantic"))
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected invalid size rejected, got %#v", after)
	}
}

func TestAddPlacementReshowsHiddenType(t *testing.T) {
	ctrl := NewController(Options{})
	ctrl.Initialize(context.Background())
	ctrl.ToggleVisibility(context.Background(), "menu")
	l := ctrl.AddPlacement(context.Background(), TypeMenu)
	for _, p := range l.Widgets {
		if p.Type == TypeMenu && !p.IsVisible {
			t.Fatalf("expected menu re-shown, got %#v", p)
		}
	}
	if len(l.Widgets) != 7 {
		t.Fatalf("expected no duplicate placement, got %d", len(l.Widgets))
	}
}

func TestAddPlacementUnknownTypeIsNoop(t *testing.T) {
	ctrl := NewController(Options{})
	before := ctrl.Initialize(context.Background())
	after := ctrl.AddPlacement(context.Background(), WidgetType("weather"))
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("expected unknown type rejected, got %#v", after)
	}
}

func TestResetMatchesFreshInitialize(t *testing.T) {
	ctrl := NewController(Options{})
	ctrl.Initialize(context.Background())
	ctrl.Reorder(context.Background(), "menu", "director")
	ctrl.SetSize(context.Background(), "news", SizeSmall)
	ctrl.ToggleVisibility(context.Background(), "safety")
	got := ctrl.Reset(context.Background())

	fresh := NewController(Options{}).Initialize(context.Background())
	if !reflect.DeepEqual(got, fresh) {
		t.Fatalf("expected reset to match fresh initialize, got %#v want %#v", got, fresh)
	}
}

func TestMutationsSurviveSaveFailure(t *testing.T) {
	store := &failingStore{saveErr: errors.New("quota exceeded")}
	telemetry := &recordingTelemetry{}
	ctrl := NewController(Options{Store: store, Telemetry: telemetry})
	ctrl.Initialize(context.Background())
	l := ctrl.SetSize(context.Background(), "news", SizeFull)
	for _, p := range l.Widgets {
		if p.Type == TypeNews && p.Size != SizeFull {
			t.Fatalf("expected in-memory layout authoritative, got %#v", p)
		}
	}
	if !telemetry.saw("layout.store.save_failed") {
		t.Fatalf("expected save failure recorded, got %v", telemetry.events)
	}
}

func TestMutationsEmitChangeHook(t *testing.T) {
	hook := &collectingHook{}
	ctrl := NewController(Options{ChangeHook: hook})
	ctrl.Initialize(context.Background())
	ctrl.SetSize(context.Background(), "news", SizeFull)
	if hook.count < 2 {
		t.Fatalf("expected hook invoked for initialize and resize, got %d", hook.count)
	}
	if hook.last.Reason != "resize" || hook.last.WidgetID != "news" {
		t.Fatalf("expected resize event, got %#v", hook.last)
	}
}

func newThreeWidgetController(t *testing.T) *Controller {
	t.Helper()
	store := NewMemoryStore()
	err := store.Save(context.Background(), Layout{
		Version: SchemaVersion,
		Widgets: []WidgetPlacement{
			{ID: "a", Type: TypeDirector, Title: "Mot du Directeur", Size: SizeSmall, Order: 1, IsVisible: true},
			{ID: "b", Type: TypeNews, Title: "Actualités", Size: SizeLarge, Order: 2, IsVisible: true},
			{ID: "c", Type: TypeCalendar, Title: "Calendrier des Événements", Size: SizeMedium, Order: 3, IsVisible: true},
		},
	})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	ctrl := NewController(Options{Store: store})
	ctrl.Initialize(context.Background())
	return ctrl
}

func assertOrder(t *testing.T, l Layout, ids []string) {
	t.Helper()
	if len(l.Widgets) != len(ids) {
		t.Fatalf("expected %d placements, got %#v", len(ids), l.Widgets)
	}
	for i, id := range ids {
		if l.Widgets[i].ID != id {
			t.Fatalf("expected %v at position %d, got %#v", ids, i, l.Widgets)
		}
		if l.Widgets[i].Order != i+1 {
			t.Fatalf("expected order %d for %s, got %d", i+1, id, l.Widgets[i].Order)
		}
	}
}

type failingStore struct {
	saveErr error
}

func (s *failingStore) Load(context.Context) (RawLayout, bool, error) {
	return RawLayout{}, false, nil
}

func (s *failingStore) Save(context.Context, Layout) error { return s.saveErr }

func (s *failingStore) Clear(context.Context) error { return nil }

type recordingTelemetry struct {
	events []string
}

func (t *recordingTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	t.events = append(t.events, event)
}

func (t *recordingTelemetry) saw(event string) bool {
	for _, e := range t.events {
		if e == event {
			return true
		}
	}
	return false
}

type collectingHook struct {
	count int
	last  LayoutEvent
}

func (h *collectingHook) LayoutChanged(_ context.Context, event LayoutEvent) error {
	h.count++
	h.last = event
	return nil
}
