package layout

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	if _, ok, err := store.Load(context.Background()); ok || err != nil {
		t.Fatalf("expected empty store, ok=%v err=%v", ok, err)
	}
	saved := Layout{Version: SchemaVersion, Widgets: DefaultPlacements()}
	if err := store.Save(context.Background(), saved); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	raw, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("Load returned ok=%v err=%v", ok, err)
	}
	if raw.Version != SchemaVersion || len(raw.Widgets) != len(saved.Widgets) {
		t.Fatalf("expected stored layout back, got %#v", raw)
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save(context.Background(), Layout{Version: SchemaVersion, Widgets: DefaultPlacements()}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if err := store.Clear(context.Background()); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if _, ok, _ := store.Load(context.Background()); ok {
		t.Fatalf("expected cleared store to be absent")
	}
}

func TestMemoryStoreRejectsCorruptBlob(t *testing.T) {
	store := NewMemoryStore()
	store.SeedLegacy([]byte(`{"widgets": "nope"}`), SchemaVersion)
	if _, _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error for corrupt blob")
	}
}

func TestMemoryStoreRejectsInvalidShape(t *testing.T) {
	store := NewMemoryStore()
	// Structurally JSON but violates the storage schema: size not in enum.
	store.SeedLegacy([]byte(`[{"id":"a","type":"news","title":"t","size":"giant","order":1,"isVisible":true}]`), SchemaVersion)
	if _, _, err := store.Load(context.Background()); err == nil {
		t.Fatalf("expected schema validation error")
	}
}

func TestMemoryStoreAcceptsOrphanTypes(t *testing.T) {
	store := NewMemoryStore()
	store.SeedLegacy([]byte(`[{"id":"w","type":"weather","title":"Météo","size":"small","order":1,"isVisible":true}]`), SchemaVersion)
	raw, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected orphan types to round-trip, ok=%v err=%v", ok, err)
	}
	if len(raw.Widgets) != 1 || raw.Widgets[0].Type != "weather" {
		t.Fatalf("expected weather placement preserved, got %#v", raw.Widgets)
	}
}

func TestMemoryStoreLegacyBlobHasNoVersion(t *testing.T) {
	store := NewMemoryStore()
	store.SeedLegacy([]byte(`[{"id":"x","type":"countdown","title":"Old","size":"small","order":1,"isVisible":true}]`), "")
	raw, ok, err := store.Load(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected legacy blob loadable, ok=%v err=%v", ok, err)
	}
	if !NeedsMigration(raw) {
		t.Fatalf("expected unversioned blob to need migration")
	}
}
