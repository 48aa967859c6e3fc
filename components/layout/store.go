package layout

import (
	"context"
	"sync"
)

// MemoryStore keeps the serialized layout slot in process memory. It is
// the default store for tests and sessions that do not need durability.
type MemoryStore struct {
	mu      sync.RWMutex
	widgets []byte
	version string
	present bool
}

// NewMemoryStore creates an empty in-memory layout store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the stored layout. The widgets blob and the version tag
// are held separately, mirroring the two browser storage keys of the
// original dashboard: a legacy slot may carry widgets with no version.
func (s *MemoryStore) Load(_ context.Context) (RawLayout, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return RawLayout{}, false, nil
	}
	widgets, err := DecodeStoredWidgets(s.widgets)
	if err != nil {
		return RawLayout{}, false, err
	}
	return RawLayout{Version: s.version, Widgets: widgets}, true, nil
}

// Save serializes and stores the layout.
func (s *MemoryStore) Save(_ context.Context, l Layout) error {
	data, err := EncodeWidgets(l.Widgets)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = data
	s.version = l.Version
	s.present = true
	return nil
}

// Clear removes the stored layout.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = nil
	s.version = ""
	s.present = false
	return nil
}

// SeedLegacy stores a raw blob directly, bypassing validation. Tests use
// it to stage corrupt or legacy data.
func (s *MemoryStore) SeedLegacy(widgets []byte, version string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.widgets = widgets
	s.version = version
	s.present = true
}
