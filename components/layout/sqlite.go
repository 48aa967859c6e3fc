package layout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Storage keys mirrored from the original browser profile slot: one for
// the widgets array (legacy, unversioned) and one for the version tag.
const (
	widgetsKey = "dashboard.widgets"
	versionKey = "dashboard.version"
)

// DefaultSlot names the layout slot used when no profile is given.
const DefaultSlot = "default"

// SQLiteStore persists layout slots in a local SQLite database, the
// durable profile storage of the portal. Slots are independent; two
// sessions on the same slot race with last-write-wins semantics.
type SQLiteStore struct {
	db   *sql.DB
	path string
	slot string
}

// NewSQLiteStore opens (or creates) the database at path and prepares
// the given slot. An empty slot selects DefaultSlot.
func NewSQLiteStore(path, slot string) (*SQLiteStore, error) {
	if slot == "" {
		slot = DefaultSlot
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("layout: create store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("layout: open store %s: %w", path, err)
	}
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("layout: configure store: %w", err)
		}
	}
	schema := `
		CREATE TABLE IF NOT EXISTS layout_kv (
			slot TEXT NOT NULL,
			key TEXT NOT NULL,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			PRIMARY KEY (slot, key)
		);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("layout: create store schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path, slot: slot}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Slot returns the slot this store reads and writes.
func (s *SQLiteStore) Slot() string { return s.slot }

// Close closes the database connection.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load reads the widgets blob and version tag for the slot. A slot with
// no widgets key is absent; a blob that fails validation surfaces as an
// error for the controller to downgrade.
func (s *SQLiteStore) Load(ctx context.Context) (RawLayout, bool, error) {
	blob, ok, err := s.get(ctx, widgetsKey)
	if err != nil {
		return RawLayout{}, false, err
	}
	if !ok {
		return RawLayout{}, false, nil
	}
	widgets, err := DecodeStoredWidgets([]byte(blob))
	if err != nil {
		return RawLayout{}, false, err
	}
	version, _, err := s.get(ctx, versionKey)
	if err != nil {
		return RawLayout{}, false, err
	}
	return RawLayout{Version: version, Widgets: widgets}, true, nil
}

// Save writes both keys in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, l Layout) error {
	data, err := EncodeWidgets(l.Widgets)
	if err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("layout: begin save: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339)
	upsert := `
		INSERT INTO layout_kv (slot, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slot, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, upsert, s.slot, widgetsKey, string(data), now); err != nil {
		tx.Rollback()
		return fmt.Errorf("layout: save widgets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, s.slot, versionKey, l.Version, now); err != nil {
		tx.Rollback()
		return fmt.Errorf("layout: save version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("layout: commit save: %w", err)
	}
	return nil
}

// Clear deletes every key in the slot.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM layout_kv WHERE slot = ?", s.slot); err != nil {
		return fmt.Errorf("layout: clear slot %s: %w", s.slot, err)
	}
	return nil
}

func (s *SQLiteStore) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM layout_kv WHERE slot = ? AND key = ?", s.slot, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("layout: read %s: %w", key, err)
	}
	return value, true, nil
}
