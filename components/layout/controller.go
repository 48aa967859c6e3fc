package layout

import (
	"context"
	"reflect"
	"sync"

	"github.com/google/uuid"
)

// Options configures the layout Controller. Every collaborator is
// provided via interface so hosts can swap implementations without
// importing internal packages.
type Options struct {
	Store      LayoutStore
	Catalog    *Catalog
	ChangeHook ChangeHook
	Telemetry  Telemetry
}

// Controller exclusively owns the in-memory working layout for one
// dashboard session. Every mutation writes through to the store and
// returns a valid layout; malformed input is a silent no-op because the
// controller must tolerate stale UI callbacks. No operation returns an
// error across this boundary: storage failures are recorded via
// telemetry and the in-memory layout stays authoritative for the
// session.
type Controller struct {
	mu    sync.Mutex
	opts  Options
	state Layout
	ready bool
}

// NewController builds a Controller with safe defaults.
func NewController(opts Options) *Controller {
	if opts.Store == nil {
		opts.Store = NewMemoryStore()
	}
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.ChangeHook == nil {
		opts.ChangeHook = noopChangeHook{}
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Controller{opts: opts}
}

// Catalog exposes the widget catalog this controller renders against.
func (c *Controller) Catalog() *Catalog { return c.opts.Catalog }

// Initialize loads the stored layout, migrating it when the version tag
// is stale, or materializes the seed dashboard when the slot is absent
// or corrupt. The result is re-persisted whenever it differs from what
// was loaded. Subsequent calls return the working layout unchanged.
func (c *Controller) Initialize(ctx context.Context) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(ctx)
	return c.state.Clone()
}

// Reorder moves the placement movedID to the position targetID occupied
// before the move (the arrayMove convention of the drag adapter), then
// renumbers orders contiguously over visible and hidden placements.
// Both ids must identify currently visible placements; otherwise the
// call is a no-op.
func (c *Controller) Reorder(ctx context.Context, movedID, targetID string) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(ctx)

	from := c.indexOf(movedID)
	to := c.indexOf(targetID)
	if from < 0 || to < 0 || from == to {
		return c.state.Clone()
	}
	if !c.state.Widgets[from].IsVisible || !c.state.Widgets[to].IsVisible {
		return c.state.Clone()
	}

	moved := c.state.Widgets[from]
	widgets := append(c.state.Widgets[:from:from], c.state.Widgets[from+1:]...)
	widgets = append(widgets[:to:to], append([]WidgetPlacement{moved}, widgets[to:]...)...)
	c.state.Widgets = widgets
	// The splice already placed everything; renumber by position. Sorting
	// by the stale Order values here would undo the move.
	renumber(c.state.Widgets)

	c.persistLocked(ctx, "reorder", movedID)
	c.opts.Telemetry.Record(ctx, "layout.reorder", map[string]any{
		"moved_id":  movedID,
		"target_id": targetID,
	})
	return c.state.Clone()
}

// SetSize changes the size tag of one placement. Unknown ids and invalid
// size tags are no-ops.
func (c *Controller) SetSize(ctx context.Context, id string, size Size) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(ctx)

	idx := c.indexOf(id)
	if idx < 0 || !size.Valid() || c.state.Widgets[idx].Size == size {
		return c.state.Clone()
	}
	c.state.Widgets[idx].Size = size

	c.persistLocked(ctx, "resize", id)
	c.opts.Telemetry.Record(ctx, "layout.resize", map[string]any{
		"widget_id": id,
		"size":      string(size),
	})
	return c.state.Clone()
}

// ToggleVisibility flips one placement's visibility without touching its
// order, so re-showing a widget restores its prior position.
func (c *Controller) ToggleVisibility(ctx context.Context, id string) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(ctx)

	idx := c.indexOf(id)
	if idx < 0 {
		return c.state.Clone()
	}
	c.state.Widgets[idx].IsVisible = !c.state.Widgets[idx].IsVisible

	c.persistLocked(ctx, "visibility", id)
	c.opts.Telemetry.Record(ctx, "layout.visibility", map[string]any{
		"widget_id": id,
		"visible":   c.state.Widgets[idx].IsVisible,
	})
	return c.state.Clone()
}

// AddPlacement puts a widget of the given catalog type on the dashboard.
// An existing hidden placement of the type is re-shown in place; a type
// with no placement is appended at the end, seeded from its catalog
// entry. Unknown types are no-ops.
func (c *Controller) AddPlacement(ctx context.Context, t WidgetType) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(ctx)

	entry, ok := c.opts.Catalog.Entry(t)
	if !ok {
		return c.state.Clone()
	}
	for i, p := range c.state.Widgets {
		if p.Type != t {
			continue
		}
		if p.IsVisible {
			return c.state.Clone()
		}
		c.state.Widgets[i].IsVisible = true
		c.persistLocked(ctx, "show", p.ID)
		c.opts.Telemetry.Record(ctx, "layout.show", map[string]any{"widget_id": p.ID})
		return c.state.Clone()
	}

	id := string(t)
	for _, p := range c.state.Widgets {
		if p.ID == id {
			id = uuid.NewString()
			break
		}
	}
	c.state.Widgets = append(c.state.Widgets, WidgetPlacement{
		ID:        id,
		Type:      t,
		Title:     entry.Name,
		Size:      entry.DefaultSize,
		Order:     maxOrder(c.state.Widgets) + 1,
		IsVisible: true,
	})
	normalizeOrder(c.state.Widgets)

	c.persistLocked(ctx, "add", id)
	c.opts.Telemetry.Record(ctx, "layout.add", map[string]any{
		"widget_id": id,
		"type":      string(t),
	})
	return c.state.Clone()
}

// Reset discards the working layout and the persisted slot and rebuilds
// the seed dashboard. It never fails.
func (c *Controller) Reset(ctx context.Context) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.opts.Store.Clear(ctx); err != nil {
		c.opts.Telemetry.Record(ctx, "layout.store.clear_failed", map[string]any{
			"error": err.Error(),
		})
	}
	c.state = seedLayout(c.opts.Catalog)
	c.ready = true

	c.persistLocked(ctx, "reset", "")
	c.opts.Telemetry.Record(ctx, "layout.reset", nil)
	return c.state.Clone()
}

// Current returns a copy of the working layout, initializing on first
// use.
func (c *Controller) Current(ctx context.Context) Layout {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ensureLocked(ctx)
	return c.state.Clone()
}

// ensureLocked performs the load/migrate/seed sequence once per session.
// Callers hold c.mu.
func (c *Controller) ensureLocked(ctx context.Context) {
	if c.ready {
		return
	}
	raw, ok, err := c.opts.Store.Load(ctx)
	if err != nil {
		// Corrupt data is recovered here, never surfaced to the UI.
		c.opts.Telemetry.Record(ctx, "layout.store.corrupt", map[string]any{
			"error": err.Error(),
		})
		ok = false
	}

	changed := true
	if !ok {
		c.state = seedLayout(c.opts.Catalog)
	} else {
		c.state = Migrate(raw, c.opts.Catalog)
		changed = NeedsMigration(raw) || !reflect.DeepEqual(raw.Widgets, c.state.Widgets)
	}
	c.ready = true

	if changed {
		c.persistLocked(ctx, "initialize", "")
	}
	c.opts.Telemetry.Record(ctx, "layout.initialize", map[string]any{
		"widgets":  len(c.state.Widgets),
		"migrated": changed,
	})
}

// persistLocked writes through to the store and notifies transports.
// Failures degrade to telemetry records; the session keeps its in-memory
// layout.
func (c *Controller) persistLocked(ctx context.Context, reason, widgetID string) {
	if err := c.opts.Store.Save(ctx, c.state); err != nil {
		c.opts.Telemetry.Record(ctx, "layout.store.save_failed", map[string]any{
			"reason": reason,
			"error":  err.Error(),
		})
	}
	event := LayoutEvent{Reason: reason, WidgetID: widgetID, Layout: c.state.Clone()}
	if err := c.opts.ChangeHook.LayoutChanged(ctx, event); err != nil {
		c.opts.Telemetry.Record(ctx, "layout.hook_failed", map[string]any{
			"reason": reason,
			"error":  err.Error(),
		})
	}
}

// indexOf locates a placement by id in the order-sorted working slice.
func (c *Controller) indexOf(id string) int {
	for i, p := range c.state.Widgets {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// seedLayout materializes the hardcoded default dashboard and runs it
// through the migration engine so custom catalogs with extra required
// widgets stay consistent.
func seedLayout(catalog *Catalog) Layout {
	return Migrate(RawLayout{Widgets: DefaultPlacements()}, catalog)
}
