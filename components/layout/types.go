package layout

import "context"

// WidgetType identifies which catalog entry a placement renders.
type WidgetType string

// Built-in widget types shipped with the portal dashboard.
const (
	TypeDirector WidgetType = "director"
	TypeNews     WidgetType = "news"
	TypeSafety   WidgetType = "safety"
	TypeCalendar WidgetType = "calendar"
	TypeIdeas    WidgetType = "ideas"
	TypeApps     WidgetType = "apps"
	TypeMenu     WidgetType = "menu"
)

// Size controls the responsive column span of a widget.
type Size string

// Supported widget sizes.
const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
	SizeFull   Size = "full"
)

// Valid reports whether s is one of the supported size tags.
func (s Size) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge, SizeFull:
		return true
	}
	return false
}

// WidgetPlacement is one widget's positional/display metadata record
// within a Layout. ID is stable across sessions and doubles as the
// drag-and-drop item key.
type WidgetPlacement struct {
	ID        string     `json:"id"`
	Type      WidgetType `json:"type"`
	Title     string     `json:"title"`
	Size      Size       `json:"size"`
	Order     int        `json:"order"`
	IsVisible bool       `json:"isVisible"`
}

// Layout is the ordered, sized, visibility-tagged collection of widget
// placements for one dashboard, tagged with the schema version that
// produced it. Hidden placements are retained so visibility is
// reversible without losing size/order customization.
type Layout struct {
	Version string            `json:"version"`
	Widgets []WidgetPlacement `json:"widgets"`
}

// Clone returns a deep copy so callers cannot mutate controller state.
func (l Layout) Clone() Layout {
	out := Layout{Version: l.Version}
	if l.Widgets != nil {
		out.Widgets = make([]WidgetPlacement, len(l.Widgets))
		copy(out.Widgets, l.Widgets)
	}
	return out
}

// RawLayout is a stored layout of unknown or older shape, read back from
// a LayoutStore before the migration engine has seen it. An empty
// Version marks the legacy array-only blob.
type RawLayout struct {
	Version string
	Widgets []WidgetPlacement
}

// LayoutStore is the persistence boundary for one profile's layout slot.
// Load reports ok=false when no layout is stored; decode and I/O
// failures surface as errors and are downgraded to "absent" by the
// controller, never by the store.
type LayoutStore interface {
	Load(ctx context.Context) (RawLayout, bool, error)
	Save(ctx context.Context, l Layout) error
	Clear(ctx context.Context) error
}

// LayoutEvent describes a mutation transports might care about.
type LayoutEvent struct {
	Reason   string `json:"reason"`
	WidgetID string `json:"widget_id,omitempty"`
	Layout   Layout `json:"layout"`
}

// ChangeHook notifies transports (REST/WebSocket) about layout changes.
type ChangeHook interface {
	LayoutChanged(ctx context.Context, event LayoutEvent) error
}

type noopChangeHook struct{}

func (noopChangeHook) LayoutChanged(context.Context, LayoutEvent) error { return nil }
