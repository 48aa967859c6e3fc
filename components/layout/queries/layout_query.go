package queries

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// LayoutQueryInput selects how much of the layout to return.
type LayoutQueryInput struct {
	VisibleOnly bool `json:"visible_only"`
}

// LayoutQueryOutput is the resolved dashboard state.
type LayoutQueryOutput struct {
	Version string                   `json:"version"`
	Widgets []layout.ResolvedWidget  `json:"widgets"`
	Orphans []layout.WidgetPlacement `json:"orphans,omitempty"`
}

type layoutReader interface {
	Current(ctx context.Context) layout.Layout
	Catalog() *layout.Catalog
}

// LayoutQuery resolves the controller's layout against its catalog.
type LayoutQuery struct {
	controller layoutReader
}

// NewLayoutQuery builds the query.
func NewLayoutQuery(controller layoutReader) *LayoutQuery {
	return &LayoutQuery{controller: controller}
}

var _ gocommand.Querier[LayoutQueryInput, LayoutQueryOutput] = (*LayoutQuery)(nil)

// Query returns the current layout, resolved and order-sorted.
func (q *LayoutQuery) Query(ctx context.Context, in LayoutQueryInput) (LayoutQueryOutput, error) {
	if q.controller == nil {
		return LayoutQueryOutput{}, errors.New("layout query requires controller")
	}
	current := q.controller.Current(ctx)
	catalog := q.controller.Catalog()

	out := LayoutQueryOutput{Version: current.Version}
	if in.VisibleOnly {
		out.Widgets = layout.VisibleWidgets(current, catalog)
	} else {
		out.Widgets = layout.ListWidgets(current, catalog)
	}
	out.Orphans = layout.Orphans(current, catalog)
	return out, nil
}
