package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// AddPlacementInput names the catalog type to put on the dashboard.
type AddPlacementInput struct {
	Type layout.WidgetType `json:"type"`
}

type addController interface {
	AddPlacement(ctx context.Context, t layout.WidgetType) layout.Layout
}

// AddPlacementCommand wraps Controller.AddPlacement.
type AddPlacementCommand struct {
	controller addController
	telemetry  Telemetry
}

// NewAddPlacementCommand builds the command.
func NewAddPlacementCommand(controller addController, telemetry Telemetry) *AddPlacementCommand {
	return &AddPlacementCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[AddPlacementInput] = (*AddPlacementCommand)(nil)

// Execute adds or re-shows a widget of the given type.
func (c *AddPlacementCommand) Execute(ctx context.Context, msg AddPlacementInput) error {
	if c.controller == nil {
		return errors.New("add command requires controller")
	}
	if msg.Type == "" {
		return errors.New("add command requires widget type")
	}
	c.controller.AddPlacement(ctx, msg.Type)
	c.telemetry.Record(ctx, "layout.command.add", map[string]any{
		"type": string(msg.Type),
	})
	return nil
}
