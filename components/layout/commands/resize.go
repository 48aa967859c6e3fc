package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// ResizePlacementInput carries a size change for one placement.
type ResizePlacementInput struct {
	ID   string      `json:"id"`
	Size layout.Size `json:"size"`
}

type resizeController interface {
	SetSize(ctx context.Context, id string, size layout.Size) layout.Layout
}

// ResizePlacementCommand wraps Controller.SetSize.
type ResizePlacementCommand struct {
	controller resizeController
	telemetry  Telemetry
}

// NewResizePlacementCommand builds the command.
func NewResizePlacementCommand(controller resizeController, telemetry Telemetry) *ResizePlacementCommand {
	return &ResizePlacementCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResizePlacementInput] = (*ResizePlacementCommand)(nil)

// Execute applies the size change.
func (c *ResizePlacementCommand) Execute(ctx context.Context, msg ResizePlacementInput) error {
	if c.controller == nil {
		return errors.New("resize command requires controller")
	}
	if msg.ID == "" {
		return errors.New("resize command requires placement id")
	}
	if !msg.Size.Valid() {
		return errors.New("resize command requires a valid size tag")
	}
	c.controller.SetSize(ctx, msg.ID, msg.Size)
	c.telemetry.Record(ctx, "layout.command.resize", map[string]any{
		"id":   msg.ID,
		"size": string(msg.Size),
	})
	return nil
}
