package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// ToggleVisibilityInput identifies the placement to show or hide.
type ToggleVisibilityInput struct {
	ID string `json:"id"`
}

type visibilityController interface {
	ToggleVisibility(ctx context.Context, id string) layout.Layout
}

// ToggleVisibilityCommand wraps Controller.ToggleVisibility.
type ToggleVisibilityCommand struct {
	controller visibilityController
	telemetry  Telemetry
}

// NewToggleVisibilityCommand builds the command.
func NewToggleVisibilityCommand(controller visibilityController, telemetry Telemetry) *ToggleVisibilityCommand {
	return &ToggleVisibilityCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ToggleVisibilityInput] = (*ToggleVisibilityCommand)(nil)

// Execute flips the placement's visibility.
func (c *ToggleVisibilityCommand) Execute(ctx context.Context, msg ToggleVisibilityInput) error {
	if c.controller == nil {
		return errors.New("visibility command requires controller")
	}
	if msg.ID == "" {
		return errors.New("visibility command requires placement id")
	}
	c.controller.ToggleVisibility(ctx, msg.ID)
	c.telemetry.Record(ctx, "layout.command.visibility", map[string]any{
		"id": msg.ID,
	})
	return nil
}
