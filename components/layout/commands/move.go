package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// MovePlacementInput carries the drop event emitted by the drag adapter.
type MovePlacementInput struct {
	MovedID  string `json:"moved_id"`
	TargetID string `json:"target_id"`
}

type moveController interface {
	Reorder(ctx context.Context, movedID, targetID string) layout.Layout
}

// MovePlacementCommand wraps Controller.Reorder.
type MovePlacementCommand struct {
	controller moveController
	telemetry  Telemetry
}

// NewMovePlacementCommand builds the command.
func NewMovePlacementCommand(controller moveController, telemetry Telemetry) *MovePlacementCommand {
	return &MovePlacementCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[MovePlacementInput] = (*MovePlacementCommand)(nil)

// Execute applies the move. Ids the controller no longer knows become a
// silent no-op downstream; only malformed requests are rejected here.
func (c *MovePlacementCommand) Execute(ctx context.Context, msg MovePlacementInput) error {
	if c.controller == nil {
		return errors.New("move command requires controller")
	}
	if msg.MovedID == "" || msg.TargetID == "" {
		return errors.New("move command requires moved and target ids")
	}
	c.controller.Reorder(ctx, msg.MovedID, msg.TargetID)
	c.telemetry.Record(ctx, "layout.command.move", map[string]any{
		"moved_id":  msg.MovedID,
		"target_id": msg.TargetID,
	})
	return nil
}
