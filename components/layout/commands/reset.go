package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	layout "github.com/intrakit/intraboard/components/layout"
)

// ResetLayoutInput is the (empty) reset request.
type ResetLayoutInput struct{}

type resetController interface {
	Reset(ctx context.Context) layout.Layout
}

// ResetLayoutCommand wraps Controller.Reset.
type ResetLayoutCommand struct {
	controller resetController
	telemetry  Telemetry
}

// NewResetLayoutCommand builds the command.
func NewResetLayoutCommand(controller resetController, telemetry Telemetry) *ResetLayoutCommand {
	return &ResetLayoutCommand{controller: controller, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[ResetLayoutInput] = (*ResetLayoutCommand)(nil)

// Execute rebuilds the seed dashboard.
func (c *ResetLayoutCommand) Execute(ctx context.Context, _ ResetLayoutInput) error {
	if c.controller == nil {
		return errors.New("reset command requires controller")
	}
	c.controller.Reset(ctx)
	c.telemetry.Record(ctx, "layout.command.reset", nil)
	return nil
}
