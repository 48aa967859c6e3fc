package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"

	"github.com/intrakit/intraboard/components/layout/commands"
)

// Executor is the command surface routers mount layout endpoints on.
type Executor interface {
	Move(ctx context.Context, in commands.MovePlacementInput) error
	Resize(ctx context.Context, in commands.ResizePlacementInput) error
	Visibility(ctx context.Context, in commands.ToggleVisibilityInput) error
	Add(ctx context.Context, in commands.AddPlacementInput) error
	Reset(ctx context.Context) error
}

// CommandExecutor adapts the shared commands to the Executor surface.
type CommandExecutor struct {
	MoveCommand       gocommand.Commander[commands.MovePlacementInput]
	ResizeCommand     gocommand.Commander[commands.ResizePlacementInput]
	VisibilityCommand gocommand.Commander[commands.ToggleVisibilityInput]
	AddCommand        gocommand.Commander[commands.AddPlacementInput]
	ResetCommand      gocommand.Commander[commands.ResetLayoutInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Move(ctx context.Context, in commands.MovePlacementInput) error {
	if e.MoveCommand == nil {
		return errors.New("httpapi: move command not configured")
	}
	return e.MoveCommand.Execute(ctx, in)
}

func (e *CommandExecutor) Resize(ctx context.Context, in commands.ResizePlacementInput) error {
	if e.ResizeCommand == nil {
		return errors.New("httpapi: resize command not configured")
	}
	return e.ResizeCommand.Execute(ctx, in)
}

func (e *CommandExecutor) Visibility(ctx context.Context, in commands.ToggleVisibilityInput) error {
	if e.VisibilityCommand == nil {
		return errors.New("httpapi: visibility command not configured")
	}
	return e.VisibilityCommand.Execute(ctx, in)
}

func (e *CommandExecutor) Add(ctx context.Context, in commands.AddPlacementInput) error {
	if e.AddCommand == nil {
		return errors.New("httpapi: add command not configured")
	}
	return e.AddCommand.Execute(ctx, in)
}

func (e *CommandExecutor) Reset(ctx context.Context) error {
	if e.ResetCommand == nil {
		return errors.New("httpapi: reset command not configured")
	}
	return e.ResetCommand.Execute(ctx, commands.ResetLayoutInput{})
}
