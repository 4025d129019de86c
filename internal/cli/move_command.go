package cli

import (
	"context"
	"fmt"

	"kanban-board/internal/board"
	"kanban-board/internal/errors"
)

// MoveCommand handles the move command
type MoveCommand struct {
	app *App
}

// NewMoveCommand creates a new move command handler
func NewMoveCommand(app *App) *MoveCommand {
	return &MoveCommand{app: app}
}

// Execute moves task args[0] into column args[1]
func (c *MoveCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("args", len(args), "usage: kb move <id> <column>")
	}
	column, err := parseColumnFlag(args[1])
	if err != nil {
		return err
	}

	task, err := c.app.api.MoveTask(ctx, args[0], column)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, board.MovedMessage(task.Column))
	return nil
}
