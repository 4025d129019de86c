package cli

import (
	"context"
	"fmt"

	"kanban-board/internal/board"
	"kanban-board/internal/errors"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app}
}

// Execute removes the task named by args[0]. There is no confirmation
// prompt and no undo.
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", "", "usage: kb delete <id>")
	}

	if err := c.app.api.DeleteTask(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, board.MsgDeleted)
	return nil
}
