package cli

import (
	"context"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
)

// EditCommand handles the edit command. Only fields set to non-nil are
// sent, so an unset flag leaves that field alone.
type EditCommand struct {
	app         *App
	Title       *string
	Description *string
	Column      *string
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app}
}

// Execute applies the flag values to the task named by args[0]
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("id", "", "usage: kb edit <id> [--title text] [--description text] [--column name]")
	}

	patch := domain.TaskPatch{Title: c.Title, Description: c.Description}
	if c.Column != nil {
		column, err := parseColumnFlag(*c.Column)
		if err != nil {
			return err
		}
		patch.Column = &column
	}
	if patch.IsEmpty() {
		return errors.NewInvalidInputError("flags", "", "nothing to change: pass --title, --description or --column")
	}

	task, err := c.app.api.UpdateTask(ctx, args[0], patch)
	if err != nil {
		return err
	}
	c.app.printTask("Updated", task)
	return nil
}
