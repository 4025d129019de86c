package cli

import (
	"context"
	"strings"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
)

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	Description string
	Column      string
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app}
}

// Execute creates a task titled by the joined args
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("title", "", "usage: kb add <title> [--description text] [--column name]")
	}

	input := domain.TaskInput{
		Title:       strings.Join(args, " "),
		Description: c.Description,
	}
	if c.Column != "" {
		column, err := parseColumnFlag(c.Column)
		if err != nil {
			return err
		}
		input.Column = &column
	}

	task, err := c.app.api.CreateTask(ctx, input)
	if err != nil {
		return err
	}
	c.app.printTask("Created", task)
	return nil
}
