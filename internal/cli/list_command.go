package cli

import (
	"context"
	"strings"

	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/services"
)

// ListCommand handles the list command
type ListCommand struct {
	app    *App
	Column string
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app}
}

// Execute lists tasks whose title or description contains the joined
// args, optionally restricted to one column.
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	criteria := services.SearchCriteria{Query: strings.TrimSpace(strings.Join(args, " "))}
	if c.Column != "" {
		column, err := parseColumnFlag(c.Column)
		if err != nil {
			return err
		}
		criteria.Column = &column
	}

	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	c.app.printTasks(c.app.services.SearchService.Search(tasks, criteria))
	return nil
}

func parseColumnFlag(s string) (domain.Column, error) {
	column, err := domain.ParseColumn(s)
	if err != nil {
		return "", errors.NewInvalidInputError("column", s, "must be one of backlog, in-progress, review, done")
	}
	return column, nil
}
