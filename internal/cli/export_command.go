package cli

import (
	"context"
	"strings"

	"kanban-board/internal/services"
)

// ExportCommand handles the export command
type ExportCommand struct {
	app    *App
	Format string
}

// NewExportCommand creates a new export command handler
func NewExportCommand(app *App) *ExportCommand {
	return &ExportCommand{app: app, Format: string(services.ExportCSV)}
}

// Execute writes every task to the output in the selected format
func (c *ExportCommand) Execute(ctx context.Context, args []string) error {
	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return err
	}
	format := services.ExportFormat(strings.ToLower(c.Format))
	return c.app.services.ReportingService.Export(c.app.out, tasks, format)
}
