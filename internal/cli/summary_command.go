package cli

import (
	"context"
	"fmt"
	"strings"
)

// SummaryCommand handles the summary command
type SummaryCommand struct {
	app *App
}

// NewSummaryCommand creates a new summary command handler
func NewSummaryCommand(app *App) *SummaryCommand {
	return &SummaryCommand{app: app}
}

// Execute prints task counts per column
func (c *SummaryCommand) Execute(ctx context.Context, args []string) error {
	tasks, err := c.app.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	summary := c.app.services.ReportingService.Summarize(tasks)
	fmt.Fprintln(c.app.out, "Board summary")
	fmt.Fprintln(c.app.out, strings.Repeat("=", 24))
	for _, cc := range summary.Columns {
		fmt.Fprintf(c.app.out, "%-14s %5d\n", cc.Column.Title(), cc.Count)
	}
	fmt.Fprintln(c.app.out, strings.Repeat("-", 24))
	fmt.Fprintf(c.app.out, "%-14s %5d\n", "Total", summary.Total)
	return nil
}
