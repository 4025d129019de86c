package cli

import (
	"context"

	"kanban-board/internal/server"
	"kanban-board/internal/validation"
)

// ServeCommand runs the HTTP task server until ctx is cancelled
type ServeCommand struct {
	app      *App
	Settings server.Config
}

// NewServeCommand creates a new serve command handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{app: app, Settings: server.DefaultConfig()}
}

// Execute blocks serving requests
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	schemas, err := validation.NewSchemaValidator()
	if err != nil {
		return err
	}
	return server.New(c.app.api, schemas, c.Settings, c.app.log).Run(ctx)
}
