package cli

import (
	"context"

	"kanban-board/internal/board"
	"kanban-board/internal/tui"
)

// BoardCommand opens the interactive terminal board
type BoardCommand struct {
	app *App
}

// NewBoardCommand creates a new board command handler
func NewBoardCommand(app *App) *BoardCommand {
	return &BoardCommand{app: app}
}

// Execute runs the board until the user quits
func (c *BoardCommand) Execute(ctx context.Context, args []string) error {
	notify, notices := tui.NoticeChannel(16)
	b := board.New(c.app.api,
		board.WithNotifier(notify),
		board.WithSearchService(c.app.services.SearchService),
	)
	return tui.Run(ctx, b, notices)
}
