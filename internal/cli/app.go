package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"kanban-board/internal/api"
	"kanban-board/internal/domain"
	"kanban-board/internal/logging"
	"kanban-board/internal/services"
)

// App holds what every command handler needs
type App struct {
	api      api.API
	services *services.ServiceContainer
	out      io.Writer
	log      *logrus.Logger
	registry *CommandRegistry
}

// AppOption customizes an App
type AppOption func(*App)

// WithOutput sets where command output is written
func WithOutput(w io.Writer) AppOption {
	return func(a *App) {
		a.out = w
	}
}

// WithAppLogger sets the logger passed to long-running commands
func WithAppLogger(log *logrus.Logger) AppOption {
	return func(a *App) {
		a.log = log
	}
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(api api.API, opts ...AppOption) *App {
	app := &App{
		api:      api,
		services: services.NewServiceContainer(),
		out:      os.Stdout,
		log:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(app)
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// printTasks writes one aligned row per task
func (a *App) printTasks(tasks []domain.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks found")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCOLUMN\tTITLE")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Column, t.Title)
	}
	tw.Flush()
}

func (a *App) printTask(verb string, t *domain.Task) {
	fmt.Fprintf(a.out, "%s task %s: %s [%s]\n", verb, t.ID, t.Title, t.Column.Label())
}
