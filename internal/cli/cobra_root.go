package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kanban-board/internal/api"
	"kanban-board/internal/config"
	"kanban-board/internal/errors"
	"kanban-board/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	openStore StoreOpener
	config *config.Config
	api    api.API
	store  *config.Store
	out    io.Writer
	logOut io.Writer
	app    *App
	errs   *ErrorHandler
}

// StoreOpener builds the task store for a loaded configuration
type StoreOpener func(ctx context.Context, cfg *config.Config, log *logrus.Logger) (*config.Store, error)

// RootOption customizes the root command
type RootOption func(*RootCommand)

// WithAPI injects the task API instead of building one from configuration
func WithAPI(a api.API) RootOption {
	return func(r *RootCommand) {
		r.api = a
	}
}

// WithWriter sets where command output goes
func WithWriter(w io.Writer) RootOption {
	return func(r *RootCommand) {
		r.out = w
	}
}

// WithLogWriter sets where log lines go
func WithLogWriter(w io.Writer) RootOption {
	return func(r *RootCommand) {
		r.logOut = w
	}
}

// WithStoreOpener replaces config.CreateStore
func WithStoreOpener(open StoreOpener) RootOption {
	return func(r *RootCommand) {
		r.openStore = open
	}
}

// WithLoader replaces the configuration loader
func WithLoader(l *config.Loader) RootOption {
	return func(r *RootCommand) {
		r.loader = l
	}
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(opts ...RootOption) *RootCommand {
	root := &RootCommand{
		loader:    config.NewLoader(),
		openStore: config.CreateStore,
		out:    os.Stdout,
		logOut: os.Stderr,
		errs:   NewErrorHandler(),
	}
	for _, opt := range opts {
		opt(root)
	}
	root.app = NewApp(root.api, WithOutput(root.out))

	root.cmd = &cobra.Command{
		Use:   "kb",
		Short: "A kanban task board for the terminal and the web",
		Long: `Kanban Board (kb) keeps tasks in four columns: backlog, in-progress, review and done.

EXAMPLES:
  kb add "Write release notes" --column review   # Create a task
  kb list                                        # List every task
  kb list login --column in-progress             # Search one column
  kb move 1f0c... done                           # Move a task
  kb board                                       # Open the interactive board
  kb serve --addr :8080                          # Serve the REST API
  kb export --format json > tasks.json           # Export all tasks

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file (KB_CONFIG) > defaults

  KB_STORAGE_BACKEND       sqlite, json, memory or remote (default: sqlite)
  KB_DB_PATH               SQLite database file (default: ~/.kb/kb.db)
  KB_JSON_PATH             JSON document file (default: ~/.kb/db.json)
  KB_REMOTE_URL            Base URL of a kb server (default: http://localhost:8080/api)
  KB_REDIS_URL             Enable the Redis list cache
  KB_LOG_LEVEL             Log level (default: info)
  KB_DEBUG                 Force debug logging
  KB_ENV=testing           Use the in-memory store`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
	}
	root.cmd.SetOut(root.out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Command exposes the underlying cobra command
func (r *RootCommand) Command() *cobra.Command {
	return r.cmd
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx as the parent of every command context
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "Config file, .toml or .yaml (overrides KB_CONFIG)")

	// Storage configuration
	flags.String("backend", "", "Storage backend: sqlite, json, memory, remote (overrides KB_STORAGE_BACKEND)")
	flags.String("db-path", "", "SQLite database file (overrides KB_DB_PATH)")
	flags.String("json-path", "", "JSON document file (overrides KB_JSON_PATH)")
	flags.String("remote-url", "", "Base URL of a kb server (overrides KB_REMOTE_URL)")
	flags.Duration("client-timeout", 0, "Remote request timeout (overrides KB_CLIENT_TIMEOUT)")
	flags.String("redis-url", "", "Redis URL for the list cache (overrides KB_REDIS_URL)")

	// Validation configuration
	flags.Int("title-min-length", 0, "Minimum title length (overrides KB_VALIDATION_TITLE_MIN)")
	flags.Int("title-max-length", 0, "Maximum title length (overrides KB_VALIDATION_TITLE_MAX)")

	// Application configuration
	flags.String("log-level", "", "Log level (overrides KB_LOG_LEVEL)")
	flags.String("log-format", "", "Log format: text or json (overrides KB_LOG_FORMAT)")
	flags.Duration("app-timeout", 0, "Timeout for one-shot commands (overrides KB_APP_TIMEOUT)")
}

// overridesFromFlags collects the persistent flags the user actually set
func (r *RootCommand) overridesFromFlags() *config.ConfigOverrides {
	flags := r.cmd.PersistentFlags()
	o := &config.ConfigOverrides{}

	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	dur := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}
	num := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}

	o.Backend = str("backend")
	o.DBPath = str("db-path")
	o.JSONPath = str("json-path")
	o.RemoteURL = str("remote-url")
	o.ClientTimeout = dur("client-timeout")
	o.RedisURL = str("redis-url")
	o.TitleMinLength = num("title-min-length")
	o.TitleMaxLength = num("title-max-length")
	o.LogLevel = str("log-level")
	o.LogFormat = str("log-format")
	o.Timeout = dur("app-timeout")
	return o
}

// setup loads configuration, builds the logger and opens the store
func (r *RootCommand) setup(cmd *cobra.Command) error {
	if cmd.Name() == "help" || (cmd.HasParent() && cmd.Parent().Name() == "completion") {
		return nil
	}
	if path, _ := r.cmd.PersistentFlags().GetString("config"); path != "" {
		r.loader.WithFile(path)
	}
	cfg, err := r.loader.LoadWithOverrides(r.overridesFromFlags())
	if err != nil {
		return err
	}
	r.config = cfg

	log, err := logging.New(cfg.Application.LogLevel, cfg.Application.LogFormat, r.logOut)
	if err != nil {
		return err
	}
	r.app.log = log

	if serve, ok := r.handler("serve").(*ServeCommand); ok {
		addr := serve.Settings.Addr
		serve.Settings = cfg.ServerSettings()
		if cmd.Flags().Changed("addr") {
			serve.Settings.Addr = addr
		}
	}

	if r.api != nil {
		r.app.api = r.api
		return nil
	}

	store, err := r.openStore(cmd.Context(), cfg, log)
	if err != nil {
		return r.errs.Handle("open task store", err)
	}
	r.store = store
	r.app.api = store.API
	log.WithFields(logrus.Fields{"backend": cfg.Storage.Backend}).Debug("task store ready")
	return nil
}

func (r *RootCommand) teardown() error {
	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

func (r *RootCommand) handler(name string) Command {
	command, _ := r.app.registry.Get(name)
	return command
}

// getAppTimeout returns the configured application timeout
func (r *RootCommand) getAppTimeout() time.Duration {
	if r.config != nil {
		return r.config.Application.Timeout
	}
	return 30 * time.Second
}

// oneShot runs a registered handler under the application timeout
func (r *RootCommand) oneShot(name, operation string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), r.getAppTimeout())
		defer cancel()
		return r.runAndClose(ctx, name, operation, args)
	}
}

// longRunning runs a registered handler until interrupted
func (r *RootCommand) longRunning(name, operation string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return r.runAndClose(ctx, name, operation, args)
	}
}

// runAndClose runs a handler and releases the store whether or not it
// failed. Cobra skips post-run hooks after an error, so this cannot wait
// for them.
func (r *RootCommand) runAndClose(ctx context.Context, name, operation string, args []string) (err error) {
	defer func() {
		if cerr := r.teardown(); cerr != nil && err == nil {
			err = r.errs.Handle("close task store", cerr)
		}
	}()
	return r.errs.Handle(operation, r.app.registry.Execute(ctx, name, args))
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	list := r.handler("list").(*ListCommand)
	listCmd := &cobra.Command{
		Use:   "list [query]",
		Short: "List tasks",
		Long: `List tasks, optionally filtered.

The query matches a case-insensitive substring of the title or description.

Examples:
  kb list                        # List every task
  kb list "login bug"            # Tasks mentioning "login bug"
  kb list --column review        # Tasks waiting for review`,
		RunE: r.oneShot("list", "list tasks"),
	}
	listCmd.Flags().StringVarP(&list.Column, "column", "c", "", "Only show tasks in this column")

	add := r.handler("add").(*AddCommand)
	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Long:  "Create a task. New tasks go to the backlog unless --column says otherwise.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  r.oneShot("add", "add task"),
	}
	addCmd.Flags().StringVarP(&add.Description, "description", "d", "", "Task description")
	addCmd.Flags().StringVarP(&add.Column, "column", "c", "", "Starting column")

	edit := r.handler("edit").(*EditCommand)
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a task's title, description or column",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if edit.Title, err = changedString(cmd, "title"); err != nil {
				return err
			}
			if edit.Description, err = changedString(cmd, "description"); err != nil {
				return err
			}
			edit.Column, err = changedString(cmd, "column")
			return err
		},
		RunE: r.oneShot("edit", "edit task"),
	}
	editCmd.Flags().StringP("title", "t", "", "New title")
	editCmd.Flags().StringP("description", "d", "", "New description")
	editCmd.Flags().StringP("column", "c", "", "New column")

	moveCmd := &cobra.Command{
		Use:   "move <id> <column>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE:  r.oneShot("move", "move task"),
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Long:  "Delete a task. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE:  r.oneShot("delete", "delete task"),
	}

	export := r.handler("export").(*ExportCommand)
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks",
		Long: `Export every task to standard output.

Supported formats:
  csv  - id, title, description, column
  json - an array of task objects`,
		Args: cobra.NoArgs,
		RunE: r.oneShot("export", "export tasks"),
	}
	exportCmd.Flags().StringVarP(&export.Format, "format", "f", export.Format, "Output format: csv or json")

	summaryCmd := &cobra.Command{
		Use:   "summary",
		Short: "Show task counts per column",
		Args:  cobra.NoArgs,
		RunE:  r.oneShot("summary", "summarize board"),
	}

	serve := r.handler("serve").(*ServeCommand)
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task REST API",
		Long: `Serve the task REST API over HTTP until interrupted.

Routes are mounted at /tasks and /api/tasks:
  GET    /tasks        list tasks
  POST   /tasks        create a task
  PATCH  /tasks/{id}   update a task
  DELETE /tasks/{id}   delete a task`,
		Args: cobra.NoArgs,
		RunE: r.longRunning("serve", "serve tasks"),
	}
	serveCmd.Flags().StringVar(&serve.Settings.Addr, "addr", serve.Settings.Addr, "Listen address (overrides KB_SERVER_ADDR)")

	boardCmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board",
		Long: `Open the interactive terminal board.

Keys:
  ←/→ select column   ↑/↓ select task   space grab   enter drop   esc cancel
  a add   e edit   d delete   / search   r refresh   q quit`,
		Args: cobra.NoArgs,
		RunE: r.longRunning("board", "run board"),
	}

	r.cmd.AddCommand(
		listCmd,
		addCmd,
		editCmd,
		moveCmd,
		deleteCmd,
		exportCmd,
		summaryCmd,
		serveCmd,
		boardCmd,
	)
}

// changedString returns the flag's value, or nil when the user left it unset
func changedString(cmd *cobra.Command, name string) (*string, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return nil, errors.NewInvalidInputError(name, nil, err.Error())
	}
	return &v, nil
}
