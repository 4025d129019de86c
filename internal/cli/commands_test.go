package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-board/internal/api/apitest"
	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
)

func seededTasks() []domain.Task {
	return []domain.Task{
		{ID: "1", Title: "Fix login bug", Description: "SSO redirect", Column: domain.ColumnReview},
		{ID: "2", Title: "Write docs", Column: domain.ColumnBacklog},
		{ID: "3", Title: "Ship release", Column: domain.ColumnDone},
	}
}

func newTestApp(tasks ...domain.Task) (*App, *apitest.Fake, *bytes.Buffer) {
	fake := apitest.NewFake(tasks...)
	out := &bytes.Buffer{}
	return NewApp(fake, WithOutput(out)), fake, out
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("all tasks", func(t *testing.T) {
		app, _, out := newTestApp(seededTasks()...)
		require.NoError(t, NewListCommand(app).Execute(ctx, nil))

		assert.Contains(t, out.String(), "ID")
		assert.Contains(t, out.String(), "Fix login bug")
		assert.Contains(t, out.String(), "Write docs")
		assert.Contains(t, out.String(), "Ship release")
	})

	t.Run("query and column", func(t *testing.T) {
		app, _, out := newTestApp(seededTasks()...)
		cmd := NewListCommand(app)
		cmd.Column = "review"
		require.NoError(t, cmd.Execute(ctx, []string{"LOGIN"}))

		assert.Contains(t, out.String(), "Fix login bug")
		assert.NotContains(t, out.String(), "Write docs")
	})

	t.Run("no matches", func(t *testing.T) {
		app, _, out := newTestApp(seededTasks()...)
		require.NoError(t, NewListCommand(app).Execute(ctx, []string{"signup"}))
		assert.Equal(t, "No tasks found\n", out.String())
	})

	t.Run("bad column", func(t *testing.T) {
		app, fake, _ := newTestApp()
		cmd := NewListCommand(app)
		cmd.Column = "later"
		err := cmd.Execute(ctx, nil)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		assert.Zero(t, fake.Calls["ListTasks"])
	})
}

func TestAddCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("joins args into the title", func(t *testing.T) {
		app, fake, out := newTestApp()
		cmd := NewAddCommand(app)
		cmd.Description = "before friday"
		require.NoError(t, cmd.Execute(ctx, []string{"Write", "notes"}))

		tasks := fake.Snapshot()
		require.Len(t, tasks, 1)
		assert.Equal(t, "Write notes", tasks[0].Title)
		assert.Equal(t, "before friday", tasks[0].Description)
		assert.Equal(t, domain.ColumnBacklog, tasks[0].Column)
		assert.Equal(t, "Created task task-1: Write notes [backlog]\n", out.String())
	})

	t.Run("starting column", func(t *testing.T) {
		app, fake, _ := newTestApp()
		cmd := NewAddCommand(app)
		cmd.Column = "in-progress"
		require.NoError(t, cmd.Execute(ctx, []string{"Pair on review"}))
		assert.Equal(t, domain.ColumnInProgress, fake.Snapshot()[0].Column)
	})

	t.Run("missing title", func(t *testing.T) {
		app, _, _ := newTestApp()
		err := NewAddCommand(app).Execute(ctx, nil)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestEditCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("changes only the given fields", func(t *testing.T) {
		app, fake, out := newTestApp(seededTasks()...)
		cmd := NewEditCommand(app)
		cmd.Title = domain.StringPtr("Fix logout bug")
		require.NoError(t, cmd.Execute(ctx, []string{"1"}))

		task := fake.Snapshot()[0]
		assert.Equal(t, "Fix logout bug", task.Title)
		assert.Equal(t, "SSO redirect", task.Description)
		assert.Equal(t, domain.ColumnReview, task.Column)
		assert.Contains(t, out.String(), "Updated task 1")
	})

	t.Run("empty patch", func(t *testing.T) {
		app, fake, _ := newTestApp(seededTasks()...)
		err := NewEditCommand(app).Execute(ctx, []string{"1"})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
		assert.Zero(t, fake.Calls["UpdateTask"])
	})

	t.Run("unknown task", func(t *testing.T) {
		app, _, _ := newTestApp(seededTasks()...)
		cmd := NewEditCommand(app)
		cmd.Column = domain.StringPtr("done")
		err := cmd.Execute(ctx, []string{"missing"})
		assert.True(t, errors.IsNotFound(err))
	})
}

func TestMoveCommand(t *testing.T) {
	ctx := context.Background()
	app, fake, out := newTestApp(seededTasks()...)

	require.NoError(t, NewMoveCommand(app).Execute(ctx, []string{"2", "in-progress"}))
	assert.Equal(t, domain.ColumnInProgress, fake.Snapshot()[1].Column)
	assert.Equal(t, "Task moved to in progress\n", out.String())

	err := NewMoveCommand(app).Execute(ctx, []string{"2", "someday"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	err = NewMoveCommand(app).Execute(ctx, []string{"2"})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
}

func TestDeleteCommand(t *testing.T) {
	ctx := context.Background()
	app, fake, out := newTestApp(seededTasks()...)

	require.NoError(t, NewDeleteCommand(app).Execute(ctx, []string{"3"}))
	assert.Len(t, fake.Snapshot(), 2)
	assert.Equal(t, "Task deleted successfully\n", out.String())

	err := NewDeleteCommand(app).Execute(ctx, []string{"3"})
	assert.True(t, errors.IsNotFound(err))
}

func TestExportCommand(t *testing.T) {
	ctx := context.Background()

	t.Run("csv by default", func(t *testing.T) {
		app, _, out := newTestApp(seededTasks()...)
		require.NoError(t, NewExportCommand(app).Execute(ctx, nil))
		assert.Contains(t, out.String(), "id,title,description,column\n")
		assert.Contains(t, out.String(), "1,Fix login bug,SSO redirect,review\n")
	})

	t.Run("json", func(t *testing.T) {
		app, _, out := newTestApp(seededTasks()...)
		cmd := NewExportCommand(app)
		cmd.Format = "JSON"
		require.NoError(t, cmd.Execute(ctx, nil))
		assert.True(t, strings.HasPrefix(out.String(), "["))
		assert.Contains(t, out.String(), `"title": "Ship release"`)
	})

	t.Run("unknown format", func(t *testing.T) {
		app, _, _ := newTestApp(seededTasks()...)
		cmd := NewExportCommand(app)
		cmd.Format = "xml"
		err := cmd.Execute(ctx, nil)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))
	})
}

func TestSummaryCommand(t *testing.T) {
	app, _, out := newTestApp(seededTasks()...)
	require.NoError(t, NewSummaryCommand(app).Execute(context.Background(), nil))

	assert.Contains(t, out.String(), "Board summary")
	assert.Regexp(t, `Total\s+3\n`, out.String())
}

func TestCommands_StoreFailure(t *testing.T) {
	ctx := context.Background()
	app, fake, out := newTestApp(seededTasks()...)
	fake.FailWith = errors.NewStorageError("list tasks", assert.AnError)

	commands := map[string][]string{
		"list":    nil,
		"summary": nil,
		"export":  nil,
		"delete":  {"1"},
		"move":    {"1", "done"},
		"add":     {"title"},
	}
	for name, args := range commands {
		t.Run(name, func(t *testing.T) {
			err := app.registry.Execute(ctx, name, args)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
		})
	}
	assert.Empty(t, out.String())
}

func TestCommandRegistry(t *testing.T) {
	app, _, _ := newTestApp()

	for _, name := range []string{"list", "add", "edit", "move", "delete", "export", "summary", "serve", "board"} {
		_, ok := app.registry.Get(name)
		assert.True(t, ok, name)
	}

	err := app.registry.Execute(context.Background(), "start", nil)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	assert.Equal(t, "usage: kb <add|board|delete|edit|export|list|move|serve|summary> [args]", app.registry.GetUsage())
}
