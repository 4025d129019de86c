package remote

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kanban-board/internal/api/apitest"
	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/server"
	"kanban-board/internal/validation"
)

func newBackedClient(t *testing.T, fake *apitest.Fake) *Client {
	t.Helper()
	schemas, err := validation.NewSchemaValidator()
	require.NoError(t, err)
	log := logrus.New()
	log.SetOutput(io.Discard)

	srv := httptest.NewServer(server.New(fake, schemas, server.DefaultConfig(), log).Handler())
	t.Cleanup(srv.Close)

	client, err := New(srv.URL+"/api", time.Second)
	require.NoError(t, err)
	return client
}

func TestClient_RoundTrip(t *testing.T) {
	fake := apitest.NewFake()
	client := newBackedClient(t, fake)
	ctx := context.Background()

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)

	created, err := client.CreateTask(ctx, domain.TaskInput{Title: "Remote", Column: domain.ColumnPtr(domain.ColumnReview)})
	require.NoError(t, err)
	assert.Equal(t, "task-1", created.ID)
	assert.Equal(t, domain.ColumnReview, created.Column)

	moved, err := client.MoveTask(ctx, created.ID, domain.ColumnDone)
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnDone, moved.Column)
	assert.Equal(t, "Remote", moved.Title)

	got, err := client.GetTask(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *moved, *got)

	require.NoError(t, client.DeleteTask(ctx, created.ID))
	assert.Empty(t, fake.Snapshot())
}

func TestClient_ErrorMapping(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		client := newBackedClient(t, apitest.NewFake())
		_, err := client.UpdateTask(ctx, "missing", domain.TaskPatch{Title: domain.StringPtr("x")})
		assert.True(t, errors.IsNotFound(err))
		assert.True(t, errors.IsNotFound(client.DeleteTask(ctx, "missing")))
		_, err = client.GetTask(ctx, "missing")
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("validation", func(t *testing.T) {
		client := newBackedClient(t, apitest.NewFake())
		_, err := client.CreateTask(ctx, domain.TaskInput{Description: "no title"})
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("server failure", func(t *testing.T) {
		fake := apitest.NewFake()
		fake.FailWith = errors.NewStorageError("list tasks", nil)
		client := newBackedClient(t, fake)
		_, err := client.ListTasks(ctx)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeStorage))
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		client, err := New(url, time.Second)
		require.NoError(t, err)
		_, err = client.ListTasks(ctx)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	})

	t.Run("timeout", func(t *testing.T) {
		block := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-block:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(srv.Close)
		t.Cleanup(func() { close(block) })

		client, err := New(srv.URL, 50*time.Millisecond)
		require.NoError(t, err)
		_, err = client.ListTasks(ctx)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
	})

	t.Run("malformed reply", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		t.Cleanup(srv.Close)

		client, err := New(srv.URL, time.Second)
		require.NoError(t, err)
		_, err = client.ListTasks(ctx)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	})
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	_, err := New("localhost:8080", 0)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput))

	client, err := New("http://localhost:8080/api/", 0)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", client.BaseURL)
	assert.Equal(t, DefaultTimeout, client.HTTP.Timeout)
}
