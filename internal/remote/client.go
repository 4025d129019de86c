// Package remote implements the task store API against a running kb server.
package remote

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"kanban-board/internal/api"
	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/logging"
)

// DefaultTimeout bounds each request when no timeout is configured
const DefaultTimeout = 10 * time.Second

// Client talks to the REST task routes under BaseURL
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

var _ api.API = (*Client)(nil)

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// New creates a client for baseURL, for example http://localhost:8080/api
func New(baseURL string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewInvalidInputError("remote_url", baseURL, "must be an absolute http(s) URL")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}, nil
}

func taskPath(id string) string {
	return "/tasks/" + url.PathEscape(id)
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, "/tasks", "", nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return tasks, nil
}

// GetTask has no route of its own, so it filters the listing.
func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, t := range tasks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, errors.NewNotFoundError("task", id)
}

func (c *Client) CreateTask(ctx context.Context, input domain.TaskInput) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, "create task", http.MethodPost, "/tasks", "", input, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, "update task", http.MethodPatch, taskPath(id), id, patch, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (c *Client) MoveTask(ctx context.Context, id string, column domain.Column) (*domain.Task, error) {
	return c.UpdateTask(ctx, id, domain.MovePatch(column))
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, "delete task", http.MethodDelete, taskPath(id), id, nil, nil)
}

// do sends one request. A non-2xx reply is mapped onto the error taxonomy;
// id names the task for NotFound errors.
func (c *Client) do(ctx context.Context, op, method, path, id string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := sonic.Marshal(body)
		if err != nil {
			return errors.NewInvalidInputError("body", body, err.Error())
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return errors.NewTransportError(op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return classify(op, err, c.HTTP.Timeout)
	}
	defer resp.Body.Close()
	logging.Debugf("remote %s %s: %d", method, req.URL.Path, resp.StatusCode)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return classify(op, err, c.HTTP.Timeout)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, id, resp.StatusCode, payload)
	}

	if out == nil {
		return nil
	}
	if err := sonic.Unmarshal(payload, out); err != nil {
		return errors.NewTransportError(op, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func classify(op string, err error, timeout time.Duration) error {
	var netErr net.Error
	if stderrors.Is(err, context.DeadlineExceeded) || (stderrors.As(err, &netErr) && netErr.Timeout()) {
		return errors.NewTimeoutError(op, timeout)
	}
	return errors.NewTransportError(op, err)
}

func statusError(op, id string, status int, payload []byte) error {
	var body errorBody
	_ = sonic.Unmarshal(payload, &body)
	if body.Message == "" {
		body.Message = http.StatusText(status)
	}

	switch {
	case status == http.StatusNotFound:
		return errors.NewNotFoundError("task", id)
	case status == http.StatusBadRequest:
		return errors.NewValidationError(body.Message, nil)
	case status == http.StatusGatewayTimeout:
		return errors.NewTimeoutError(op, body.Message)
	default:
		return errors.NewStorageError(op, fmt.Errorf("server returned %d: %s", status, body.Message)).
			WithContext("status", status)
	}
}
