package server

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"kanban-board/internal/api"
	"kanban-board/internal/domain"
	"kanban-board/internal/errors"
	"kanban-board/internal/validation"
)

// MsgDeleted confirms a delete
const MsgDeleted = "Task deleted successfully"

// Register wires up all task routes on the provided Echo instance, both at
// the root and under /api.
func Register(e *echo.Echo, store api.API, schemas *validation.SchemaValidator, log *logrus.Logger) {
	e.GET("/healthz", healthz())

	for _, g := range []*echo.Group{e.Group(""), e.Group("/api")} {
		g.GET("/tasks", listTasks(store))
		g.POST("/tasks", createTask(store, schemas))
		g.PATCH("/tasks/:id", updateTask(store, schemas))
		g.DELETE("/tasks/:id", deleteTask(store, log))
	}
}

type deleteResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}

func listTasks(store api.API) echo.HandlerFunc {
	return func(c echo.Context) error {
		tasks, err := store.ListTasks(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, tasks)
	}
}

func createTask(store api.API, schemas *validation.SchemaValidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var input domain.TaskInput
		if err := decodeBody(c, schemas, validation.SchemaTaskCreate, &input); err != nil {
			return err
		}

		task, err := store.CreateTask(c.Request().Context(), input)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, task)
	}
}

// updateTask ignores any id in the body; the path names the task.
func updateTask(store api.API, schemas *validation.SchemaValidator) echo.HandlerFunc {
	return func(c echo.Context) error {
		var patch domain.TaskPatch
		if err := decodeBody(c, schemas, validation.SchemaTaskPatch, &patch); err != nil {
			return err
		}

		task, err := store.UpdateTask(c.Request().Context(), c.Param("id"), patch)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(store api.API, log *logrus.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		if err := store.DeleteTask(c.Request().Context(), id); err != nil {
			return err
		}
		log.WithField("id", id).Debug("task removed over http")
		return c.JSON(http.StatusOK, deleteResponse{ID: id, Message: MsgDeleted})
	}
}

// decodeBody validates the raw body against the named schema before
// decoding it into v.
func decodeBody(c echo.Context, schemas *validation.SchemaValidator, schema string, v interface{}) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}

	if err := schemas.Validate(schema, body); err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return ve.ToAppError()
		}
		return err
	}

	if err := sonic.Unmarshal(body, v); err != nil {
		return errors.NewValidationError("request body is not valid", err)
	}
	return nil
}
