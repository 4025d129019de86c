package server

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"kanban-board/internal/errors"
)

// MsgNotFound is the body message for unknown task ids
const MsgNotFound = "Task not found"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// StatusFor maps an error to its HTTP status
func StatusFor(err error) int {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case errors.ErrorTypeValidation, errors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case errors.ErrorTypeNotFound:
		return http.StatusNotFound
	case errors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrorTypeTransport:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func responseFor(err error) (int, ErrorResponse) {
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, ErrorResponse{Message: msg, Code: fmt.Sprintf("HTTP_%d", httpErr.Code)}
	}

	status := StatusFor(err)
	msg := errors.GetUserMessage(err)
	switch {
	case status == http.StatusNotFound:
		msg = MsgNotFound
	case !errors.IsAppError(err):
		msg = http.StatusText(status)
	}
	return status, ErrorResponse{Message: msg, Code: errors.GetErrorCode(err)}
}

// errorHandler renders every handler error as an ErrorResponse and logs
// the ones that indicate a system fault.
func errorHandler(log *logrus.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := responseFor(err)
		if status >= http.StatusInternalServerError && errors.ShouldLogError(err) {
			log.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"path":   c.Path(),
			}).Error("request failed")
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			log.WithError(werr).Warn("failed to write error response")
		}
	}
}
