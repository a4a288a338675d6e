package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"kanban-board.com/kanban-board/internal/exceptions"
)

type errorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Error      string    `json:"error"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorHandler renders domain exceptions and echo errors in one shape.
// Unexpected errors are logged and reported without detail.
func ErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := exceptions.StatusCode(err)
		message := err.Error()

		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			message = fmt.Sprint(he.Message)
		}

		if code >= http.StatusInternalServerError {
			logger.WithError(err).WithField("path", c.Path()).Error("unhandled error")
			message = "internal server error"
		}

		resp := errorResponse{
			StatusCode: code,
			Message:    message,
			Error:      http.StatusText(code),
			Timestamp:  time.Now().UTC(),
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, resp)
		}
		if err != nil {
			logger.WithError(err).Warn("error response not written")
		}
	}
}
