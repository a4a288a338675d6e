package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"

	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/http/validators"
)

type ServerOptions struct {
	AllowedOrigins     []string
	RateLimitPerMinute int
}

func NewServer(h *Handler, opts ServerOptions, logger logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = validators.New()
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: opts.AllowedOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(logger))

	Register(e, h, opts.RateLimitPerMinute)
	return e
}
