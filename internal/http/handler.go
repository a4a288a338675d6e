package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"kanban-board.com/kanban-board/internal/events"
	"kanban-board.com/kanban-board/internal/exceptions"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/services"
)

type Services struct {
	Workspaces *services.WorkspaceService
	Columns    *services.BoardColumnService
	Statuses   *services.StatusService
	Tasks      *services.TaskService
	Users      *services.UserService
	Health     *services.HealthService
}

type Handler struct {
	workspaces *services.WorkspaceService
	columns    *services.BoardColumnService
	statuses   *services.StatusService
	tasks      *services.TaskService
	users      *services.UserService
	health     *services.HealthService
	hub        *events.Hub
	verifier   middleware.TokenVerifier
	upgrader   websocket.Upgrader
	logger     logrus.FieldLogger
}

func NewHandler(svc Services, hub *events.Hub, verifier middleware.TokenVerifier, logger logrus.FieldLogger) *Handler {
	return &Handler{
		workspaces: svc.Workspaces,
		columns:    svc.Columns,
		statuses:   svc.Statuses,
		tasks:      svc.Tasks,
		users:      svc.Users,
		health:     svc.Health,
		hub:        hub,
		verifier:   verifier,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browsers connect cross-origin; the token is the access check.
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger: logger,
	}
}

func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if err := uuid.Validate(id); err != nil {
		return "", exceptions.InvalidInput("id must be a UUID")
	}
	return id, nil
}

func queryID(c echo.Context, name string) (string, error) {
	id := c.QueryParam(name)
	if id == "" {
		return "", nil
	}
	if err := uuid.Validate(id); err != nil {
		return "", exceptions.InvalidInput("%s must be a UUID", name)
	}
	return id, nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return exceptions.InvalidInput("invalid JSON payload")
	}
	return c.Validate(req)
}
