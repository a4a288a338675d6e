package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	api := e.Group("/api")

	api.GET("/health", h.Health)
	api.GET("/ws", h.Connect)

	secured := api.Group("",
		middleware.Authenticate(h.verifier),
		middleware.RateLimiter(rateLimitPerMinute, time.Minute),
	)

	secured.GET("/user/me", h.Me)

	secured.POST("/workspaces", h.CreateWorkspace)
	secured.GET("/workspaces", h.ListWorkspaces)
	secured.GET("/workspaces/:id", h.GetWorkspace)
	secured.GET("/workspaces/:id/with-columns", h.GetWorkspaceWithColumns)
	secured.GET("/workspaces/:id/with-statuses", h.GetWorkspaceWithStatuses)
	secured.PATCH("/workspaces/:id", h.UpdateWorkspace)

	secured.POST("/board-columns", h.CreateColumn)
	secured.GET("/board-columns", h.ListColumns)
	secured.GET("/board-columns/:id", h.GetColumn)
	secured.GET("/board-columns/:id/with-tasks", h.GetColumnWithTasks)
	secured.PATCH("/board-columns/:id", h.UpdateColumn)
	secured.PATCH("/board-columns/:id/reorder", h.ReorderColumn)

	secured.POST("/statuses", h.CreateStatus)
	secured.GET("/statuses", h.ListStatuses)
	secured.GET("/statuses/:id", h.GetStatus)
	secured.PATCH("/statuses/:id", h.UpdateStatus)

	secured.POST("/tasks", h.CreateTask)
	secured.GET("/tasks", h.ListTasks)
	secured.GET("/tasks/:id", h.GetTask)
	secured.PATCH("/tasks/:id", h.UpdateTask)
	secured.PATCH("/tasks/:id/reorder", h.ReorderTask)
}
