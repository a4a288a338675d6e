package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
)

func (h *Handler) Me(c echo.Context) error {
	board, err := h.users.Board(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, board)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.health.Check(c.Request().Context()))
}
