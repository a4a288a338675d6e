package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "kanban-board.com/kanban-board/internal/data_models"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/services"
)

func (h *Handler) CreateColumn(c echo.Context) error {
	var req dto.CreateColumnRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	column, err := h.columns.Create(c.Request().Context(), middleware.UserID(c), services.CreateColumnInput{
		Name:        req.Name,
		WorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, column)
}

func (h *Handler) ListColumns(c echo.Context) error {
	workspaceID, err := queryID(c, "workspaceId")
	if err != nil {
		return err
	}
	columns, err := h.columns.List(c.Request().Context(), middleware.UserID(c), workspaceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, columns)
}

func (h *Handler) GetColumn(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	column, err := h.columns.Get(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, column)
}

func (h *Handler) GetColumnWithTasks(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	column, err := h.columns.GetWithTasks(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, column)
}

func (h *Handler) UpdateColumn(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateColumnRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	column, err := h.columns.Update(c.Request().Context(), id, middleware.UserID(c), services.UpdateColumnInput{
		Name:        req.Name,
		WorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, column)
}

func (h *Handler) ReorderColumn(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ReorderColumnRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	column, err := h.columns.Reorder(c.Request().Context(), id, middleware.UserID(c), *req.NewPosition)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, column)
}
