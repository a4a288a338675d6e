package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-board.com/kanban-board/internal/constants"
	dto "kanban-board.com/kanban-board/internal/data_models"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/services"
)

func (h *Handler) CreateStatus(c echo.Context) error {
	var req dto.CreateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	status, err := h.statuses.Create(c.Request().Context(), middleware.UserID(c), services.CreateStatusInput{
		Name:        req.Name,
		Color:       constants.StatusColor(req.Color),
		WorkspaceID: req.WorkspaceID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, status)
}

func (h *Handler) ListStatuses(c echo.Context) error {
	workspaceID, err := queryID(c, "workspaceId")
	if err != nil {
		return err
	}
	statuses, err := h.statuses.List(c.Request().Context(), middleware.UserID(c), workspaceID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statuses)
}

func (h *Handler) GetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	status, err := h.statuses.Get(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateStatusRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := services.UpdateStatusInput{
		Name:        req.Name,
		WorkspaceID: req.WorkspaceID,
	}
	if req.Color != nil {
		color := constants.StatusColor(*req.Color)
		in.Color = &color
	}

	status, err := h.statuses.Update(c.Request().Context(), id, middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
