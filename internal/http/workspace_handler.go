package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "kanban-board.com/kanban-board/internal/data_models"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/services"
)

func (h *Handler) CreateWorkspace(c echo.Context) error {
	var req dto.CreateWorkspaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	workspace, err := h.workspaces.Create(c.Request().Context(), middleware.UserID(c), services.CreateWorkspaceInput{
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, workspace)
}

func (h *Handler) ListWorkspaces(c echo.Context) error {
	workspaces, err := h.workspaces.List(c.Request().Context(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspaces)
}

func (h *Handler) GetWorkspace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	workspace, err := h.workspaces.Get(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspace)
}

func (h *Handler) GetWorkspaceWithColumns(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	workspace, err := h.workspaces.GetWithColumns(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspace)
}

func (h *Handler) GetWorkspaceWithStatuses(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	workspace, err := h.workspaces.GetWithStatuses(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspace)
}

func (h *Handler) UpdateWorkspace(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateWorkspaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	workspace, err := h.workspaces.Update(c.Request().Context(), id, middleware.UserID(c), services.UpdateWorkspaceInput{
		Name: req.Name,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspace)
}
