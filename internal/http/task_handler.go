package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"kanban-board.com/kanban-board/internal/constants"
	dto "kanban-board.com/kanban-board/internal/data_models"
	middleware "kanban-board.com/kanban-board/internal/http/middlewares"
	"kanban-board.com/kanban-board/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), middleware.UserID(c), services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		StatusID:    req.StatusID,
		Stage:       constants.TaskStage(req.Stage),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	columnID, err := queryID(c, "columnId")
	if err != nil {
		return err
	}
	tasks, err := h.tasks.List(c.Request().Context(), middleware.UserID(c), columnID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.Request().Context(), id, middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.UpdateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	in := services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		StatusID:    req.StatusID,
	}
	if req.Stage != nil {
		stage := constants.TaskStage(*req.Stage)
		in.Stage = &stage
	}

	task, err := h.tasks.Update(c.Request().Context(), id, middleware.UserID(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ReorderTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req dto.ReorderTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	task, err := h.tasks.Reorder(c.Request().Context(), id, middleware.UserID(c), services.ReorderTaskInput{
		NewOrder:    *req.NewOrder,
		NewColumnID: req.NewColumnID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}
