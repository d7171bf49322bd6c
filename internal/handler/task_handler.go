package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TaskHandler handles task endpoints for the authenticated user.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskService: taskService, logger: logger}
}

// CreateTaskRequest represents a new task.
type CreateTaskRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description"`
}

// UpdateTaskRequest represents a partial task update. Omitted fields are kept.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// TaskListResponse wraps the caller's tasks.
type TaskListResponse struct {
	Tasks []model.Task `json:"tasks"`
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateTaskRequest true "Task"
// @Success 200 {object} model.Task
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /task [post]
func (h *TaskHandler) CreateTask(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, apperrors.ErrInvalidRequest)
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, h.logger, apperrors.ErrTitleRequired)
	}

	task, err := h.taskService.Create(c.Request().Context(), ownerID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, task)
}

// ListTasks godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} TaskListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /task [get]
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	tasks, err := h.taskService.List(c.Request().Context(), ownerID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return c.JSON(http.StatusOK, TaskListResponse{Tasks: tasks})
}

// UpdateTask godoc
// @Summary Update a task
// @Description Responds with null when the task does not exist or belongs to another user.
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Param request body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} model.Task
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /task/{id} [put]
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusOK, nil)
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, h.logger, apperrors.ErrInvalidRequest)
	}

	task, err := h.taskService.Update(c.Request().Context(), ownerID, taskID, model.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
	})
	if errors.Is(err, apperrors.ErrTaskNotFound) {
		return c.JSON(http.StatusOK, nil)
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Description Succeeds whether or not a task owned by the caller matched.
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /task/{id} [delete]
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if taskID, err := uuid.Parse(c.Param("id")); err == nil {
		if err := h.taskService.Delete(c.Request().Context(), ownerID, taskID); err != nil {
			return respondError(c, h.logger, err)
		}
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted"})
}
