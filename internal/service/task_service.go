package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

// TaskInput carries the fields of a new task.
type TaskInput struct {
	Title       string
	Description string
}

// TaskService handles task operations. Every call is scoped to ownerID.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, in TaskInput) (*model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error
}

type taskService struct {
	repo   repository.TaskRepository
	logger *slog.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, logger *slog.Logger) TaskService {
	return &taskService{repo: repo, logger: logger}
}

func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, in TaskInput) (*model.Task, error) {
	task := &model.Task{
		Title:       in.Title,
		Description: in.Description,
		UserID:      ownerID,
	}
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Update applies patch and returns the stored task. A task that is missing
// or owned by someone else yields ErrTaskNotFound in both cases.
func (s *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, patch model.TaskPatch) (*model.Task, error) {
	if fields := patch.Fields(); len(fields) > 0 {
		if err := s.repo.UpdateByIDAndOwner(ctx, taskID, ownerID, fields); err != nil {
			return nil, fmt.Errorf("update task: %w", err)
		}
	}

	task, err := s.repo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return task, nil
}

// Delete removes the task if ownerID owns it. Deleting nothing is not an error.
func (s *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	n, err := s.repo.DeleteByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n == 0 {
		s.logger.DebugContext(ctx, "delete matched no task", "task_id", taskID, "user_id", ownerID)
	}
	return nil
}
