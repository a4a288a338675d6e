package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/constants"
	"kanban-board.com/kanban-board/internal/events"
	"kanban-board.com/kanban-board/internal/exceptions"
	model "kanban-board.com/kanban-board/internal/models"
	"kanban-board.com/kanban-board/internal/ordering"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

type CreateTaskInput struct {
	Title       string
	Description string
	ColumnID    string
	StatusID    *string
	Stage       constants.TaskStage
}

// UpdateTaskInput leaves nil fields untouched. An empty StatusID clears the
// task's status.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	StatusID    *string
	Stage       *constants.TaskStage
}

type ReorderTaskInput struct {
	NewOrder    int
	NewColumnID *string
}

type TaskService struct {
	repo      *repository.TaskRepository
	columns   *repository.BoardColumnRepository
	statuses  *repository.StatusRepository
	tx        *repository.Transactor
	publisher *events.Publisher
	mode      constants.StatusMode
	stages    *StageMapping
}

func NewTaskService(
	repo *repository.TaskRepository,
	columns *repository.BoardColumnRepository,
	statuses *repository.StatusRepository,
	tx *repository.Transactor,
	publisher *events.Publisher,
	mode constants.StatusMode,
	stages *StageMapping,
) *TaskService {
	return &TaskService{
		repo:      repo,
		columns:   columns,
		statuses:  statuses,
		tx:        tx,
		publisher: publisher,
		mode:      mode,
		stages:    stages,
	}
}

func (s *TaskService) columnDerived() bool {
	return s.mode == constants.StatusModeColumn
}

func (s *TaskService) Create(ctx context.Context, userID string, in CreateTaskInput) (*model.Task, error) {
	title, err := cleanName("title", in.Title, minTaskTitleLen, maxTitleLen)
	if err != nil {
		return nil, err
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, exceptions.InvalidInput("description must not be empty")
	}
	if err := requireID("columnId", in.ColumnID); err != nil {
		return nil, err
	}
	statusID, err := optionalID("statusId", in.StatusID)
	if err != nil {
		return nil, err
	}
	stage := in.Stage
	if stage == "" {
		stage = constants.StageTodo
	}
	if !stage.Valid() {
		return nil, exceptions.InvalidInput("unknown stage %q", stage)
	}

	task := &model.Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		StatusID:    statusID,
		ColumnID:    in.ColumnID,
		UserID:      userID,
	}

	scope := ordering.TasksInColumn
	err = s.tx.WithTransaction(ctx, []string{scope.LockKey(in.ColumnID)}, func(tx *gorm.DB) error {
		column, err := s.columns.WithTx(tx).LockByIDForOwner(ctx, in.ColumnID, userID)
		if err != nil {
			return err
		}
		if err := s.checkStatus(ctx, tx, statusID, column.WorkspaceID, userID); err != nil {
			return err
		}
		if s.columnDerived() {
			if derived, ok := s.stages.StageFor(column.Name); ok {
				stage = derived
			}
		}
		task.Stage = stage

		repo := s.repo.WithTx(tx)
		taken, err := repo.TitleTaken(ctx, title, "")
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("task %q already exists", title)
		}

		task.Order, err = ordering.NextPosition(tx, scope, in.ColumnID)
		if err != nil {
			return err
		}
		return repo.Insert(ctx, task)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.TaskCreated, task)
	return task, nil
}

func (s *TaskService) List(ctx context.Context, userID, columnID string) ([]model.Task, error) {
	if columnID == "" {
		return s.repo.List(ctx, userID)
	}
	if err := requireID("columnId", columnID); err != nil {
		return nil, err
	}
	if _, err := s.columns.FindByIDForOwner(ctx, columnID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListForColumn(ctx, userID, columnID)
}

func (s *TaskService) Get(ctx context.Context, id, userID string) (*model.Task, error) {
	return s.repo.FindByIDForOwner(ctx, id, userID)
}

// Update edits a task in place. In column-derived mode a stage change also
// moves the task to the end of the column mapped to the new stage.
func (s *TaskService) Update(ctx context.Context, id, userID string, in UpdateTaskInput) (*model.Task, error) {
	if in.Title == nil && in.Description == nil && in.StatusID == nil && in.Stage == nil {
		return nil, exceptions.InvalidInput("no fields to update")
	}

	current, err := s.repo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	title := ""
	if in.Title != nil {
		if title, err = cleanName("title", *in.Title, minTaskTitleLen, maxTitleLen); err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, exceptions.InvalidInput("description must not be empty")
		}
		fields["description"] = description
	}
	var statusID *string
	if in.StatusID != nil {
		if statusID, err = optionalID("statusId", in.StatusID); err != nil {
			return nil, err
		}
		fields["status_id"] = statusID
	}
	if in.Stage != nil {
		if !in.Stage.Valid() {
			return nil, exceptions.InvalidInput("unknown stage %q", *in.Stage)
		}
		fields["stage"] = *in.Stage
	}

	stageChanged := in.Stage != nil && *in.Stage != current.Stage
	statusChanged := in.StatusID != nil && derefID(statusID) != derefID(current.StatusID)

	scope := ordering.TasksInColumn
	keys := []string{scope.LockKey(current.ColumnID)}
	destColumnID := current.ColumnID
	if s.columnDerived() && stageChanged {
		destColumnID, err = s.columnForStage(ctx, current.ColumnID, userID, *in.Stage)
		if err != nil {
			return nil, err
		}
		keys = append(keys, scope.LockKey(destColumnID))
	}

	var updated *model.Task
	err = s.tx.WithTransaction(ctx, keys, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, id, userID)
		if err != nil {
			return err
		}
		if locked.ColumnID != current.ColumnID {
			return errScopeChanged("task")
		}

		dest, err := s.columns.WithTx(tx).LockByIDForOwner(ctx, destColumnID, userID)
		if err != nil {
			return err
		}
		if destColumnID != locked.ColumnID {
			if stage, ok := s.stages.StageFor(dest.Name); !ok || stage != *in.Stage {
				return errScopeChanged("column")
			}
		}

		if statusChanged {
			if err := s.checkStatus(ctx, tx, statusID, dest.WorkspaceID, userID); err != nil {
				return err
			}
		} else if destColumnID != locked.ColumnID {
			if err := s.checkStatus(ctx, tx, locked.StatusID, dest.WorkspaceID, userID); err != nil {
				return err
			}
		}

		if in.Title != nil {
			taken, err := repo.TitleTaken(ctx, title, id)
			if err != nil {
				return err
			}
			if taken {
				return exceptions.Conflict("task %q already exists", title)
			}
		}

		if destColumnID != locked.ColumnID {
			size, err := ordering.Count(tx, scope, destColumnID)
			if err != nil {
				return err
			}
			if err := ordering.Move(tx, scope, id, locked.ColumnID, locked.Order, destColumnID, size, fields); err != nil {
				return err
			}
			updated, err = repo.FindByIDForOwner(ctx, id, userID)
			return err
		}

		updated, err = repo.Update(ctx, id, userID, fields)
		return err
	})
	if err != nil {
		return nil, err
	}

	switch {
	case stageChanged:
		s.publisher.Publish(ctx, userID, events.TaskStatusChanged, events.StatusChange{
			Task:      updated,
			OldStatus: string(current.Stage),
			NewStatus: string(updated.Stage),
		})
	case statusChanged:
		s.publisher.Publish(ctx, userID, events.TaskStatusChanged, events.StatusChange{
			Task:      updated,
			OldStatus: derefID(current.StatusID),
			NewStatus: derefID(updated.StatusID),
		})
	default:
		s.publisher.Publish(ctx, userID, events.TaskUpdated, updated)
	}
	return updated, nil
}

// columnForStage picks the column of the task's workspace that maps to stage,
// preferring the task's own column, then the lowest position.
func (s *TaskService) columnForStage(ctx context.Context, columnID, userID string, stage constants.TaskStage) (string, error) {
	column, err := s.columns.FindByIDForOwner(ctx, columnID, userID)
	if err != nil {
		return "", err
	}
	if mapped, ok := s.stages.StageFor(column.Name); ok && mapped == stage {
		return column.ID, nil
	}

	siblings, err := s.columns.ListForWorkspace(ctx, userID, column.WorkspaceID)
	if err != nil {
		return "", err
	}
	for _, c := range siblings {
		if mapped, ok := s.stages.StageFor(c.Name); ok && mapped == stage {
			return c.ID, nil
		}
	}
	return "", exceptions.DomainInvariant("no column of this workspace maps to stage %q", stage)
}

// Reorder moves a task inside its column or, when NewColumnID names another
// column, across columns.
func (s *TaskService) Reorder(ctx context.Context, id, userID string, in ReorderTaskInput) (*model.Task, error) {
	if err := ordering.ValidateTarget(in.NewOrder); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if in.NewColumnID != nil && *in.NewColumnID != "" && *in.NewColumnID != current.ColumnID {
		if err := requireID("newColumnId", *in.NewColumnID); err != nil {
			return nil, err
		}
		return s.moveAcross(ctx, current, userID, *in.NewColumnID, in.NewOrder)
	}
	return s.reorderWithin(ctx, current, userID, in.NewOrder)
}

func (s *TaskService) reorderWithin(ctx context.Context, current *model.Task, userID string, newOrder int) (*model.Task, error) {
	scope := ordering.TasksInColumn
	var (
		result *model.Task
		moved  bool
	)
	err := s.tx.WithTransaction(ctx, []string{scope.LockKey(current.ColumnID)}, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, current.ID, userID)
		if err != nil {
			return err
		}
		if locked.ColumnID != current.ColumnID {
			return errScopeChanged("task")
		}
		if _, err := s.columns.WithTx(tx).LockByIDForOwner(ctx, locked.ColumnID, userID); err != nil {
			return err
		}

		size, err := ordering.Count(tx, scope, locked.ColumnID)
		if err != nil {
			return err
		}
		target := ordering.ClampWithin(newOrder, size)
		if target == locked.Order {
			result = locked
			return nil
		}

		if err := ordering.Reorder(tx, scope, locked.ColumnID, locked.ID, locked.Order, target, nil); err != nil {
			return err
		}
		moved = true
		result, err = repo.FindByIDForOwner(ctx, locked.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if moved {
		s.publisher.Publish(ctx, userID, events.TaskReordered, result)
	}
	return result, nil
}

func (s *TaskService) moveAcross(ctx context.Context, current *model.Task, userID, destID string, newOrder int) (*model.Task, error) {
	if _, err := s.columns.FindByIDForOwner(ctx, destID, userID); err != nil {
		return nil, err
	}

	scope := ordering.TasksInColumn
	keys := []string{scope.LockKey(current.ColumnID), scope.LockKey(destID)}

	var moved *model.Task
	err := s.tx.WithTransaction(ctx, keys, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, current.ID, userID)
		if err != nil {
			return err
		}
		if locked.ColumnID != current.ColumnID {
			return errScopeChanged("task")
		}

		dest, err := s.columns.WithTx(tx).LockByIDForOwner(ctx, destID, userID)
		if err != nil {
			return err
		}
		if err := s.checkStatus(ctx, tx, locked.StatusID, dest.WorkspaceID, userID); err != nil {
			return err
		}

		set := map[string]any{}
		if s.columnDerived() {
			stage, ok := s.stages.StageFor(dest.Name)
			if !ok {
				return exceptions.DomainInvariant("column %q has no stage mapping", dest.Name)
			}
			set["stage"] = stage
		}

		size, err := ordering.Count(tx, scope, destID)
		if err != nil {
			return err
		}
		target := ordering.ClampAppend(newOrder, size)
		if err := ordering.Move(tx, scope, locked.ID, locked.ColumnID, locked.Order, destID, target, set); err != nil {
			return err
		}

		moved, err = repo.FindByIDForOwner(ctx, locked.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.TaskReordered, moved)
	if moved.Stage != current.Stage {
		s.publisher.Publish(ctx, userID, events.TaskStatusChanged, events.StatusChange{
			Task:      moved,
			OldStatus: string(current.Stage),
			NewStatus: string(moved.Stage),
		})
	}
	return moved, nil
}

// checkStatus verifies that statusID, when set, is owned and belongs to the
// given workspace.
func (s *TaskService) checkStatus(ctx context.Context, tx *gorm.DB, statusID *string, workspaceID, userID string) error {
	if statusID == nil {
		return nil
	}
	status, err := s.statuses.WithTx(tx).FindByIDForOwner(ctx, *statusID, userID)
	if err != nil {
		return err
	}
	if status.WorkspaceID != workspaceID {
		return exceptions.DomainInvariant("status %s belongs to another workspace", status.ID)
	}
	return nil
}

func optionalID(field string, value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if err := requireID(field, *value); err != nil {
		return nil, err
	}
	v := *value
	return &v, nil
}

func derefID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
