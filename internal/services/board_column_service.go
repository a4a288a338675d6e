package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/events"
	"kanban-board.com/kanban-board/internal/exceptions"
	model "kanban-board.com/kanban-board/internal/models"
	"kanban-board.com/kanban-board/internal/ordering"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

type CreateColumnInput struct {
	Name        string
	WorkspaceID string
}

type UpdateColumnInput struct {
	Name        *string
	WorkspaceID *string
}

type BoardColumnService struct {
	repo       *repository.BoardColumnRepository
	workspaces *repository.WorkspaceRepository
	tx         *repository.Transactor
	publisher  *events.Publisher
}

func NewBoardColumnService(
	repo *repository.BoardColumnRepository,
	workspaces *repository.WorkspaceRepository,
	tx *repository.Transactor,
	publisher *events.Publisher,
) *BoardColumnService {
	return &BoardColumnService{
		repo:       repo,
		workspaces: workspaces,
		tx:         tx,
		publisher:  publisher,
	}
}

func (s *BoardColumnService) Create(ctx context.Context, userID string, in CreateColumnInput) (*model.BoardColumn, error) {
	name, err := cleanName("name", in.Name, minColumnNameLen, maxNameLen)
	if err != nil {
		return nil, err
	}
	if err := requireID("workspaceId", in.WorkspaceID); err != nil {
		return nil, err
	}

	column := &model.BoardColumn{
		ID:          uuid.NewString(),
		Name:        name,
		WorkspaceID: in.WorkspaceID,
		UserID:      userID,
	}

	scope := ordering.ColumnsInWorkspace
	err = s.tx.WithTransaction(ctx, []string{scope.LockKey(in.WorkspaceID)}, func(tx *gorm.DB) error {
		if _, err := s.workspaces.WithTx(tx).LockByIDForOwner(ctx, in.WorkspaceID, userID); err != nil {
			return err
		}

		repo := s.repo.WithTx(tx)
		taken, err := repo.NameTaken(ctx, in.WorkspaceID, name, "")
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("column %q already exists in this workspace", name)
		}

		column.Position, err = ordering.NextPosition(tx, scope, in.WorkspaceID)
		if err != nil {
			return err
		}
		return repo.Insert(ctx, column)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.ColumnCreated, column)
	return column, nil
}

// List returns the caller's columns, optionally limited to one workspace.
func (s *BoardColumnService) List(ctx context.Context, userID, workspaceID string) ([]model.BoardColumn, error) {
	if workspaceID == "" {
		return s.repo.List(ctx, userID)
	}
	if err := requireID("workspaceId", workspaceID); err != nil {
		return nil, err
	}
	if _, err := s.workspaces.FindByIDForOwner(ctx, workspaceID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListForWorkspace(ctx, userID, workspaceID)
}

func (s *BoardColumnService) Get(ctx context.Context, id, userID string) (*model.BoardColumn, error) {
	return s.repo.FindByIDForOwner(ctx, id, userID)
}

func (s *BoardColumnService) GetWithTasks(ctx context.Context, id, userID string) (*model.BoardColumn, error) {
	return s.repo.FindWithTasks(ctx, id, userID)
}

// Update renames a column and, when WorkspaceID names another workspace,
// moves it to the end of that workspace.
func (s *BoardColumnService) Update(ctx context.Context, id, userID string, in UpdateColumnInput) (*model.BoardColumn, error) {
	if in.Name == nil && in.WorkspaceID == nil {
		return nil, exceptions.InvalidInput("no fields to update")
	}

	current, err := s.repo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	name := current.Name
	if in.Name != nil {
		if name, err = cleanName("name", *in.Name, minColumnNameLen, maxNameLen); err != nil {
			return nil, err
		}
	}

	if in.WorkspaceID != nil && *in.WorkspaceID != current.WorkspaceID {
		return s.moveToWorkspace(ctx, current, userID, name, *in.WorkspaceID)
	}

	scope := ordering.ColumnsInWorkspace
	var updated *model.BoardColumn
	err = s.tx.WithTransaction(ctx, []string{scope.LockKey(current.WorkspaceID)}, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, id, userID)
		if err != nil {
			return err
		}
		if locked.WorkspaceID != current.WorkspaceID {
			return errScopeChanged("column")
		}

		taken, err := repo.NameTaken(ctx, locked.WorkspaceID, name, id)
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("column %q already exists in this workspace", name)
		}

		updated, err = repo.Update(ctx, id, userID, map[string]any{"name": name})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.ColumnUpdated, updated)
	return updated, nil
}

func (s *BoardColumnService) moveToWorkspace(
	ctx context.Context,
	current *model.BoardColumn,
	userID, name, destID string,
) (*model.BoardColumn, error) {
	if err := requireID("workspaceId", destID); err != nil {
		return nil, err
	}
	if _, err := s.workspaces.FindByIDForOwner(ctx, destID, userID); err != nil {
		return nil, err
	}

	scope := ordering.ColumnsInWorkspace
	keys := []string{scope.LockKey(current.WorkspaceID), scope.LockKey(destID)}

	var moved *model.BoardColumn
	err := s.tx.WithTransaction(ctx, keys, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, current.ID, userID)
		if err != nil {
			return err
		}
		if locked.WorkspaceID != current.WorkspaceID {
			return errScopeChanged("column")
		}
		if _, err := s.workspaces.WithTx(tx).LockByIDForOwner(ctx, destID, userID); err != nil {
			return err
		}

		referenced, err := repo.CountTasksWithStatus(ctx, locked.ID)
		if err != nil {
			return err
		}
		if referenced > 0 {
			return exceptions.DomainInvariant("column has %d tasks with a status of its current workspace", referenced)
		}

		taken, err := repo.NameTaken(ctx, destID, name, locked.ID)
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("column %q already exists in the destination workspace", name)
		}

		size, err := ordering.Count(tx, scope, destID)
		if err != nil {
			return err
		}
		err = ordering.Move(tx, scope, locked.ID, locked.WorkspaceID, locked.Position, destID, size,
			map[string]any{"name": name})
		if err != nil {
			return err
		}

		moved, err = repo.FindByIDForOwner(ctx, locked.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.ColumnReordered, moved)
	return moved, nil
}

// Reorder moves a column inside its workspace. Targets past the end land on
// the last slot; the current slot is a no-op that publishes nothing.
func (s *BoardColumnService) Reorder(ctx context.Context, id, userID string, newPosition int) (*model.BoardColumn, error) {
	if err := ordering.ValidateTarget(newPosition); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	scope := ordering.ColumnsInWorkspace
	var (
		result *model.BoardColumn
		moved  bool
	)
	err = s.tx.WithTransaction(ctx, []string{scope.LockKey(current.WorkspaceID)}, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, id, userID)
		if err != nil {
			return err
		}
		if locked.WorkspaceID != current.WorkspaceID {
			return errScopeChanged("column")
		}

		size, err := ordering.Count(tx, scope, locked.WorkspaceID)
		if err != nil {
			return err
		}
		target := ordering.ClampWithin(newPosition, size)
		if target == locked.Position {
			result = locked
			return nil
		}

		if err := ordering.Reorder(tx, scope, locked.WorkspaceID, id, locked.Position, target, nil); err != nil {
			return err
		}
		moved = true
		result, err = repo.FindByIDForOwner(ctx, id, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if moved {
		s.publisher.Publish(ctx, userID, events.ColumnReordered, result)
	}
	return result, nil
}
