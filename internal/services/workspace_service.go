package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/events"
	"kanban-board.com/kanban-board/internal/exceptions"
	model "kanban-board.com/kanban-board/internal/models"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

type CreateWorkspaceInput struct {
	Name string
}

type UpdateWorkspaceInput struct {
	Name *string
}

type WorkspaceService struct {
	repo      *repository.WorkspaceRepository
	tx        *repository.Transactor
	publisher *events.Publisher
}

func NewWorkspaceService(
	repo *repository.WorkspaceRepository,
	tx *repository.Transactor,
	publisher *events.Publisher,
) *WorkspaceService {
	return &WorkspaceService{
		repo:      repo,
		tx:        tx,
		publisher: publisher,
	}
}

func workspaceLockKey(userID string) string {
	return "workspaces:" + userID
}

func (s *WorkspaceService) Create(ctx context.Context, userID string, in CreateWorkspaceInput) (*model.Workspace, error) {
	name, err := cleanName("name", in.Name, minWorkspaceNameLen, maxNameLen)
	if err != nil {
		return nil, err
	}

	workspace := &model.Workspace{
		ID:     uuid.NewString(),
		Name:   name,
		UserID: userID,
	}

	err = s.tx.WithTransaction(ctx, []string{workspaceLockKey(userID)}, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		taken, err := repo.NameTaken(ctx, userID, name, "")
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("workspace %q already exists", name)
		}
		return repo.Insert(ctx, workspace)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.WorkspaceCreated, workspace)
	return workspace, nil
}

func (s *WorkspaceService) List(ctx context.Context, userID string) ([]model.Workspace, error) {
	return s.repo.ListForOwner(ctx, userID, "created_at asc")
}

func (s *WorkspaceService) Get(ctx context.Context, id, userID string) (*model.Workspace, error) {
	return s.repo.FindByIDForOwner(ctx, id, userID)
}

func (s *WorkspaceService) GetWithColumns(ctx context.Context, id, userID string) (*model.Workspace, error) {
	return s.repo.FindWithColumns(ctx, id, userID)
}

func (s *WorkspaceService) GetWithStatuses(ctx context.Context, id, userID string) (*model.Workspace, error) {
	return s.repo.FindWithStatuses(ctx, id, userID)
}

func (s *WorkspaceService) Update(ctx context.Context, id, userID string, in UpdateWorkspaceInput) (*model.Workspace, error) {
	if in.Name == nil {
		return nil, exceptions.InvalidInput("no fields to update")
	}
	name, err := cleanName("name", *in.Name, minWorkspaceNameLen, maxNameLen)
	if err != nil {
		return nil, err
	}

	var updated *model.Workspace
	err = s.tx.WithTransaction(ctx, []string{workspaceLockKey(userID)}, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.LockByIDForOwner(ctx, id, userID); err != nil {
			return err
		}
		taken, err := repo.NameTaken(ctx, userID, name, id)
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("workspace %q already exists", name)
		}
		updated, err = repo.Update(ctx, id, userID, map[string]any{"name": name})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.WorkspaceUpdated, updated)
	return updated, nil
}
