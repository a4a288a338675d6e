package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/constants"
	"kanban-board.com/kanban-board/internal/events"
	"kanban-board.com/kanban-board/internal/exceptions"
	model "kanban-board.com/kanban-board/internal/models"
	repository "kanban-board.com/kanban-board/internal/repositories"
)

type CreateStatusInput struct {
	Name        string
	Color       constants.StatusColor
	WorkspaceID string
}

type UpdateStatusInput struct {
	Name        *string
	Color       *constants.StatusColor
	WorkspaceID *string
}

type StatusService struct {
	repo       *repository.StatusRepository
	workspaces *repository.WorkspaceRepository
	tx         *repository.Transactor
	publisher  *events.Publisher
}

func NewStatusService(
	repo *repository.StatusRepository,
	workspaces *repository.WorkspaceRepository,
	tx *repository.Transactor,
	publisher *events.Publisher,
) *StatusService {
	return &StatusService{
		repo:       repo,
		workspaces: workspaces,
		tx:         tx,
		publisher:  publisher,
	}
}

func statusLockKey(workspaceID string) string {
	return "statuses:" + workspaceID
}

func (s *StatusService) Create(ctx context.Context, userID string, in CreateStatusInput) (*model.Status, error) {
	name, err := cleanName("name", in.Name, minStatusNameLen, maxNameLen)
	if err != nil {
		return nil, err
	}
	if err := requireID("workspaceId", in.WorkspaceID); err != nil {
		return nil, err
	}
	color := in.Color
	if color == "" {
		color = constants.DefaultStatusColor
	}
	if !color.Valid() {
		return nil, exceptions.InvalidInput("unknown color %q", color)
	}

	status := &model.Status{
		ID:          uuid.NewString(),
		Name:        name,
		Color:       color,
		WorkspaceID: in.WorkspaceID,
		UserID:      userID,
	}

	err = s.tx.WithTransaction(ctx, []string{statusLockKey(in.WorkspaceID)}, func(tx *gorm.DB) error {
		if _, err := s.workspaces.WithTx(tx).LockByIDForOwner(ctx, in.WorkspaceID, userID); err != nil {
			return err
		}
		repo := s.repo.WithTx(tx)
		taken, err := repo.NameTaken(ctx, in.WorkspaceID, name, "")
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("status %q already exists in this workspace", name)
		}
		return repo.Insert(ctx, status)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.StatusCreated, status)
	return status, nil
}

func (s *StatusService) List(ctx context.Context, userID, workspaceID string) ([]model.Status, error) {
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

func (s *StatusService) Get(ctx context.Context, id, userID string) (*model.Status, error) {
	return s.repo.FindByIDForOwner(ctx, id, userID)
}

func (s *StatusService) Update(ctx context.Context, id, userID string, in UpdateStatusInput) (*model.Status, error) {
	if in.Name == nil && in.Color == nil && in.WorkspaceID == nil {
		return nil, exceptions.InvalidInput("no fields to update")
	}

	current, err := s.repo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	name := current.Name
	if in.Name != nil {
		if name, err = cleanName("name", *in.Name, minStatusNameLen, maxNameLen); err != nil {
			return nil, err
		}
		fields["name"] = name
	}
	if in.Color != nil {
		if !in.Color.Valid() {
			return nil, exceptions.InvalidInput("unknown color %q", *in.Color)
		}
		fields["color"] = *in.Color
	}

	workspaceID := current.WorkspaceID
	keys := []string{statusLockKey(current.WorkspaceID)}
	if in.WorkspaceID != nil && *in.WorkspaceID != current.WorkspaceID {
		if err := requireID("workspaceId", *in.WorkspaceID); err != nil {
			return nil, err
		}
		workspaceID = *in.WorkspaceID
		fields["workspace_id"] = workspaceID
		keys = append(keys, statusLockKey(workspaceID))
	}
	if len(fields) == 0 {
		return current, nil
	}

	var updated *model.Status
	err = s.tx.WithTransaction(ctx, keys, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		locked, err := repo.LockByIDForOwner(ctx, id, userID)
		if err != nil {
			return err
		}
		if locked.WorkspaceID != current.WorkspaceID {
			return errScopeChanged("status")
		}

		if workspaceID != current.WorkspaceID {
			if _, err := s.workspaces.WithTx(tx).LockByIDForOwner(ctx, workspaceID, userID); err != nil {
				return err
			}
			referenced, err := repo.CountReferencingTasks(ctx, id)
			if err != nil {
				return err
			}
			if referenced > 0 {
				return exceptions.DomainInvariant("status is used by %d tasks of its current workspace", referenced)
			}
		}

		taken, err := repo.NameTaken(ctx, workspaceID, name, id)
		if err != nil {
			return err
		}
		if taken {
			return exceptions.Conflict("status %q already exists in this workspace", name)
		}

		updated, err = repo.Update(ctx, id, userID, fields)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, events.StatusUpdated, updated)
	return updated, nil
}
