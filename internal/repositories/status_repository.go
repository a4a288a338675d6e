package repository

import (
	"context"

	"gorm.io/gorm"

	model "kanban-board.com/kanban-board/internal/models"
)

type StatusRepository struct {
	*OwnedRepository[model.Status]
}

func NewStatusRepository(db *gorm.DB) *StatusRepository {
	return &StatusRepository{NewOwnedRepository[model.Status](db, "status")}
}

func (r *StatusRepository) WithTx(tx *gorm.DB) *StatusRepository {
	return &StatusRepository{r.OwnedRepository.WithTx(tx)}
}

func (r *StatusRepository) NameTaken(ctx context.Context, workspaceID, name, excludeID string) (bool, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.Status{}).
		Where("workspace_id = ? AND name = ? AND id <> ?", workspaceID, name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *StatusRepository) List(ctx context.Context, userID string) ([]model.Status, error) {
	return r.ListForOwner(ctx, userID, "created_at asc")
}

func (r *StatusRepository) ListForWorkspace(ctx context.Context, userID, workspaceID string) ([]model.Status, error) {
	return r.ListForScope(ctx, userID, "workspace_id", workspaceID, "created_at asc")
}

func (r *StatusRepository) CountReferencingTasks(ctx context.Context, statusID string) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.Task{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}
