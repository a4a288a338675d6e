package repository

import (
	"context"

	"gorm.io/gorm"

	model "kanban-board.com/kanban-board/internal/models"
)

type BoardColumnRepository struct {
	*OwnedRepository[model.BoardColumn]
}

func NewBoardColumnRepository(db *gorm.DB) *BoardColumnRepository {
	return &BoardColumnRepository{NewOwnedRepository[model.BoardColumn](db, "column")}
}

func (r *BoardColumnRepository) WithTx(tx *gorm.DB) *BoardColumnRepository {
	return &BoardColumnRepository{r.OwnedRepository.WithTx(tx)}
}

func (r *BoardColumnRepository) NameTaken(ctx context.Context, workspaceID, name, excludeID string) (bool, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.BoardColumn{}).
		Where("workspace_id = ? AND name = ? AND id <> ?", workspaceID, name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *BoardColumnRepository) FindWithTasks(ctx context.Context, id, userID string) (*model.BoardColumn, error) {
	return r.first(r.DB().WithContext(ctx).Preload("Tasks", orderBy("sort_order asc")), id, userID)
}

func (r *BoardColumnRepository) List(ctx context.Context, userID string) ([]model.BoardColumn, error) {
	return r.ListForOwner(ctx, userID, "workspace_id asc, position asc")
}

func (r *BoardColumnRepository) ListForWorkspace(ctx context.Context, userID, workspaceID string) ([]model.BoardColumn, error) {
	return r.ListForScope(ctx, userID, "workspace_id", workspaceID, "position asc")
}

// CountTasksWithStatus counts tasks in the column that reference any status.
func (r *BoardColumnRepository) CountTasksWithStatus(ctx context.Context, columnID string) (int64, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.Task{}).
		Where("column_id = ? AND status_id IS NOT NULL", columnID).
		Count(&count).Error
	return count, err
}
