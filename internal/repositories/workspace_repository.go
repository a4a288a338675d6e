package repository

import (
	"context"

	"gorm.io/gorm"

	model "kanban-board.com/kanban-board/internal/models"
)

type WorkspaceRepository struct {
	*OwnedRepository[model.Workspace]
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{NewOwnedRepository[model.Workspace](db, "workspace")}
}

func (r *WorkspaceRepository) WithTx(tx *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{r.OwnedRepository.WithTx(tx)}
}

// NameTaken reports whether userID already owns a workspace called name,
// ignoring the row excludeID.
func (r *WorkspaceRepository) NameTaken(ctx context.Context, userID, name, excludeID string) (bool, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.Workspace{}).
		Where("user_id = ? AND name = ? AND id <> ?", userID, name, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *WorkspaceRepository) FindWithColumns(ctx context.Context, id, userID string) (*model.Workspace, error) {
	return r.first(r.DB().WithContext(ctx).
		Preload("Columns", orderBy("position asc")).
		Preload("Columns.Tasks", orderBy("sort_order asc")), id, userID)
}

func (r *WorkspaceRepository) FindWithStatuses(ctx context.Context, id, userID string) (*model.Workspace, error) {
	return r.first(r.DB().WithContext(ctx).
		Preload("Statuses", orderBy("created_at asc")), id, userID)
}

// ListBoards loads every workspace of userID with its statuses, columns and
// tasks, each collection in rank order.
func (r *WorkspaceRepository) ListBoards(ctx context.Context, userID string) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.DB().WithContext(ctx).
		Preload("Statuses", orderBy("created_at asc")).
		Preload("Columns", orderBy("position asc")).
		Preload("Columns.Tasks", orderBy("sort_order asc")).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&workspaces).Error
	return workspaces, err
}

func orderBy(order string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}
