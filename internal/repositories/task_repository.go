package repository

import (
	"context"

	"gorm.io/gorm"

	model "kanban-board.com/kanban-board/internal/models"
)

type TaskRepository struct {
	*OwnedRepository[model.Task]
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{NewOwnedRepository[model.Task](db, "task")}
}

func (r *TaskRepository) WithTx(tx *gorm.DB) *TaskRepository {
	return &TaskRepository{r.OwnedRepository.WithTx(tx)}
}

// TitleTaken checks titles across all users; task titles are globally unique.
func (r *TaskRepository) TitleTaken(ctx context.Context, title, excludeID string) (bool, error) {
	var count int64
	err := r.DB().WithContext(ctx).Model(&model.Task{}).
		Where("title = ? AND id <> ?", title, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *TaskRepository) List(ctx context.Context, userID string) ([]model.Task, error) {
	return r.ListForOwner(ctx, userID, "column_id asc, sort_order asc")
}

func (r *TaskRepository) ListForColumn(ctx context.Context, userID, columnID string) ([]model.Task, error) {
	return r.ListForScope(ctx, userID, "column_id", columnID, "sort_order asc")
}
