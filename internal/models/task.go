package model

import (
	"time"

	"kanban-board.com/kanban-board/internal/constants"
)

// Task is ranked by Order inside its column. The rank lives in sort_order
// because "order" is a reserved word in SQL.
type Task struct {
	ID          string              `gorm:"primaryKey;size:36" json:"id"`
	Title       string              `gorm:"size:255;not null;uniqueIndex" json:"title"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Stage       constants.TaskStage `gorm:"type:varchar(20);not null;default:todo" json:"stage"`
	StatusID    *string             `gorm:"size:36;index" json:"statusId"`
	ColumnID    string              `gorm:"size:36;not null;index:idx_tasks_column_order" json:"columnId"`
	Order       int                 `gorm:"column:sort_order;not null;default:0;index:idx_tasks_column_order" json:"order"`
	UserID      string              `gorm:"size:36;not null;index" json:"userId"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`

	Status *Status `gorm:"foreignKey:StatusID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Task) TableName() string {
	return "tasks"
}
