package model

import (
	"time"

	"kanban-board.com/kanban-board/internal/constants"
)

type Status struct {
	ID          string                `gorm:"primaryKey;size:36" json:"id"`
	Name        string                `gorm:"size:50;not null;uniqueIndex:idx_statuses_workspace_name" json:"name"`
	Color       constants.StatusColor `gorm:"type:varchar(10);not null;default:blue" json:"color"`
	WorkspaceID string                `gorm:"size:36;not null;uniqueIndex:idx_statuses_workspace_name" json:"workspaceId"`
	UserID      string                `gorm:"size:36;not null;index" json:"userId"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}

func (Status) TableName() string {
	return "statuses"
}
