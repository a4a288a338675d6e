package model

import "time"

// BoardColumn is ranked by Position inside its workspace.
type BoardColumn struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:50;not null" json:"name"`
	WorkspaceID string    `gorm:"size:36;not null;index:idx_board_columns_workspace_position" json:"workspaceId"`
	UserID      string    `gorm:"size:36;not null;index" json:"userId"`
	Position    int       `gorm:"not null;default:0;index:idx_board_columns_workspace_position" json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Tasks []Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

func (BoardColumn) TableName() string {
	return "board_columns"
}
