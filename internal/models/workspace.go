package model

import "time"

type Workspace struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex:idx_workspaces_user_name" json:"name"`
	UserID    string    `gorm:"size:36;not null;uniqueIndex:idx_workspaces_user_name" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Columns  []BoardColumn `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"columns,omitempty"`
	Statuses []Status      `gorm:"foreignKey:WorkspaceID;constraint:OnDelete:CASCADE" json:"statuses,omitempty"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
