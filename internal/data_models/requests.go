package dto

type CreateWorkspaceRequest struct {
	Name string `json:"name" validate:"required,min=3,max=50"`
}

type UpdateWorkspaceRequest struct {
	Name *string `json:"name" validate:"omitempty,min=3,max=50"`
}

type CreateColumnRequest struct {
	Name        string `json:"name" validate:"required,min=5,max=50"`
	WorkspaceID string `json:"workspaceId" validate:"required,uuid"`
}

type UpdateColumnRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=5,max=50"`
	WorkspaceID *string `json:"workspaceId" validate:"omitempty,uuid"`
}

type ReorderColumnRequest struct {
	NewPosition *int `json:"newPosition" validate:"required"`
}

type CreateStatusRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=50"`
	Color       string `json:"color" validate:"omitempty,oneof=blue orange green red purple pink yellow gray"`
	WorkspaceID string `json:"workspaceId" validate:"required,uuid"`
}

type UpdateStatusRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=3,max=50"`
	Color       *string `json:"color" validate:"omitempty,oneof=blue orange green red purple pink yellow gray"`
	WorkspaceID *string `json:"workspaceId" validate:"omitempty,uuid"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=5,max=255"`
	Description string  `json:"description" validate:"required"`
	ColumnID    string  `json:"columnId" validate:"required,uuid"`
	StatusID    *string `json:"statusId" validate:"omitempty,uuid"`
	Stage       string  `json:"stage" validate:"omitempty,oneof=todo in_progress done"`
}

// UpdateTaskRequest accepts an empty statusId to clear the status.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=5,max=255"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	StatusID    *string `json:"statusId"`
	Stage       *string `json:"stage" validate:"omitempty,oneof=todo in_progress done"`
}

type ReorderTaskRequest struct {
	NewOrder    *int    `json:"newOrder" validate:"required"`
	NewColumnID *string `json:"newColumnId" validate:"omitempty,uuid"`
}
