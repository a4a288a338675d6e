package events

import (
	"context"
	"time"
)

type Name string

const (
	WorkspaceCreated  Name = "workspace:created"
	WorkspaceUpdated  Name = "workspace:updated"
	ColumnCreated     Name = "column:created"
	ColumnUpdated     Name = "column:updated"
	ColumnReordered   Name = "column:reordered"
	StatusCreated     Name = "status:created"
	StatusUpdated     Name = "status:updated"
	TaskCreated       Name = "task:created"
	TaskUpdated       Name = "task:updated"
	TaskReordered     Name = "task:reordered"
	TaskStatusChanged Name = "task:status-changed"
)

// Event is what a connected client receives.
type Event struct {
	Name      Name      `json:"event"`
	Data      any       `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

func New(name Name, data any) Event {
	return Event{Name: name, Data: data, Timestamp: time.Now().UTC()}
}

// StatusChange is the payload of task:status-changed.
type StatusChange struct {
	Task      any    `json:"task"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

// Notifier delivers an event to every live session of one user.
type Notifier interface {
	Notify(ctx context.Context, userID string, event Event) error
}
