// Package ordering keeps integer ranks contiguous inside a scope: columns
// inside a workspace and tasks inside a column. Every function expects to run
// inside a transaction that already serializes the scopes it touches.
package ordering

import "kanban-board.com/kanban-board/internal/exceptions"

type Scope struct {
	Resource   string
	Table      string
	KeyColumn  string
	RankColumn string
}

var (
	ColumnsInWorkspace = Scope{
		Resource:   "column",
		Table:      "board_columns",
		KeyColumn:  "workspace_id",
		RankColumn: "position",
	}

	TasksInColumn = Scope{
		Resource:   "task",
		Table:      "tasks",
		KeyColumn:  "column_id",
		RankColumn: "sort_order",
	}
)

// LockKey names the scope for the transactor's per-scope locks.
func (s Scope) LockKey(scopeID string) string {
	return s.Table + ":" + scopeID
}

// ValidateTarget rejects ranks that can never be valid.
func ValidateTarget(target int) error {
	if target < 0 {
		return exceptions.InvalidInput("position must be >= 0, got %d", target)
	}
	return nil
}

// ClampWithin bounds a target inside a scope of size n the entity already
// belongs to, so the last valid slot is n-1.
func ClampWithin(target, n int) int {
	if n <= 0 {
		return 0
	}
	return min(target, n-1)
}

// ClampAppend bounds a target inside a scope of size m the entity is joining,
// so m means append.
func ClampAppend(target, m int) int {
	return min(target, m)
}

