// Package services holds the board's use cases. Each mutation validates
// ownership, runs inside one transaction serialized on the scopes it touches
// and publishes its event only after commit.
package services

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"kanban-board.com/kanban-board/internal/exceptions"
)

const (
	minWorkspaceNameLen = 3
	minColumnNameLen    = 5
	minStatusNameLen    = 3
	minTaskTitleLen     = 5
	maxNameLen          = 50
	maxTitleLen         = 255
)

func cleanName(field, value string, minLen, maxLen int) (string, error) {
	value = strings.TrimSpace(value)
	n := utf8.RuneCountInString(value)
	if n < minLen {
		return "", exceptions.InvalidInput("%s must be at least %d characters", field, minLen)
	}
	if n > maxLen {
		return "", exceptions.InvalidInput("%s must be at most %d characters", field, maxLen)
	}
	return value, nil
}

func requireID(field, value string) error {
	if err := uuid.Validate(value); err != nil {
		return exceptions.InvalidInput("%s must be a UUID", field)
	}
	return nil
}

func errScopeChanged(resource string) error {
	return exceptions.Conflict("%s was moved by a concurrent request, retry", resource)
}
