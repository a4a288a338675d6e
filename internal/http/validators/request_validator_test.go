package validators

import (
	"testing"

	"github.com/stretchr/testify/require"

	dto "kanban-board.com/kanban-board/internal/data_models"
	"kanban-board.com/kanban-board/internal/exceptions"
)

func TestValidateUsesJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateColumnRequest{Name: "Todo", WorkspaceID: "nope"})
	require.ErrorIs(t, err, exceptions.ErrInvalidInput)
	require.Contains(t, err.Error(), "name must be at least 5 characters")
	require.Contains(t, err.Error(), "workspaceId must be a UUID")
}

func TestValidateOptionalFields(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&dto.UpdateColumnRequest{}))

	short := "abc"
	err := v.Validate(&dto.UpdateColumnRequest{Name: &short})
	require.ErrorIs(t, err, exceptions.ErrInvalidInput)

	teal := "teal"
	err = v.Validate(&dto.UpdateStatusRequest{Color: &teal})
	require.ErrorIs(t, err, exceptions.ErrInvalidInput)
	require.Contains(t, err.Error(), "color must be one of")

	err = v.Validate(&dto.ReorderTaskRequest{})
	require.ErrorIs(t, err, exceptions.ErrInvalidInput)
	require.Contains(t, err.Error(), "newOrder is required")

	zero := 0
	require.NoError(t, v.Validate(&dto.ReorderTaskRequest{NewOrder: &zero}))
}
