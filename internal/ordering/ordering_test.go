package ordering

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	config "kanban-board.com/kanban-board/internal/configs"
	"kanban-board.com/kanban-board/internal/exceptions"
	model "kanban-board.com/kanban-board/internal/models"
)

const owner = "user-1"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := config.NewDatabaseClient(config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseDSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedWorkspace(t *testing.T, db *gorm.DB) string {
	t.Helper()
	ws := model.Workspace{ID: uuid.NewString(), Name: "ws-" + uuid.NewString()[:8], UserID: owner}
	require.NoError(t, db.Create(&ws).Error)
	return ws.ID
}

func seedColumn(t *testing.T, db *gorm.DB, workspaceID string, position int) string {
	t.Helper()
	col := model.BoardColumn{
		ID:          uuid.NewString(),
		Name:        "column-" + uuid.NewString()[:8],
		WorkspaceID: workspaceID,
		UserID:      owner,
		Position:    position,
	}
	require.NoError(t, db.Create(&col).Error)
	return col.ID
}

// seedTasks appends n tasks to the column and returns their ids by order.
func seedTasks(t *testing.T, db *gorm.DB, columnID string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		task := model.Task{
			ID:          uuid.NewString(),
			Title:       "task-" + uuid.NewString(),
			Description: "seeded",
			ColumnID:    columnID,
			UserID:      owner,
			Order:       i,
		}
		require.NoError(t, db.Create(&task).Error)
		ids = append(ids, task.ID)
	}
	return ids
}

func idsInOrder(t *testing.T, db *gorm.DB, s Scope, scopeID string) []string {
	t.Helper()
	var ids []string
	require.NoError(t, db.Table(s.Table).
		Where(s.KeyColumn+" = ?", scopeID).
		Order(s.RankColumn+" asc").
		Pluck("id", &ids).Error)
	return ids
}

func requireContiguous(t *testing.T, db *gorm.DB, s Scope, scopeID string) {
	t.Helper()
	ranks, err := Ranks(db, s, scopeID)
	require.NoError(t, err)
	for i, r := range ranks {
		require.Equal(t, i, r, "ranks of %s: %v", scopeID, ranks)
	}
}

func rankOf(t *testing.T, db *gorm.DB, s Scope, id string) (string, int) {
	t.Helper()
	var row struct {
		ScopeID   string
		RankValue int
	}
	require.NoError(t, db.Table(s.Table).
		Select(s.KeyColumn+" AS scope_id, "+s.RankColumn+" AS rank_value").
		Where("id = ?", id).
		Scan(&row).Error)
	return row.ScopeID, row.RankValue
}

func TestNextPosition(t *testing.T) {
	db := setupTestDB(t)
	ws := seedWorkspace(t, db)

	pos, err := NextPosition(db, ColumnsInWorkspace, ws)
	require.NoError(t, err)
	require.Equal(t, 0, pos)

	for i := 0; i < 3; i++ {
		seedColumn(t, db, ws, i)
	}

	pos, err = NextPosition(db, ColumnsInWorkspace, ws)
	require.NoError(t, err)
	require.Equal(t, 3, pos)

	other, err := NextPosition(db, ColumnsInWorkspace, seedWorkspace(t, db))
	require.NoError(t, err)
	require.Equal(t, 0, other)
}

func TestReorderMovesEarlier(t *testing.T) {
	db := setupTestDB(t)
	col := seedColumn(t, db, seedWorkspace(t, db), 0)
	ids := seedTasks(t, db, col, 4)
	a, b, c, d := ids[0], ids[1], ids[2], ids[3]

	err := db.Transaction(func(tx *gorm.DB) error {
		return Reorder(tx, TasksInColumn, col, d, 3, 1, nil)
	})
	require.NoError(t, err)

	require.Equal(t, []string{a, d, b, c}, idsInOrder(t, db, TasksInColumn, col))
	requireContiguous(t, db, TasksInColumn, col)
}

func TestReorderMovesLater(t *testing.T) {
	db := setupTestDB(t)
	col := seedColumn(t, db, seedWorkspace(t, db), 0)
	ids := seedTasks(t, db, col, 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Reorder(tx, TasksInColumn, col, ids[0], 0, 2, nil)
	})
	require.NoError(t, err)

	require.Equal(t, []string{ids[1], ids[2], ids[0], ids[3]}, idsInOrder(t, db, TasksInColumn, col))
	requireContiguous(t, db, TasksInColumn, col)
}

func TestReorderColumnsInWorkspace(t *testing.T) {
	db := setupTestDB(t)
	ws := seedWorkspace(t, db)
	cols := []string{seedColumn(t, db, ws, 0), seedColumn(t, db, ws, 1), seedColumn(t, db, ws, 2)}

	err := db.Transaction(func(tx *gorm.DB) error {
		return Reorder(tx, ColumnsInWorkspace, ws, cols[2], 2, 0, nil)
	})
	require.NoError(t, err)

	require.Equal(t, []string{cols[2], cols[0], cols[1]}, idsInOrder(t, db, ColumnsInWorkspace, ws))
	requireContiguous(t, db, ColumnsInWorkspace, ws)
}

func TestReorderSamePositionIsNoop(t *testing.T) {
	db := setupTestDB(t)
	col := seedColumn(t, db, seedWorkspace(t, db), 0)
	ids := seedTasks(t, db, col, 3)

	var before model.Task
	require.NoError(t, db.First(&before, "id = ?", ids[1]).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Reorder(tx, TasksInColumn, col, ids[1], 1, 1, nil)
	})
	require.NoError(t, err)

	var after model.Task
	require.NoError(t, db.First(&after, "id = ?", ids[1]).Error)
	require.True(t, before.UpdatedAt.Equal(after.UpdatedAt))
	require.Equal(t, ids, idsInOrder(t, db, TasksInColumn, col))
}

func TestReorderRollsBackWhenFinalSetFails(t *testing.T) {
	db := setupTestDB(t)
	col := seedColumn(t, db, seedWorkspace(t, db), 0)
	ids := seedTasks(t, db, col, 4)

	err := db.Transaction(func(tx *gorm.DB) error {
		return Reorder(tx, TasksInColumn, col, uuid.NewString(), 3, 0, nil)
	})
	require.ErrorIs(t, err, exceptions.ErrNotFound)

	require.Equal(t, ids, idsInOrder(t, db, TasksInColumn, col))
	requireContiguous(t, db, TasksInColumn, col)
}

func TestMoveBetweenScopes(t *testing.T) {
	db := setupTestDB(t)
	ws := seedWorkspace(t, db)
	x := seedColumn(t, db, ws, 0)
	y := seedColumn(t, db, ws, 1)
	xs := seedTasks(t, db, x, 5)
	ys := seedTasks(t, db, y, 3)
	moved := xs[2]

	err := db.Transaction(func(tx *gorm.DB) error {
		return Move(tx, TasksInColumn, moved, x, 2, y, 1, nil)
	})
	require.NoError(t, err)

	require.Equal(t, []string{xs[0], xs[1], xs[3], xs[4]}, idsInOrder(t, db, TasksInColumn, x))
	require.Equal(t, []string{ys[0], moved, ys[1], ys[2]}, idsInOrder(t, db, TasksInColumn, y))
	requireContiguous(t, db, TasksInColumn, x)
	requireContiguous(t, db, TasksInColumn, y)

	key, rank := rankOf(t, db, TasksInColumn, moved)
	require.Equal(t, y, key)
	require.Equal(t, 1, rank)
}

func TestMoveRoundTripRestoresBothScopes(t *testing.T) {
	db := setupTestDB(t)
	ws := seedWorkspace(t, db)
	x := seedColumn(t, db, ws, 0)
	y := seedColumn(t, db, ws, 1)
	xs := seedTasks(t, db, x, 4)
	ys := seedTasks(t, db, y, 2)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return Move(tx, TasksInColumn, xs[1], x, 1, y, 2, nil)
	}))
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return Move(tx, TasksInColumn, xs[1], y, 2, x, 1, nil)
	}))

	require.Equal(t, xs, idsInOrder(t, db, TasksInColumn, x))
	require.Equal(t, ys, idsInOrder(t, db, TasksInColumn, y))
}

func TestMoveWithinScopeActsAsReorder(t *testing.T) {
	db := setupTestDB(t)
	col := seedColumn(t, db, seedWorkspace(t, db), 0)
	ids := seedTasks(t, db, col, 4)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return Move(tx, TasksInColumn, ids[3], col, 3, col, 1, nil)
	}))

	require.Equal(t, []string{ids[0], ids[3], ids[1], ids[2]}, idsInOrder(t, db, TasksInColumn, col))
}

func TestMoveWritesExtraFields(t *testing.T) {
	db := setupTestDB(t)
	ws := seedWorkspace(t, db)
	x := seedColumn(t, db, ws, 0)
	y := seedColumn(t, db, ws, 1)
	xs := seedTasks(t, db, x, 1)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return Move(tx, TasksInColumn, xs[0], x, 0, y, 0, map[string]any{"stage": "done"})
	}))

	var task model.Task
	require.NoError(t, db.First(&task, "id = ?", xs[0]).Error)
	require.Equal(t, y, task.ColumnID)
	require.EqualValues(t, "done", task.Stage)
}

func TestClampAndValidate(t *testing.T) {
	require.Equal(t, 3, ClampWithin(10, 4))
	require.Equal(t, 2, ClampWithin(2, 4))
	require.Equal(t, 0, ClampWithin(5, 0))
	require.Equal(t, 4, ClampAppend(10, 4))
	require.Equal(t, 1, ClampAppend(1, 4))

	require.NoError(t, ValidateTarget(0))
	require.ErrorIs(t, ValidateTarget(-1), exceptions.ErrInvalidInput)
}

func TestRandomOperationsKeepRanksContiguous(t *testing.T) {
	db := setupTestDB(t)
	ws := seedWorkspace(t, db)
	cols := []string{seedColumn(t, db, ws, 0), seedColumn(t, db, ws, 1), seedColumn(t, db, ws, 2)}
	var tasks []string
	for _, col := range cols {
		tasks = append(tasks, seedTasks(t, db, col, 4)...)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 60; i++ {
		id := tasks[rng.Intn(len(tasks))]
		from, rank := rankOf(t, db, TasksInColumn, id)
		to := cols[rng.Intn(len(cols))]

		err := db.Transaction(func(tx *gorm.DB) error {
			n, err := Count(tx, TasksInColumn, to)
			if err != nil {
				return err
			}
			target := rng.Intn(n + 2)
			if to == from {
				target = ClampWithin(target, n)
			} else {
				target = ClampAppend(target, n)
			}
			return Move(tx, TasksInColumn, id, from, rank, to, target, nil)
		})
		require.NoError(t, err)

		total := 0
		for _, col := range cols {
			requireContiguous(t, db, TasksInColumn, col)
			n, err := Count(db, TasksInColumn, col)
			require.NoError(t, err)
			total += n
		}
		require.Equal(t, len(tasks), total)
	}
}
