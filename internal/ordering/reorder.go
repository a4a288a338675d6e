package ordering

import (
	"time"

	"gorm.io/gorm"

	"kanban-board.com/kanban-board/internal/exceptions"
)

// Reorder moves row id from rank `from` to rank `to` inside scopeID, shifting
// the rows in between by one. set carries extra columns written together with
// the new rank. from == to with an empty set is a no-op.
func Reorder(tx *gorm.DB, s Scope, scopeID, id string, from, to int, set map[string]any) error {
	if from == to && len(set) == 0 {
		return nil
	}

	switch {
	case to < from:
		if err := shift(tx, s, scopeID, id, 1,
			s.RankColumn+" >= ? AND "+s.RankColumn+" < ?", to, from); err != nil {
			return err
		}
	case to > from:
		if err := shift(tx, s, scopeID, id, -1,
			s.RankColumn+" > ? AND "+s.RankColumn+" <= ?", from, to); err != nil {
			return err
		}
	}

	return place(tx, s, scopeID, id, to, set)
}

// shift adds delta to the rank of every row of the scope, except id, that
// matches cond.
func shift(tx *gorm.DB, s Scope, scopeID, id string, delta int, cond string, args ...any) error {
	return tx.Table(s.Table).
		Where(s.KeyColumn+" = ? AND id <> ?", scopeID, id).
		Where(cond, args...).
		UpdateColumn(s.RankColumn, gorm.Expr(s.RankColumn+" + ?", delta)).Error
}

// place writes the final rank of id. The row must still live in scopeID;
// otherwise the whole transaction is aborted so no shift survives.
func place(tx *gorm.DB, s Scope, scopeID, id string, rank int, set map[string]any) error {
	fields := make(map[string]any, len(set)+2)
	for k, v := range set {
		fields[k] = v
	}
	fields[s.RankColumn] = rank
	fields["updated_at"] = time.Now().UTC()

	res := tx.Table(s.Table).
		Where("id = ? AND "+s.KeyColumn+" = ?", id, scopeID).
		UpdateColumns(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return exceptions.NotFound(s.Resource)
	}
	return nil
}
