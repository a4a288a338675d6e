package ordering

import (
	"database/sql"

	"gorm.io/gorm"
)

// NextPosition returns max(rank)+1 for the scope, or 0 when it is empty. It
// must share the transaction of the insert that consumes the value.
func NextPosition(tx *gorm.DB, s Scope, scopeID string) (int, error) {
	var maxRank sql.NullInt64
	row := tx.Table(s.Table).
		Where(s.KeyColumn+" = ?", scopeID).
		Select("MAX(" + s.RankColumn + ")").
		Row()
	if err := row.Scan(&maxRank); err != nil {
		return 0, err
	}
	if !maxRank.Valid {
		return 0, nil
	}
	return int(maxRank.Int64) + 1, nil
}

// Count returns the number of rows in the scope.
func Count(tx *gorm.DB, s Scope, scopeID string) (int, error) {
	var n int64
	err := tx.Table(s.Table).Where(s.KeyColumn+" = ?", scopeID).Count(&n).Error
	return int(n), err
}

// Ranks lists the ranks of the scope in ascending order.
func Ranks(tx *gorm.DB, s Scope, scopeID string) ([]int, error) {
	var ranks []int
	err := tx.Table(s.Table).
		Where(s.KeyColumn+" = ?", scopeID).
		Order(s.RankColumn+" asc").
		Pluck(s.RankColumn, &ranks).Error
	return ranks, err
}
