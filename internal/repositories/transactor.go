package repository

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// Transactor runs closures atomically, serialized per contended scope.
type Transactor struct {
	db    *gorm.DB
	locks *ScopeLocks
	opts  []*sql.TxOptions
}

// NewTransactor builds a Transactor. serializable should be set for stores
// that honour isolation levels (postgres); sqlite transactions are already
// serialized by its single writer.
func NewTransactor(db *gorm.DB, serializable bool) *Transactor {
	t := &Transactor{db: db, locks: NewScopeLocks()}
	if serializable {
		t.opts = []*sql.TxOptions{{Isolation: sql.LevelSerializable}}
	}
	return t
}

func (t *Transactor) DB() *gorm.DB {
	return t.db
}

// WithTransaction holds the lock of every scope key for the lifetime of one
// database transaction. Any error returned by fn rolls the transaction back.
func (t *Transactor) WithTransaction(ctx context.Context, scopeKeys []string, fn func(tx *gorm.DB) error) error {
	unlock := t.locks.Lock(scopeKeys...)
	defer unlock()

	return t.db.WithContext(ctx).Transaction(fn, t.opts...)
}
