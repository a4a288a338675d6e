package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanban-board.com/kanban-board/internal/exceptions"
)

// OwnedRepository reads and writes rows that belong to exactly one user.
// Every lookup filters on both the primary key and user_id, so a row owned by
// someone else is indistinguishable from a missing one.
type OwnedRepository[T any] struct {
	db       *gorm.DB
	resource string
}

func NewOwnedRepository[T any](db *gorm.DB, resource string) *OwnedRepository[T] {
	return &OwnedRepository[T]{db: db, resource: resource}
}

// WithTx returns a copy bound to tx.
func (r *OwnedRepository[T]) WithTx(tx *gorm.DB) *OwnedRepository[T] {
	return &OwnedRepository[T]{db: tx, resource: r.resource}
}

func (r *OwnedRepository[T]) DB() *gorm.DB {
	return r.db
}

func (r *OwnedRepository[T]) FindByIDForOwner(ctx context.Context, id, userID string) (*T, error) {
	return r.first(r.db.WithContext(ctx), id, userID)
}

// LockByIDForOwner is FindByIDForOwner with SELECT ... FOR UPDATE. SQLite
// ignores the locking clause; callers still hold the in-process scope lock.
func (r *OwnedRepository[T]) LockByIDForOwner(ctx context.Context, id, userID string) (*T, error) {
	return r.first(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id, userID)
}

func (r *OwnedRepository[T]) first(q *gorm.DB, id, userID string) (*T, error) {
	var entity T
	err := q.Where("id = ? AND user_id = ?", id, userID).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, exceptions.NotFound(r.resource)
		}
		return nil, err
	}
	return &entity, nil
}

func (r *OwnedRepository[T]) ListForOwner(ctx context.Context, userID string, order string) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(order).
		Find(&rows).Error
	return rows, err
}

// ListForScope lists the caller's rows whose scopeColumn equals scopeID.
func (r *OwnedRepository[T]) ListForScope(ctx context.Context, userID, scopeColumn, scopeID, order string) ([]T, error) {
	var rows []T
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(clause.Eq{Column: clause.Column{Name: scopeColumn}, Value: scopeID}).
		Order(order).
		Find(&rows).Error
	return rows, err
}

func (r *OwnedRepository[T]) Insert(ctx context.Context, entity *T) error {
	return translate(r.db.WithContext(ctx).Create(entity).Error, r.resource)
}

// Update writes the given columns on the caller's row and reloads it.
func (r *OwnedRepository[T]) Update(ctx context.Context, id, userID string, fields map[string]any) (*T, error) {
	var entity T
	res := r.db.WithContext(ctx).Model(&entity).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if err := translate(res.Error, r.resource); err != nil {
		return nil, err
	}
	if res.RowsAffected == 0 {
		return nil, exceptions.NotFound(r.resource)
	}
	return r.first(r.db.WithContext(ctx), id, userID)
}

func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return exceptions.Conflict("%s already exists", resource)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return exceptions.NotFound(resource + " parent")
	}
	return err
}
