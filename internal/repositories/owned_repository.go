package repositories

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"mothwallet/pkg/utils"
)

// OwnedRepositoryInterface is the data access contract for resources that
// belong to one account. Every lookup by id is paired with the owner id.
type OwnedRepositoryInterface[T any] interface {
	Insert(ctx context.Context, entity *T) error
	FindByIDAndOwner(ctx context.Context, id, accountID uint) (*T, error)
	FindAllByOwner(ctx context.Context, accountID uint) ([]T, error)
	FindByNameAndOwner(ctx context.Context, name string, accountID uint) (*T, error)
	UpdateByIDAndOwner(ctx context.Context, id, accountID uint, name, description string) error
	DeleteByIDAndOwner(ctx context.Context, id, accountID uint) error
}

type OwnedRepository[T any] struct {
	db *gorm.DB
}

func NewOwnedRepository[T any](db *gorm.DB) *OwnedRepository[T] {
	return &OwnedRepository[T]{db: db}
}

func (r *OwnedRepository[T]) Insert(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *OwnedRepository[T]) FindByIDAndOwner(ctx context.Context, id, accountID uint) (*T, error) {
	return r.first(ctx, "id = ? AND account_id = ?", id, accountID)
}

func (r *OwnedRepository[T]) FindByNameAndOwner(ctx context.Context, name string, accountID uint) (*T, error) {
	return r.first(ctx, "name = ? AND account_id = ?", name, accountID)
}

func (r *OwnedRepository[T]) FindAllByOwner(ctx context.Context, accountID uint) ([]T, error) {
	entities := make([]T, 0)
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Find(&entities).Error
	if err != nil {
		return nil, err
	}
	return entities, nil
}

// UpdateByIDAndOwner rewrites name and description of an existing row. It
// never inserts: a row that is gone or owned by someone else yields
// gorm.ErrRecordNotFound.
func (r *OwnedRepository[T]) UpdateByIDAndOwner(ctx context.Context, id, accountID uint, name, description string) error {
	res := r.db.WithContext(ctx).
		Model(new(T)).
		Where("id = ? AND account_id = ?", id, accountID).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
			"updated_at":  utils.NowUnixSeconds(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OwnedRepository[T]) DeleteByIDAndOwner(ctx context.Context, id, accountID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND account_id = ?", id, accountID).
		Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *OwnedRepository[T]) first(ctx context.Context, query string, args ...interface{}) (*T, error) {
	var entity T
	err := r.db.WithContext(ctx).Where(query, args...).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entity, nil
}

// IsUniqueViolation reports whether err comes from a unique index. Dialects
// with an error translator return gorm.ErrDuplicatedKey; the message checks
// cover drivers that surface the raw error.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
