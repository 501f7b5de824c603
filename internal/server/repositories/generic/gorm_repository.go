package generic

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/planit/internal/common"
	"gorm.io/gorm"
)

// immutable columns are never written by Update.
var immutable = []string{"id", "user_id", "created_at"}

type GormRepository[M any] struct {
	db *gorm.DB
}

func NewGormRepository[M any](db *gorm.DB) *GormRepository[M] {
	return &GormRepository[M]{db: db}
}

// DB exposes the handle so specialised repositories can build on it.
func (r *GormRepository[M]) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *GormRepository[M]) Add(ctx context.Context, m *M) (*M, error) {
	if err := r.DB(ctx).Create(m).Error; err != nil {
		return nil, dbError(err)
	}
	return m, nil
}

// dbError wraps a driver error. Unique violations, which need a handle
// opened with TranslateError, become common.ErrAlreadyExists.
func dbError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %w", common.ErrAlreadyExists, err)
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *GormRepository[M]) GetByID(ctx context.Context, id int64) (*M, error) {
	m := new(M)
	if err := r.DB(ctx).First(m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *GormRepository[M]) GetAll(ctx context.Context, page, pageSize int) ([]*M, error) {
	return r.list(r.DB(ctx), page, pageSize)
}

func (r *GormRepository[M]) GetAllByOwner(ctx context.Context, ownerID int64, page, pageSize int) ([]*M, error) {
	return r.list(r.DB(ctx).Where("user_id = ?", ownerID), page, pageSize)
}

func (r *GormRepository[M]) list(q *gorm.DB, page, pageSize int) ([]*M, error) {
	page, pageSize = Paginate(page, pageSize)

	var out []*M
	err := q.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *GormRepository[M]) Update(ctx context.Context, id int64, m *M) (*M, error) {
	res := r.DB(ctx).Model(new(M)).Where("id = ?", id).Select("*").Omit(immutable...).Updates(m)
	if res.Error != nil {
		return nil, dbError(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, common.ErrorNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *GormRepository[M]) Delete(ctx context.Context, id int64) (*M, error) {
	m, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.DB(ctx).Where("id = ?", id).Delete(new(M)).Error; err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}
