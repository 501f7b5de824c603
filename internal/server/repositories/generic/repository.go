// Package generic implements the CRUD repository shared by every PlanIT
// entity, with page/size pagination.
package generic

import (
	"context"

	"github.com/dmitrijs2005/planit/internal/common"
)

// Repository stores entities of type M.
type Repository[M any] interface {
	Add(ctx context.Context, m *M) (*M, error)
	// GetByID returns common.ErrorNotFound when no row has the id.
	GetByID(ctx context.Context, id int64) (*M, error)
	GetAll(ctx context.Context, page, pageSize int) ([]*M, error)
	// GetAllByOwner lists rows whose user_id equals ownerID.
	GetAllByOwner(ctx context.Context, ownerID int64, page, pageSize int) ([]*M, error)
	// Update overwrites the row with the given id and returns it re-read.
	Update(ctx context.Context, id int64, m *M) (*M, error)
	// Delete removes the row and returns it as it was.
	Delete(ctx context.Context, id int64) (*M, error)
}

// Paginate clamps page to >= 1 and pageSize to [1, 50], falling back to 10
// when pageSize is not positive.
func Paginate(page, pageSize int) (int, int) {
	if page < 1 {
		page = common.DefaultPage
	}
	switch {
	case pageSize < 1:
		pageSize = common.DefaultPageSize
	case pageSize > common.MaxPageSize:
		pageSize = common.MaxPageSize
	}
	return page, pageSize
}
