package users

import (
	"context"

	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/generic"
)

type Repository interface {
	generic.Repository[models.User]
	// GetUserByEmail matches case-insensitively and returns
	// common.ErrorNotFound when no account has the address.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}
