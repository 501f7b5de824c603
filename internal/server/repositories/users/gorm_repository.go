// Package users stores PlanIT accounts.
package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/generic"
	"gorm.io/gorm"
)

type GormRepository struct {
	*generic.GormRepository[models.User]
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{GormRepository: generic.NewGormRepository[models.User](db)}
}

// Add stores the account with its email normalised.
func (r *GormRepository) Add(ctx context.Context, user *models.User) (*models.User, error) {
	user.Email = models.NormalizeEmail(user.Email)
	return r.GormRepository.Add(ctx, user)
}

// Update stores the account with its email normalised.
func (r *GormRepository) Update(ctx context.Context, id int64, user *models.User) (*models.User, error) {
	user.Email = models.NormalizeEmail(user.Email)
	return r.GormRepository.Update(ctx, id, user)
}

func (r *GormRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var found []*models.User
	err := r.DB(ctx).Where("LOWER(email) = ?", models.NormalizeEmail(email)).Limit(1).Find(&found).Error
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *GormRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.DB(ctx).Model(&models.User{}).Where("LOWER(email) = ?", models.NormalizeEmail(email)).Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n > 0, nil
}
