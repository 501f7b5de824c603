// Package repomanager provides a concrete RepositoryManager over gorm,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/planit/internal/server/migrations"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/generic"
	"github.com/dmitrijs2005/planit/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

// GormRepositoryManager vends gorm-backed repository implementations and
// exposes a schema migration hook.
type GormRepositoryManager struct{}

// Users returns a users.Repository bound to db.
func (m *GormRepositoryManager) Users(db *gorm.DB) users.Repository {
	return users.NewGormRepository(db)
}

func (m *GormRepositoryManager) Events(db *gorm.DB) generic.Repository[models.Event] {
	return generic.NewGormRepository[models.Event](db)
}

func (m *GormRepositoryManager) ToDos(db *gorm.DB) generic.Repository[models.ToDo] {
	return generic.NewGormRepository[models.ToDo](db)
}

func (m *GormRepositoryManager) ShoppingLists(db *gorm.DB) generic.Repository[models.ShoppingList] {
	return generic.NewGormRepository[models.ShoppingList](db)
}

func (m *GormRepositoryManager) Invites(db *gorm.DB) generic.Repository[models.Invite] {
	return generic.NewGormRepository[models.Invite](db)
}

func (m *GormRepositoryManager) ImportantDates(db *gorm.DB) generic.Repository[models.ImportantDate] {
	return generic.NewGormRepository[models.ImportantDate](db)
}

func (m *GormRepositoryManager) Dinners(db *gorm.DB) generic.Repository[models.Dinner] {
	return generic.NewGormRepository[models.Dinner](db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *GormRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewGormRepositoryManager constructs a gorm-backed RepositoryManager.
func NewGormRepositoryManager() RepositoryManager {
	return &GormRepositoryManager{}
}
