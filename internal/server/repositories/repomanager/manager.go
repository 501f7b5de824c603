package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/generic"
	"github.com/dmitrijs2005/planit/internal/server/repositories/users"
	"gorm.io/gorm"
)

// RepositoryManager vends repositories bound to a gorm handle, which may be
// the pool or a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db *gorm.DB) users.Repository
	Events(db *gorm.DB) generic.Repository[models.Event]
	ToDos(db *gorm.DB) generic.Repository[models.ToDo]
	ShoppingLists(db *gorm.DB) generic.Repository[models.ShoppingList]
	Invites(db *gorm.DB) generic.Repository[models.Invite]
	ImportantDates(db *gorm.DB) generic.Repository[models.ImportantDate]
	Dinners(db *gorm.DB) generic.Repository[models.Dinner]
}
