package services

import (
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/mappers"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/ownership"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	"gorm.io/gorm"
)

type (
	EventService         = OwnedService[models.Event, models.EventDTO, *models.Event]
	ToDoService          = OwnedService[models.ToDo, models.ToDoDTO, *models.ToDo]
	ShoppingListService  = OwnedService[models.ShoppingList, models.ShoppingListDTO, *models.ShoppingList]
	InviteService        = OwnedService[models.Invite, models.InviteDTO, *models.Invite]
	ImportantDateService = OwnedService[models.ImportantDate, models.ImportantDateDTO, *models.ImportantDate]
	DinnerService        = OwnedService[models.Dinner, models.DinnerDTO, *models.Dinner]
)

// Resources bundles one service per owned resource kind.
type Resources struct {
	Events         *EventService
	ToDos          *ToDoService
	ShoppingLists  *ShoppingListService
	Invites        *InviteService
	ImportantDates *ImportantDateService
	Dinners        *DinnerService
}

// NewResources builds every owned-resource service over db.
func NewResources(db *gorm.DB, m repomanager.RepositoryManager, log logging.Logger) *Resources {
	return &Resources{
		Events:         NewOwnedService[models.Event, models.EventDTO](ownership.KindEvent, m.Events(db), mappers.EventMapper{}, log),
		ToDos:          NewOwnedService[models.ToDo, models.ToDoDTO](ownership.KindToDo, m.ToDos(db), mappers.ToDoMapper{}, log),
		ShoppingLists:  NewOwnedService[models.ShoppingList, models.ShoppingListDTO](ownership.KindShoppingList, m.ShoppingLists(db), mappers.ShoppingListMapper{}, log),
		Invites:        NewOwnedService[models.Invite, models.InviteDTO](ownership.KindInvite, m.Invites(db), mappers.InviteMapper{}, log),
		ImportantDates: NewOwnedService[models.ImportantDate, models.ImportantDateDTO](ownership.KindImportantDate, m.ImportantDates(db), mappers.ImportantDateMapper{}, log),
		Dinners:        NewOwnedService[models.Dinner, models.DinnerDTO](ownership.KindDinner, m.Dinners(db), mappers.DinnerMapper{}, log),
	}
}
