// Package mappers converts between gorm entities and API DTOs. Mappers are
// pure and hold no state.
package mappers

import "github.com/dmitrijs2005/planit/internal/server/models"

// Mapper converts one entity type to its DTO and back.
type Mapper[M any, D any] interface {
	MapToDTO(m *M) D
	MapToModel(d D) *M
}

type UserMapper struct{}

func (UserMapper) MapToDTO(m *models.User) models.UserDTO {
	return models.UserDTO{ID: m.ID, Name: m.Name, Email: m.Email}
}

// MapToModel leaves HashedPassword and Salt empty.
func (UserMapper) MapToModel(d models.UserDTO) *models.User {
	return &models.User{ID: d.ID, Name: d.Name, Email: d.Email}
}

type EventMapper struct{}

func (EventMapper) MapToDTO(m *models.Event) models.EventDTO {
	return models.EventDTO{
		ID:       m.ID,
		UserID:   m.UserID,
		Name:     m.Name,
		Date:     m.Date,
		Time:     m.Time,
		Location: m.Location,
	}
}

func (EventMapper) MapToModel(d models.EventDTO) *models.Event {
	return &models.Event{
		Ownership: models.Ownership{ID: d.ID, UserID: d.UserID},
		Name:      d.Name,
		Date:      d.Date,
		Time:      d.Time,
		Location:  d.Location,
	}
}

type ToDoMapper struct{}

func (ToDoMapper) MapToDTO(m *models.ToDo) models.ToDoDTO {
	return models.ToDoDTO{ID: m.ID, UserID: m.UserID, Name: m.Name}
}

func (ToDoMapper) MapToModel(d models.ToDoDTO) *models.ToDo {
	return &models.ToDo{Ownership: models.Ownership{ID: d.ID, UserID: d.UserID}, Name: d.Name}
}

type ShoppingListMapper struct{}

func (ShoppingListMapper) MapToDTO(m *models.ShoppingList) models.ShoppingListDTO {
	return models.ShoppingListDTO{ID: m.ID, UserID: m.UserID, Name: m.Name}
}

func (ShoppingListMapper) MapToModel(d models.ShoppingListDTO) *models.ShoppingList {
	return &models.ShoppingList{Ownership: models.Ownership{ID: d.ID, UserID: d.UserID}, Name: d.Name}
}

type InviteMapper struct{}

func (InviteMapper) MapToDTO(m *models.Invite) models.InviteDTO {
	return models.InviteDTO{ID: m.ID, UserID: m.UserID, Name: m.Name, Email: m.Email, Coming: m.Coming}
}

func (InviteMapper) MapToModel(d models.InviteDTO) *models.Invite {
	return &models.Invite{
		Ownership: models.Ownership{ID: d.ID, UserID: d.UserID},
		Name:      d.Name,
		Email:     d.Email,
		Coming:    d.Coming,
	}
}

type ImportantDateMapper struct{}

func (ImportantDateMapper) MapToDTO(m *models.ImportantDate) models.ImportantDateDTO {
	return models.ImportantDateDTO{ID: m.ID, UserID: m.UserID, Name: m.Name, Date: m.Date}
}

func (ImportantDateMapper) MapToModel(d models.ImportantDateDTO) *models.ImportantDate {
	return &models.ImportantDate{Ownership: models.Ownership{ID: d.ID, UserID: d.UserID}, Name: d.Name, Date: d.Date}
}

type DinnerMapper struct{}

func (DinnerMapper) MapToDTO(m *models.Dinner) models.DinnerDTO {
	return models.DinnerDTO{ID: m.ID, UserID: m.UserID, Name: m.Name, Date: m.Date}
}

func (DinnerMapper) MapToModel(d models.DinnerDTO) *models.Dinner {
	return &models.Dinner{Ownership: models.Ownership{ID: d.ID, UserID: d.UserID}, Name: d.Name, Date: d.Date}
}
