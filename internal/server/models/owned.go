package models

import "time"

// Ownership is embedded by every per-user resource. UserID is set at
// creation and never changes.
type Ownership struct {
	ID        int64 `gorm:"primaryKey"`
	UserID    int64 `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Own exposes the embedded Ownership of any resource.
func (o *Ownership) Own() *Ownership {
	return o
}

// Owner returns the owning account id.
func (o *Ownership) Owner() int64 {
	return o.UserID
}

// Owned is implemented by pointers to resources that embed Ownership.
type Owned interface {
	Own() *Ownership
	Owner() int64
}

// OwnedPtr constrains PM to be *M where *M is Owned.
type OwnedPtr[M any] interface {
	*M
	Owned
}

type Event struct {
	Ownership
	Name     string `gorm:"size:200;not null"`
	Date     string `gorm:"size:10"`
	Time     string `gorm:"size:5"`
	Location string `gorm:"size:200"`
}

func (Event) TableName() string { return "events" }

type ToDo struct {
	Ownership
	Name string `gorm:"size:200;not null"`
}

func (ToDo) TableName() string { return "todos" }

type ShoppingList struct {
	Ownership
	Name string `gorm:"size:200;not null"`
}

func (ShoppingList) TableName() string { return "shopping_lists" }

type Invite struct {
	Ownership
	Name   string `gorm:"size:200;not null"`
	Email  string `gorm:"size:254"`
	Coming bool   `gorm:"not null;default:false"`
}

func (Invite) TableName() string { return "invites" }

type ImportantDate struct {
	Ownership
	Name string `gorm:"size:200;not null"`
	Date string `gorm:"size:10"`
}

func (ImportantDate) TableName() string { return "important_dates" }

type Dinner struct {
	Ownership
	Name string `gorm:"size:200;not null"`
	Date string `gorm:"size:10"`
}

func (Dinner) TableName() string { return "dinners" }
