// Package models defines the PlanIT entities persisted through gorm and the
// DTOs exchanged over the HTTP API.
package models

import "time"

// User is an account. HashedPassword and Salt never leave the server.
type User struct {
	ID             int64  `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null"`
	Email          string `gorm:"size:254;not null;uniqueIndex"`
	HashedPassword string `gorm:"size:60;not null"`
	Salt           string `gorm:"size:29;not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}

// Owner makes the account its own owner, for self-only checks.
func (u *User) Owner() int64 {
	return u.ID
}
