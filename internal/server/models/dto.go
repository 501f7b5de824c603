package models

import (
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/planit/internal/common"
)

// Date and time layouts accepted in DTOs.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// UserDTO is the public view of an account.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (d UserDTO) Validate() error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	return ValidateEmail(d.Email)
}

// UserRegistrationDTO is the sign-up request body.
type UserRegistrationDTO struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO is the login request body.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EventDTO struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Name     string `json:"name"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Location string `json:"location"`
}

func (d EventDTO) Validate() error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	if err := validateDate(d.Date); err != nil {
		return err
	}
	if d.Time != "" {
		if _, err := time.Parse(TimeLayout, d.Time); err != nil {
			return &common.ValidationError{Field: "time", Reason: "must be HH:MM"}
		}
	}
	return nil
}

type ToDoDTO struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

func (d ToDoDTO) Validate() error { return requireName(d.Name) }

type ShoppingListDTO struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
}

func (d ShoppingListDTO) Validate() error { return requireName(d.Name) }

type InviteDTO struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Coming bool   `json:"coming"`
}

func (d InviteDTO) Validate() error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	if d.Email == "" {
		return nil
	}
	return ValidateEmail(d.Email)
}

type ImportantDateDTO struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Date   string `json:"date"`
}

func (d ImportantDateDTO) Validate() error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	return validateDate(d.Date)
}

type DinnerDTO struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Date   string `json:"date"`
}

func (d DinnerDTO) Validate() error {
	if err := requireName(d.Name); err != nil {
		return err
	}
	return validateDate(d.Date)
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail accepts a bare RFC 5322 address without a display name.
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return &common.ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	return nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &common.ValidationError{Field: "name", Reason: "is required"}
	}
	return nil
}

func validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return &common.ValidationError{Field: "date", Reason: "must be YYYY-MM-DD"}
	}
	return nil
}
