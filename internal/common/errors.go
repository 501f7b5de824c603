// Package common defines shared constants and sentinel errors used across
// the PlanIT server layers. Callers should use errors.Is / errors.As to
// match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrValidation     = errors.New("validation error")

	// Credential errors. Never says which factor failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Token errors (malformed, bad signature, wrong issuer/audience, outside its time window).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrConfiguration marks operator errors in signing configuration.
	ErrConfiguration = errors.New("configuration error")
)

// ConfigError reports a missing or unusable configuration setting.
type ConfigError struct {
	// Key is the canonical setting name, e.g. "jwt_secret".
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s %s", e.Key, e.Reason)
}

// Is lets errors.Is(err, ErrConfiguration) match any ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// NotFoundError reports a resource id with no row behind it.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d was not found.", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrorNotFound
}

// UnauthorizedAccessError is returned when the caller does not own the
// resource. Its message is part of the public API contract.
type UnauthorizedAccessError struct {
	Kind string
	ID   int64
}

func (e *UnauthorizedAccessError) Error() string {
	return fmt.Sprintf("Access denied for %s ID %d.", e.Kind, e.ID)
}

func (e *UnauthorizedAccessError) Is(target error) bool {
	return target == ErrorUnauthorized
}

// ValidationError carries a user-facing explanation of bad input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
