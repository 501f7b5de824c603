package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnauthorizedAccessError_Message(t *testing.T) {
	tests := []struct {
		kind string
		id   int64
		want string
	}{
		{"todo", 1, "Access denied for todo ID 1."},
		{"shopping list", 1, "Access denied for shopping list ID 1."},
		{"event", 42, "Access denied for event ID 42."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			err := &UnauthorizedAccessError{Kind: tt.kind, ID: tt.id}
			assert.Equal(t, tt.want, err.Error())
			assert.ErrorIs(t, err, ErrorUnauthorized)
			assert.NotErrorIs(t, err, ErrorNotFound)
		})
	}
}

func TestTypedErrors_MatchSentinelsThroughWrapping(t *testing.T) {
	nf := fmt.Errorf("loading: %w", &NotFoundError{Kind: "invite", ID: 7})
	assert.ErrorIs(t, nf, ErrorNotFound)
	assert.NotErrorIs(t, nf, ErrorUnauthorized)

	var target *NotFoundError
	assert.True(t, errors.As(nf, &target))
	assert.Equal(t, int64(7), target.ID)

	cfg := fmt.Errorf("issue: %w", &ConfigError{Key: "jwt_secret", Reason: "is required"})
	assert.ErrorIs(t, cfg, ErrConfiguration)
	assert.Equal(t, "issue: configuration error: jwt_secret is required", cfg.Error())

	val := &ValidationError{Field: "email", Reason: "is not a valid address"}
	assert.ErrorIs(t, val, ErrValidation)
	assert.Equal(t, "email is not a valid address", val.Error())
}
