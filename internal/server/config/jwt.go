package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dmitrijs2005/planit/internal/common"
)

// Canonical names of the token signing settings. They are used in JSON
// files and in configuration errors; environment variables carry the same
// name upper-cased with a PLANIT_ prefix.
const (
	KeyJWTSecret          = "jwt_secret"
	KeyJWTIssuer          = "jwt_issuer"
	KeyJWTAudience        = "jwt_audience"
	KeyJWTExpiryInMinutes = "jwt_expiry_in_minutes"
	KeyJWTKeySizeInBits   = "jwt_key_size_in_bits"
)

// MinSecretBytes is the shortest accepted signing secret (256 bits).
const MinSecretBytes = 32

// MaxExpiryInMinutes is the longest token lifetime that still fits in a
// time.Duration.
const MaxExpiryInMinutes = math.MaxInt64 / int64(time.Minute)

// JWT holds access token settings. Secret, Issuer, Audience and
// ExpiryInMinutes are required; KeySizeInBits is optional (0 means 256).
type JWT struct {
	Secret          string `env:"SECRET"`
	Issuer          string `env:"ISSUER"`
	Audience        string `env:"AUDIENCE"`
	ExpiryInMinutes int    `env:"EXPIRY_IN_MINUTES"`
	KeySizeInBits   int    `env:"KEY_SIZE_IN_BITS"`
}

// Validate reports the first unusable setting as a *common.ConfigError.
func (j JWT) Validate() error {
	secret := strings.TrimSpace(j.Secret)

	switch {
	case secret == "":
		return &common.ConfigError{Key: KeyJWTSecret, Reason: "is required"}
	case len(secret) < MinSecretBytes:
		return &common.ConfigError{Key: KeyJWTSecret, Reason: "must be at least 32 bytes"}
	case strings.TrimSpace(j.Issuer) == "":
		return &common.ConfigError{Key: KeyJWTIssuer, Reason: "is required"}
	case strings.TrimSpace(j.Audience) == "":
		return &common.ConfigError{Key: KeyJWTAudience, Reason: "is required"}
	case j.ExpiryInMinutes <= 0:
		return &common.ConfigError{Key: KeyJWTExpiryInMinutes, Reason: "must be a positive number of minutes"}
	case int64(j.ExpiryInMinutes) > MaxExpiryInMinutes:
		return &common.ConfigError{Key: KeyJWTExpiryInMinutes, Reason: fmt.Sprintf("must not exceed %d minutes", MaxExpiryInMinutes)}
	}

	switch j.KeySizeInBits {
	case 0, 256, 384, 512:
	default:
		return &common.ConfigError{Key: KeyJWTKeySizeInBits, Reason: "must be one of 256, 384, 512"}
	}

	if len(secret)*8 < j.KeySizeInBits {
		return &common.ConfigError{Key: KeyJWTSecret, Reason: "is shorter than " + KeyJWTKeySizeInBits}
	}

	return nil
}
