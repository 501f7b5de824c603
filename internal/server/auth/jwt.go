// Package auth signs and verifies PlanIT access tokens and hashes account
// passwords.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/server/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the payload of an access token. Subject carries the account id
// as a decimal string.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AccountID parses the subject claim.
func (c *Claims) AccountID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: subject is not an account id", common.ErrInvalidToken)
	}
	return id, nil
}

// Option configures a TokenIssuer.
type Option func(*TokenIssuer)

// WithClock replaces time.Now, for tests around token lifetime boundaries.
func WithClock(now func() time.Time) Option {
	return func(t *TokenIssuer) {
		t.now = now
	}
}

// TokenIssuer creates and verifies HMAC-signed access tokens.
//
// The configuration is checked on the first Issue or Verify call, not at
// construction; every later call reports the same result.
type TokenIssuer struct {
	cfg config.JWT
	now func() time.Time

	once   sync.Once
	err    error
	method *jwt.SigningMethodHMAC
	key    []byte
	parser *jwt.Parser
}

// NewTokenIssuer returns an issuer for cfg. It never fails.
func NewTokenIssuer(cfg config.JWT, opts ...Option) *TokenIssuer {
	t := &TokenIssuer{cfg: cfg, now: time.Now}
	for _, o := range opts {
		o(t)
	}
	return t
}

func (t *TokenIssuer) init() error {
	t.once.Do(func() {
		if err := t.cfg.Validate(); err != nil {
			t.err = err
			return
		}

		switch t.cfg.KeySizeInBits {
		case 384:
			t.method = jwt.SigningMethodHS384
		case 512:
			t.method = jwt.SigningMethodHS512
		default:
			t.method = jwt.SigningMethodHS256
		}
		t.key = []byte(t.cfg.Secret)
		t.parser = jwt.NewParser(
			jwt.WithValidMethods([]string{t.method.Alg()}),
			jwt.WithIssuer(t.cfg.Issuer),
			jwt.WithAudience(t.cfg.Audience),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(t.now),
		)
	})
	return t.err
}

// Lifetime is the validity window of issued tokens. It is zero when the
// configuration is invalid.
func (t *TokenIssuer) Lifetime() time.Duration {
	if t.init() != nil {
		return 0
	}
	return time.Duration(t.cfg.ExpiryInMinutes) * time.Minute
}

// Issue signs a token for the account. Configuration problems are returned
// as *common.ConfigError.
func (t *TokenIssuer) Issue(accountID int64, email string) (string, error) {
	if err := t.init(); err != nil {
		return "", err
	}

	now := t.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.cfg.Issuer,
			Subject:   strconv.FormatInt(accountID, 10),
			Audience:  jwt.ClaimStrings{t.cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(t.cfg.ExpiryInMinutes) * time.Minute)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(t.method, claims).SignedString(t.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the token's algorithm, signature, issuer, audience and time
// window (nbf <= now < exp) and returns its claims. Any failure matches
// common.ErrInvalidToken; expired tokens also match common.ErrTokenExpired.
func (t *TokenIssuer) Verify(token string) (*Claims, error) {
	if err := t.init(); err != nil {
		return nil, err
	}

	claims := &Claims{}
	parsed, err := t.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return t.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", common.ErrInvalidToken, common.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, common.ErrInvalidToken
	}
	if _, err := claims.AccountID(); err != nil {
		return nil, err
	}

	return claims, nil
}
