package auth

import (
	"strings"
	"sync"

	"github.com/dmitrijs2005/planit/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost matches the work factor of existing account data.
	DefaultBcryptCost = 11

	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes = 72

	// bcrypt salt prefix: "$2a$" + two cost digits + "$" + 22 salt chars.
	saltPrefixLen = 29

	absentAccountPassword = "planit-absent-account"
)

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher using cost, or DefaultBcryptCost when
// cost is outside bcrypt's accepted range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost reports the work factor used for new hashes.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of password. bcrypt generates a fresh random
// salt for every call.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", &common.ValidationError{Field: "password", Reason: "must be at most 72 bytes"}
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether password matches hash. A malformed hash never
// matches.
func (h *PasswordHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// VerifyAbsent spends the same work as Verify for a caller whose account
// does not exist, so both rejections take comparable time. It always
// returns false.
func (h *PasswordHasher) VerifyAbsent(password string) bool {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte(absentAccountPassword), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(password))
	return false
}

// SaltOf extracts the salt prefix ("$2a$11$" plus 22 characters) from a
// bcrypt hash, or "" if hash is not one.
func SaltOf(hash string) string {
	if len(hash) < saltPrefixLen || !strings.HasPrefix(hash, "$2") {
		return ""
	}
	return hash[:saltPrefixLen]
}
