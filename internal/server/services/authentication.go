package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	"gorm.io/gorm"
)

// CredentialVerifier checks a plaintext password against a stored hash.
type CredentialVerifier interface {
	Verify(hash, password string) bool
	// VerifyAbsent burns the same time as Verify for unknown accounts.
	VerifyAbsent(password string) bool
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(accountID int64, email string) (string, error)
	Lifetime() time.Duration
}

// LoginResult is returned to the client after a successful login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	UserID      int64  `json:"userId"`
	Email       string `json:"email"`
}

// AuthenticationService verifies credentials and issues access tokens. It
// never retries; each login attempt ends either with a token or with a
// rejection.
type AuthenticationService struct {
	db          *gorm.DB
	repomanager repomanager.RepositoryManager
	verifier    CredentialVerifier
	issuer      TokenIssuer
	log         logging.Logger
}

func NewAuthenticationService(db *gorm.DB, m repomanager.RepositoryManager, v CredentialVerifier, i TokenIssuer, log logging.Logger) *AuthenticationService {
	return &AuthenticationService{
		db:          db,
		repomanager: m,
		verifier:    v,
		issuer:      i,
		log:         log.With("component", "authentication"),
	}
}

// Authenticate returns the account matching email and password, or nil
// with no error when the credentials are wrong. Unknown email and wrong
// password are indistinguishable to the caller and take comparable time.
// The returned user has HashedPassword and Salt cleared.
func (s *AuthenticationService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		s.verifier.VerifyAbsent(password)
		s.log.Debug(ctx, "Authentication rejected: missing email or password.")
		return nil, nil
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.verifier.VerifyAbsent(password)
			s.log.Debug(ctx, "Authentication rejected: invalid credentials.")
			return nil, nil
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !s.verifier.Verify(user.HashedPassword, password) {
		s.log.Debug(ctx, "Authentication rejected: invalid credentials.", "user_id", user.ID)
		return nil, nil
	}

	s.log.Info(ctx, fmt.Sprintf("User %d authenticated successfully.", user.ID), "user_id", user.ID)

	user.HashedPassword = ""
	user.Salt = ""
	return user, nil
}

// IssueToken signs a token for an authenticated user. Configuration errors
// are returned unchanged so callers can match common.ErrConfiguration.
func (s *AuthenticationService) IssueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := s.issuer.Issue(user.ID, user.Email)
	if err != nil {
		s.log.Error(ctx, fmt.Sprintf("Failed to issue token for user %d.", user.ID), "user_id", user.ID, "error", err)
		return "", err
	}
	return token, nil
}

// Login authenticates and issues a token. Wrong credentials yield
// common.ErrInvalidCredentials.
func (s *AuthenticationService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.IssueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   common.BearerScheme,
		ExpiresIn:   int64(s.issuer.Lifetime().Seconds()),
		UserID:      user.ID,
		Email:       user.Email,
	}, nil
}
