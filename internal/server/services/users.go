package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/dbx"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/auth"
	"github.com/dmitrijs2005/planit/internal/server/mappers"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/ownership"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	"gorm.io/gorm"
)

// Password length bounds, in bytes. The upper bound is bcrypt's limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// PasswordHasher produces a stored hash and its salt prefix.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// UserService manages accounts. Any authenticated caller may read
// accounts; only the account itself may change or delete it.
type UserService struct {
	db          *gorm.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	mapper      mappers.UserMapper
	guard       *ownership.Guard[models.User]
	log         logging.Logger
}

func NewUserService(db *gorm.DB, m repomanager.RepositoryManager, hasher PasswordHasher, log logging.Logger) *UserService {
	log = log.With("component", "users")
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		guard:       ownership.NewGuard[models.User](ownership.KindUser, m.Users(db), (*models.User).Owner, log),
		log:         log,
	}
}

// Register creates an account. The duplicate check and the insert run in
// one transaction.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.UserDTO, error) {
	name = strings.TrimSpace(name)
	email = models.NormalizeEmail(email)

	if name == "" {
		return nil, &common.ValidationError{Field: "name", Reason: "is required"}
	}
	if err := models.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return nil, &common.ValidationError{Field: "password", Reason: fmt.Sprintf("must be %d to %d bytes long", MinPasswordLength, MaxPasswordLength)}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, HashedPassword: hash, Salt: auth.SaltOf(hash)}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
		repo := s.repomanager.Users(tx)

		exists, err := repo.EmailExists(ctx, email)
		if err != nil {
			return err
		}
		if exists {
			return common.ErrAlreadyExists
		}

		user, err = repo.Add(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			s.log.Debug(ctx, "Registration rejected: email already in use.")
			return nil, err
		}
		s.log.Error(ctx, "Failed to register user.", "error", err)
		return nil, fmt.Errorf("register: %w", err)
	}

	s.log.Info(ctx, fmt.Sprintf("User %d registered successfully.", user.ID), "user_id", user.ID)

	dto := s.mapper.MapToDTO(user)
	return &dto, nil
}

// GetAll lists accounts page by page.
func (s *UserService) GetAll(ctx context.Context, callerID int64, page, pageSize int) ([]models.UserDTO, error) {
	users, err := s.repomanager.Users(s.db).GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]models.UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, s.mapper.MapToDTO(u))
	}

	s.log.Info(ctx, fmt.Sprintf("User %d retrieved %d users", callerID, len(out)), "caller_id", callerID)
	return out, nil
}

// GetByID returns any account to any authenticated caller.
func (s *UserService) GetByID(ctx context.Context, callerID, id int64) (*models.UserDTO, error) {
	user, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, &common.NotFoundError{Kind: ownership.KindUser.Title(), ID: id}
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	s.log.Debug(ctx, fmt.Sprintf("User %d retrieved user with ID %d.", callerID, id), "caller_id", callerID)

	dto := s.mapper.MapToDTO(user)
	return &dto, nil
}

// Update changes the caller's own name and email.
func (s *UserService) Update(ctx context.Context, callerID, id int64, dto models.UserDTO) (*models.UserDTO, error) {
	dto.Email = models.NormalizeEmail(dto.Email)
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.guard.Update(ctx, callerID, id, func(ctx context.Context, cur *models.User) (*models.User, error) {
		var out *models.User
		err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx *gorm.DB) error {
			repo := s.repomanager.Users(tx)

			if dto.Email != cur.Email {
				exists, err := repo.EmailExists(ctx, dto.Email)
				if err != nil {
					return err
				}
				if exists {
					return common.ErrAlreadyExists
				}
			}

			cur.Name = strings.TrimSpace(dto.Name)
			cur.Email = dto.Email

			var err error
			out, err = repo.Update(ctx, id, cur)
			return err
		})
		return out, err
	})
	if err != nil {
		return nil, err
	}

	res := s.mapper.MapToDTO(updated)
	return &res, nil
}

// Delete removes the caller's own account.
func (s *UserService) Delete(ctx context.Context, callerID, id int64) (*models.UserDTO, error) {
	deleted, err := s.guard.Delete(ctx, callerID, id, func(ctx context.Context, _ *models.User) (*models.User, error) {
		return s.repomanager.Users(s.db).Delete(ctx, id)
	})
	if err != nil {
		return nil, err
	}

	res := s.mapper.MapToDTO(deleted)
	return &res, nil
}
