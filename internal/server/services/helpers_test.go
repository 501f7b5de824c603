package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dmitrijs2005/planit/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/auth"
	"github.com/dmitrijs2005/planit/internal/server/config"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/planit/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	return dbxtest.SQLite(t,
		&models.User{}, &models.Event{}, &models.ToDo{}, &models.ShoppingList{},
		&models.Invite{}, &models.ImportantDate{}, &models.Dinner{},
	)
}

func testJWTConfig() config.JWT {
	return config.JWT{
		Secret:          strings.Repeat("s", 32),
		Issuer:          "planit",
		Audience:        "planit-clients",
		ExpiryInMinutes: 60,
	}
}

func testHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(bcrypt.MinCost)
}

func seedUser(t *testing.T, db *gorm.DB, name, email, password string) *models.User {
	t.Helper()
	hash, err := testHasher().Hash(password)
	require.NoError(t, err)
	u, err := usersrepo.NewGormRepository(db).Add(context.Background(), &models.User{
		Name: name, Email: email, HashedPassword: hash, Salt: auth.SaltOf(hash),
	})
	require.NoError(t, err)
	return u
}

// fakeUsersRepo embeds the interface; only the overridden methods are safe
// to call.
type fakeUsersRepo struct {
	usersrepo.Repository
	getByEmailErr error
	existsErr     error
}

func (f *fakeUsersRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	return nil, f.getByEmailErr
}

func (f *fakeUsersRepo) EmailExists(context.Context, string) (bool, error) {
	return false, f.existsErr
}

type fakeRepoManager struct {
	repomanager.RepositoryManager
	users usersrepo.Repository
}

func (m *fakeRepoManager) Users(*gorm.DB) usersrepo.Repository { return m.users }

func newRecorder() *logging.Recorder { return logging.NewRecorder() }
