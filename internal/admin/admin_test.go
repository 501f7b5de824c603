package admin

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/repositories/repomanager"
	usersrepo "github.com/dmitrijs2005/planit/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakeManager embeds the real manager and records migration runs.
type fakeManager struct {
	repomanager.RepositoryManager
	migrated   int
	migrateErr error
}

func (f *fakeManager) RunMigrations(context.Context, *sql.DB) error {
	f.migrated++
	return f.migrateErr
}

func stubPasswords(t *testing.T, answers ...string) {
	t.Helper()
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	i := 0
	readPassword = func(int) ([]byte, error) {
		if i >= len(answers) {
			return nil, errors.New("no more input")
		}
		pw := answers[i]
		i++
		return []byte(pw), nil
	}
}

// openFile returns a fresh handle on a file-backed SQLite database on
// every call, so the commands can close what they open.
func openFile(t *testing.T, path string) func(context.Context, string) (*gorm.DB, *sql.DB, error) {
	t.Helper()
	return func(context.Context, string) (*gorm.DB, *sql.DB, error) {
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return db, sqlDB, nil
	}
}

func newTestApp(t *testing.T, stdin string) (*App, *gorm.DB, *fakeManager, *bytes.Buffer) {
	t.Helper()
	t.Setenv("PLANIT_BCRYPT_COST", "4")

	open := openFile(t, filepath.Join(t.TempDir(), "planit.db"))
	db, sqlDB, err := open(context.Background(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}))

	rm := &fakeManager{RepositoryManager: repomanager.NewGormRepositoryManager()}
	out := &bytes.Buffer{}

	app := NewApp(strings.NewReader(stdin), out, logging.Nop())
	app.rm = rm
	app.open = open
	return app, db, rm, out
}

func TestRun_Usage(t *testing.T) {
	app, _, _, _ := newTestApp(t, "")

	assert.ErrorIs(t, app.Run(context.Background(), nil), ErrUsage)
	assert.ErrorIs(t, app.Run(context.Background(), []string{"drop-everything"}), ErrUsage)
}

func TestMigrate(t *testing.T) {
	app, _, rm, out := newTestApp(t, "")

	require.NoError(t, app.Run(context.Background(), []string{"migrate", "-d", "postgres://ignored"}))
	assert.Equal(t, 1, rm.migrated)
	assert.Contains(t, out.String(), "Migrations applied.")
}

func TestMigrate_Error(t *testing.T) {
	app, _, rm, _ := newTestApp(t, "")
	rm.migrateErr = errors.New("dirty database")

	assert.ErrorContains(t, app.Run(context.Background(), []string{"migrate"}), "dirty database")
}

func TestMigrate_OpenError(t *testing.T) {
	app, _, rm, _ := newTestApp(t, "")
	app.open = func(context.Context, string) (*gorm.DB, *sql.DB, error) {
		return nil, nil, errors.New("connection refused")
	}

	assert.ErrorContains(t, app.Run(context.Background(), []string{"migrate"}), "connection refused")
	assert.Zero(t, rm.migrated)
}

func TestCreateUser_FromFlags(t *testing.T) {
	app, db, _, out := newTestApp(t, "")
	stubPasswords(t, "correct horse battery", "correct horse battery")

	err := app.Run(context.Background(), []string{"create-user", "-name", "Ada Lovelace", "-email", "Ada@Example.com", "-l", "debug"})
	require.NoError(t, err)

	u, err := usersrepo.NewGormRepository(db).GetUserByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", u.Name)
	assert.True(t, strings.HasPrefix(u.HashedPassword, "$2a$04$"))
	assert.Contains(t, out.String(), "<ada@example.com>")
	assert.NotContains(t, out.String(), "correct horse battery")
}

func TestCreateUser_Prompts(t *testing.T) {
	app, db, _, out := newTestApp(t, "Grace Hopper\ngrace@example.com\n")
	stubPasswords(t, "long-enough-password", "long-enough-password")

	require.NoError(t, app.Run(context.Background(), []string{"create-user"}))

	exists, err := usersrepo.NewGormRepository(db).EmailExists(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Contains(t, out.String(), "Name: ")
	assert.Contains(t, out.String(), "Email: ")
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		passwords []string
		wantErr   string
	}{
		{name: "mismatch", passwords: []string{"long-enough-password", "other-password"}, wantErr: "passwords do not match"},
		{name: "terminal error", passwords: nil, wantErr: "read password"},
		{name: "too short", passwords: []string{"short", "short"}, wantErr: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _, _, _ := newTestApp(t, "")
			stubPasswords(t, tt.passwords...)

			err := app.Run(context.Background(), []string{"create-user", "-name", "Ada", "-email", "ada@example.com"})
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	app, _, _, _ := newTestApp(t, "")
	stubPasswords(t, "long-enough-password", "long-enough-password", "long-enough-password", "long-enough-password")

	args := []string{"create-user", "-name", "Ada", "-email", "ada@example.com"}
	require.NoError(t, app.Run(context.Background(), args))
	assert.Error(t, app.Run(context.Background(), args))
}
