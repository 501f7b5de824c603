package users

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/planit/internal/common"
	"github.com/dmitrijs2005/planit/internal/dbx/dbxtest"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newRepo(t *testing.T) *GormRepository {
	t.Helper()
	return NewGormRepository(dbxtest.SQLite(t, &models.User{}))
}

func seed(t *testing.T, r *GormRepository, name, email string) *models.User {
	t.Helper()
	u, err := r.Add(context.Background(), &models.User{Name: name, Email: email, HashedPassword: "h", Salt: "s"})
	require.NoError(t, err)
	return u
}

func TestAdd_NormalizesEmail(t *testing.T) {
	r := newRepo(t)
	u := seed(t, r, "Jane", "  Jane.Doe@Email.com ")

	assert.NotZero(t, u.ID)
	assert.Equal(t, "jane.doe@email.com", u.Email)
}

func TestAdd_DuplicateEmailRejected(t *testing.T) {
	r := newRepo(t)
	seed(t, r, "Jane", "jane@example.com")

	_, err := r.Add(context.Background(), &models.User{Name: "Other", Email: "JANE@example.com", HashedPassword: "h", Salt: "s"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestUpdate_DuplicateEmailRejected(t *testing.T) {
	r := newRepo(t)
	seed(t, r, "Jane", "jane@example.com")
	john := seed(t, r, "John", "john@example.com")

	john.Email = "Jane@Example.com"
	_, err := r.Update(context.Background(), john.ID, john)
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestAdd_PostgresUniqueViolation(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Discard, TranslateError: true})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_users_email"})
	mock.ExpectRollback()

	_, err = NewGormRepository(db).Add(context.Background(), &models.User{Name: "Jane", Email: "jane@example.com", HashedPassword: "h", Salt: "s"})
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	r := newRepo(t)
	want := seed(t, r, "Jane", "jane@example.com")
	ctx := context.Background()

	got, err := r.GetUserByEmail(ctx, "JANE@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, "h", got.HashedPassword)

	_, err = r.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestEmailExists(t *testing.T) {
	r := newRepo(t)
	seed(t, r, "Jane", "jane@example.com")
	ctx := context.Background()

	ok, err := r.EmailExists(ctx, "Jane@Example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.EmailExists(ctx, "john@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdate_KeepsOtherRows(t *testing.T) {
	r := newRepo(t)
	jane := seed(t, r, "Jane", "jane@example.com")
	john := seed(t, r, "John", "john@example.com")
	ctx := context.Background()

	jane.Name = "Jane Doe"
	jane.Email = "Jane.Doe@Example.com"
	got, err := r.Update(ctx, jane.ID, jane)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, "jane.doe@example.com", got.Email)
	assert.Equal(t, "h", got.HashedPassword)

	other, err := r.GetByID(ctx, john.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", other.Name)
}

func TestGetUserByEmail_DBError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	q := `SELECT \* FROM "users" WHERE LOWER\(email\) = \$1`
	mock.ExpectQuery(q).WillReturnError(assert.AnError)

	_, err = NewGormRepository(db).GetUserByEmail(context.Background(), "Jane@example.com")
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*`+assert.AnError.Error()), err.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
