package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/keerthiramGR/college-event/models"
	"github.com/keerthiramGR/college-event/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return &DB{DB: mockDB, logger: zap.NewNop()}, mock
}

func userColumns() []string {
	return []string{"id", "email", "name", "avatar_url", "google_id", "role", "created_at"}
}

func userRow(user *models.User) *sqlmock.Rows {
	return sqlmock.NewRows(userColumns()).AddRow(
		user.ID, user.Email, user.Name, user.AvatarURL, user.GoogleID, user.Role, user.CreatedAt,
	)
}

func sampleUser() *models.User {
	return &models.User{
		ID:        uuid.New(),
		Email:     "student@college.edu",
		Name:      "Test Student",
		AvatarURL: "https://example.com/avatar.png",
		GoogleID:  "108976543210987654321",
		Role:      models.RoleStudent,
		CreatedAt: time.Now().UTC(),
	}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	user := sampleUser()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WithArgs(user.ID, user.Email, user.Name, user.AvatarURL, user.GoogleID, user.Role, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		user := sampleUser()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, avatar_url, google_id, role, created_at")).
			WithArgs(user.ID).
			WillReturnRows(userRow(user))

		got, err := repo.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.Role, got.Role)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		id := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name, avatar_url, google_id, role, created_at")).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserRepository_GetByGoogleID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		user := sampleUser()

		mock.ExpectQuery(regexp.QuoteMeta("WHERE google_id = $1")).
			WithArgs(user.GoogleID).
			WillReturnRows(userRow(user))

		got, err := repo.GetByGoogleID(context.Background(), user.GoogleID)
		require.NoError(t, err)
		assert.Equal(t, user.GoogleID, got.GoogleID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())

		mock.ExpectQuery(regexp.QuoteMeta("WHERE google_id = $1")).
			WithArgs("unknown-subject").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByGoogleID(context.Background(), "unknown-subject")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db, zap.NewNop())
	first := sampleUser()
	second := sampleUser()

	rows := sqlmock.NewRows(userColumns()).
		AddRow(first.ID, first.Email, first.Name, first.AvatarURL, first.GoogleID, first.Role, first.CreatedAt).
		AddRow(second.ID, second.Email, second.Name, second.AvatarURL, second.GoogleID, second.Role, second.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WithArgs(50, 0).
		WillReturnRows(rows)

	users, err := repo.List(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	t.Run("updates name and avatar", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs(id, "New Name", "https://example.com/new.png").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateProfile(context.Background(), id, "New Name", "https://example.com/new.png")
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
			WithArgs(id, "New Name", "").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateProfile(context.Background(), id, "New Name", "")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserRepository_UpdateRole(t *testing.T) {
	t.Run("promotes to admin", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("SET role = $2")).
			WithArgs(id, models.RoleAdmin).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateRole(context.Background(), id, models.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewUserRepository(db, zap.NewNop())
		id := uuid.New()

		mock.ExpectExec(regexp.QuoteMeta("SET role = $2")).
			WithArgs(id, models.RoleAdmin).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateRole(context.Background(), id, models.RoleAdmin)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
