package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/taekwondodev/ledger-auth/internal/auth/repository"
	"github.com/taekwondodev/ledger-auth/internal/config"
	customerrors "github.com/taekwondodev/ledger-auth/internal/customErrors"
	"github.com/taekwondodev/ledger-auth/internal/models"
)

func setupGormTest(t *testing.T) (*gorm.DB, repository.UserRepository) {
	t.Helper()

	db, err := config.OpenSQLite(":memory:")
	require.NoError(t, err, "failed to open test database")

	return db, repository.NewGormUserRepository(db)
}

func newUser(username, email string) *models.User {
	return &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: "digest",
		CreatedAt:    time.Now().UTC(),
		IsActive:     true,
	}
}

func TestGormRepository_InsertAndFind(t *testing.T) {
	_, repo := setupGormTest(t)
	ctx := context.Background()

	saved, err := repo.Insert(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)
	assert.NotZero(t, saved.ID)

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, saved.ID, found.ID)
	assert.Equal(t, "a@x.com", found.Email)
	assert.Equal(t, "digest", found.PasswordHash)
	assert.True(t, found.IsActive)
	assert.Nil(t, found.LastLogin)

	t.Run("lookup is case sensitive", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "Alice")
		assert.ErrorIs(t, err, customerrors.ErrUserNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "bob")
		assert.ErrorIs(t, err, customerrors.ErrUserNotFound)
	})
}

func TestGormRepository_InsertConflicts(t *testing.T) {
	db, repo := setupGormTest(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)

	testCases := []struct {
		name     string
		username string
		email    string
	}{
		{name: "Same username", username: "alice", email: "other@x.com"},
		{name: "Same email", username: "alice2", email: "a@x.com"},
		{name: "Both taken", username: "alice", email: "a@x.com"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.Insert(ctx, newUser(tc.username, tc.email))
			assert.ErrorIs(t, err, customerrors.ErrUserAlreadyExists)
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGormRepository_ExistsByUsernameOrEmail(t *testing.T) {
	_, repo := setupGormTest(t)
	ctx := context.Background()

	_, err := repo.Insert(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)

	testCases := []struct {
		name     string
		username string
		email    string
		want     bool
	}{
		{name: "Username match", username: "alice", email: "new@x.com", want: true},
		{name: "Email match", username: "bob", email: "a@x.com", want: true},
		{name: "No match", username: "bob", email: "b@x.com", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			exists, err := repo.ExistsByUsernameOrEmail(ctx, tc.username, tc.email)
			require.NoError(t, err)
			assert.Equal(t, tc.want, exists)
		})
	}
}

func TestGormRepository_UpdateLastLoginIsMonotonic(t *testing.T) {
	_, repo := setupGormTest(t)
	ctx := context.Background()

	saved, err := repo.Insert(ctx, newUser("alice", "a@x.com"))
	require.NoError(t, err)

	later := time.Date(2025, 11, 2, 9, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)

	require.NoError(t, repo.UpdateLastLogin(ctx, saved.ID, later))
	require.NoError(t, repo.UpdateLastLogin(ctx, saved.ID, earlier))

	found, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, found.LastLogin)
	assert.True(t, later.Equal(*found.LastLogin), "last login moved backwards to %v", found.LastLogin)

	evenLater := later.Add(time.Minute)
	require.NoError(t, repo.UpdateLastLogin(ctx, saved.ID, evenLater))

	found, err = repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, evenLater.Equal(*found.LastLogin))
}

func TestGormRepository_Healthz(t *testing.T) {
	_, repo := setupGormTest(t)
	assert.NoError(t, repo.Healthz(context.Background()))
}
