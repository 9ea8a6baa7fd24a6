package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "tasks.db"))
	require.NoError(t, err)
	return db
}

func TestCreateUser(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	user, err := repo.Create(ctx, "Alice Smith", "alice")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)

	found, err := repo.Find(ctx, "Alice Smith", "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, "Alice Smith", "alice")
	require.NoError(t, err)

	_, err = repo.Create(ctx, "Another Alice", "alice")
	assert.ErrorIs(t, err, ErrDuplicateUser)

	// The match is case-sensitive: a different casing is a different user.
	_, err = repo.Create(ctx, "Big Alice", "Alice")
	assert.NoError(t, err)
}

func TestFindUserNotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Find(ctx, "Nobody", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Create(ctx, "Alice Smith", "alice")
	require.NoError(t, err)

	// The (name, username) pair must match as a whole.
	_, err = repo.Find(ctx, "Wrong Name", "alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserExists(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	ok, err := repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = repo.Create(ctx, "Alice Smith", "alice")
	require.NoError(t, err)

	ok, err = repo.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, ok)
}
