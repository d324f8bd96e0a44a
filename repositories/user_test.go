package repositories

import (
	"testing"

	apperrors "devroom/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *badger.DB {
	t.Helper()
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.ERROR)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUserRepository_CreateUser(t *testing.T) {
	t.Run("should create an account and index it by id", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(newTestDB(t))

		id, err := repo.CreateUser("User@Example.com", "hash")
		req.NoError(err)
		req.NotEmpty(id)

		// Lookup works by normalized email and by id
		byEmail, err := repo.GetUserByEmail("user@example.com")
		req.NoError(err)
		req.Equal(id, byEmail.ID)
		req.Equal("user@example.com", byEmail.Email)

		byID, err := repo.GetUserByID(id)
		req.NoError(err)
		req.Equal(byEmail, byID)
	})

	t.Run("should reject a duplicate email regardless of casing", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(newTestDB(t))

		_, err := repo.CreateUser("user@example.com", "hash")
		req.NoError(err)

		_, err = repo.CreateUser("USER@example.com", "other-hash")
		req.ErrorIs(err, apperrors.ErrUserAlreadyExists)
	})
}

func TestUserRepository_Get(t *testing.T) {
	t.Run("should report a missing email", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(newTestDB(t))

		_, err := repo.GetUserByEmail("nobody@example.com")

		req.ErrorIs(err, apperrors.ErrUserNotFound)
	})

	t.Run("should report a missing id", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(newTestDB(t))

		_, err := repo.GetUserByID("no-such-id")

		req.ErrorIs(err, apperrors.ErrUserNotFound)
	})
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	t.Run("should replace the stored hash only", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(newTestDB(t))

		id, err := repo.CreateUser("user@example.com", "old-hash")
		req.NoError(err)

		req.NoError(repo.UpdatePassword(id, "new-hash"))

		user, err := repo.GetUserByID(id)
		req.NoError(err)
		req.Equal("new-hash", user.PasswordHash)
		req.Equal("user@example.com", user.Email)
	})

	t.Run("should fail for an unknown account", func(t *testing.T) {
		req := require.New(t)
		repo := NewUserRepository(newTestDB(t))

		err := repo.UpdatePassword("no-such-id", "hash")

		req.ErrorIs(err, apperrors.ErrUserNotFound)
	})
}
