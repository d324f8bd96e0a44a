package auth

import (
	"testing"
	"time"

	"devroom/domain"
	apperrors "devroom/errors"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_Session(t *testing.T) {
	identity := domain.Identity{UserID: "u1", Email: "user@example.com"}
	manager := NewTokenManager("test-secret", 24*time.Hour, 5*time.Minute)

	t.Run("should round trip a session token", func(t *testing.T) {
		req := require.New(t)

		token, err := manager.GenerateSession(identity)
		req.NoError(err)
		req.NotEmpty(token)

		got, err := manager.VerifySession(token)
		req.NoError(err)
		req.Equal(identity, got)
	})

	t.Run("should reject a garbage token", func(t *testing.T) {
		req := require.New(t)

		_, err := manager.VerifySession("garbage")

		req.ErrorIs(err, apperrors.ErrInvalidCredential)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)
		other := NewTokenManager("another-secret", 24*time.Hour, 5*time.Minute)
		token, err := other.GenerateSession(identity)
		req.NoError(err)

		_, err = manager.VerifySession(token)

		req.ErrorIs(err, apperrors.ErrInvalidCredential)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)
		expired := NewTokenManager("test-secret", -time.Minute, 5*time.Minute)
		token, err := expired.GenerateSession(identity)
		req.NoError(err)

		_, err = manager.VerifySession(token)

		req.ErrorIs(err, apperrors.ErrInvalidCredential)
	})
}

func TestTokenManager_PurposeSeparation(t *testing.T) {
	identity := domain.Identity{UserID: "u1", Email: "user@example.com"}
	manager := NewTokenManager("test-secret", 24*time.Hour, 5*time.Minute)

	t.Run("should round trip a reset token", func(t *testing.T) {
		req := require.New(t)

		token, err := manager.GenerateReset(identity)
		req.NoError(err)

		got, err := manager.VerifyReset(token)
		req.NoError(err)
		req.Equal(identity, got)
	})

	t.Run("should reject a reset token presented as a session", func(t *testing.T) {
		req := require.New(t)
		token, err := manager.GenerateReset(identity)
		req.NoError(err)

		_, err = manager.VerifySession(token)

		req.ErrorIs(err, apperrors.ErrInvalidCredential)
	})

	t.Run("should reject a session token presented for a reset", func(t *testing.T) {
		req := require.New(t)
		token, err := manager.GenerateSession(identity)
		req.NoError(err)

		_, err = manager.VerifyReset(token)

		req.ErrorIs(err, apperrors.ErrInvalidCredential)
	})
}
