package gateway

import (
	"net/http/httptest"
	"testing"

	"devroom/domain"
	apperrors "devroom/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	identity domain.Identity
	err      error
}

func (s stubVerifier) VerifySession(string) (domain.Identity, error) {
	return s.identity, s.err
}

type stubLookup struct {
	err error
}

func (s stubLookup) GetByID(id string) (domain.Project, error) {
	return domain.Project{ID: id}, s.err
}

func TestGate_Authenticate(t *testing.T) {
	identity := domain.Identity{UserID: "u1", Email: "user@example.com"}
	projectID := uuid.NewString()

	okGate := NewGate(stubVerifier{identity: identity}, stubLookup{})

	t.Run("should accept a valid handshake with a query token", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest("GET", "/ws?projectId="+projectID+"&token=tok", nil)

		got, roomID, err := okGate.Authenticate(r)

		req.NoError(err)
		req.Equal(identity, got)
		req.Equal(projectID, roomID)
	})

	t.Run("should accept a bearer header instead of the query field", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest("GET", "/ws?projectId="+projectID, nil)
		r.Header.Set("Authorization", "Bearer tok")

		_, roomID, err := okGate.Authenticate(r)

		req.NoError(err)
		req.Equal(projectID, roomID)
	})

	t.Run("should reject a missing project id first", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest("GET", "/ws", nil)

		_, _, err := okGate.Authenticate(r)

		req.ErrorIs(err, apperrors.ErrMissingProject)
	})

	t.Run("should reject a malformed project id before any lookup", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest("GET", "/ws?projectId=nope&token=tok", nil)

		_, _, err := okGate.Authenticate(r)

		req.ErrorIs(err, apperrors.ErrInvalidProject)
	})

	t.Run("should reject an unknown project", func(t *testing.T) {
		req := require.New(t)
		gate := NewGate(stubVerifier{identity: identity}, stubLookup{err: apperrors.ErrProjectNotFound})
		r := httptest.NewRequest("GET", "/ws?projectId="+projectID+"&token=tok", nil)

		_, _, err := gate.Authenticate(r)

		req.ErrorIs(err, apperrors.ErrProjectNotFound)
	})

	t.Run("should reject a missing credential after the project checks", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest("GET", "/ws?projectId="+projectID, nil)

		_, _, err := okGate.Authenticate(r)

		req.ErrorIs(err, apperrors.ErrMissingCredential)
	})

	t.Run("should reject an invalid credential", func(t *testing.T) {
		req := require.New(t)
		gate := NewGate(stubVerifier{err: apperrors.ErrInvalidCredential}, stubLookup{})
		r := httptest.NewRequest("GET", "/ws?projectId="+projectID+"&token=bad", nil)

		_, _, err := gate.Authenticate(r)

		req.ErrorIs(err, apperrors.ErrInvalidCredential)
	})

	t.Run("should check the project before the credential", func(t *testing.T) {
		req := require.New(t)
		// Both sides are wrong; the project failure must win
		gate := NewGate(stubVerifier{err: apperrors.ErrInvalidCredential}, stubLookup{err: apperrors.ErrProjectNotFound})
		r := httptest.NewRequest("GET", "/ws?projectId="+projectID+"&token=bad", nil)

		_, _, err := gate.Authenticate(r)

		req.ErrorIs(err, apperrors.ErrProjectNotFound)
	})
}
