package gateway

import (
	"net/http"
	"strings"

	"devroom/domain"
	apperrors "devroom/errors"
	"devroom/repositories"
)

// CredentialVerifier validates a bearer credential and yields the caller
// identity.
type CredentialVerifier interface {
	VerifySession(token string) (domain.Identity, error)
}

// ProjectLookup resolves a project id. Satisfied by the project repository.
type ProjectLookup interface {
	GetByID(id string) (domain.Project, error)
}

// Gate performs the once-per-connection handshake before any room join.
type Gate struct {
	verifier CredentialVerifier
	projects ProjectLookup
}

func NewGate(verifier CredentialVerifier, projects ProjectLookup) *Gate {
	return &Gate{verifier: verifier, projects: projects}
}

// Authenticate extracts the project id and bearer credential from the
// connection request and validates both. The project is checked first, then
// the credential; the first failure wins and the connection is rejected
// before any upgrade.
//
// Membership is intentionally not checked: any authenticated user may join
// the room of any existing project, matching the behaviour of the legacy
// service this replaces.
func (g *Gate) Authenticate(r *http.Request) (domain.Identity, string, error) {
	projectID := r.URL.Query().Get("projectId")
	if projectID == "" {
		return domain.Identity{}, "", apperrors.ErrMissingProject
	}
	if !repositories.ValidProjectID(projectID) {
		return domain.Identity{}, "", apperrors.ErrInvalidProject
	}
	if _, err := g.projects.GetByID(projectID); err != nil {
		return domain.Identity{}, "", apperrors.ErrProjectNotFound
	}

	token := credentialFrom(r)
	if token == "" {
		return domain.Identity{}, "", apperrors.ErrMissingCredential
	}

	identity, err := g.verifier.VerifySession(token)
	if err != nil {
		return domain.Identity{}, "", apperrors.ErrInvalidCredential
	}

	return identity, projectID, nil
}

// credentialFrom reads the token from the Authorization header or, for
// browser websocket clients that cannot set headers, from the "token"
// query field.
func credentialFrom(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return r.URL.Query().Get("token")
}
