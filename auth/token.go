package auth

import (
	"time"

	"devroom/domain"
	apperrors "devroom/errors"

	"github.com/golang-jwt/jwt/v5"
)

// resetPurpose tags short-lived password reset tokens so they can never be
// replayed as session tokens (and vice versa).
const resetPurpose = "password_reset"

// CustomClaims defines the data stored inside a JWT.
type CustomClaims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies the two token flavours of the system:
// 24h session tokens and 5-minute reset tokens. The signing secret is
// injected from configuration, never hardcoded.
type TokenManager struct {
	secret     []byte
	sessionTTL time.Duration
	resetTTL   time.Duration
}

func NewTokenManager(secret string, sessionTTL, resetTTL time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), sessionTTL: sessionTTL, resetTTL: resetTTL}
}

// GenerateSession creates a signed session JWT for a verified user.
func (m *TokenManager) GenerateSession(identity domain.Identity) (string, error) {
	return m.sign(identity, "", m.sessionTTL)
}

// GenerateReset creates a short-lived purpose-tagged token used only by the
// password reset flow.
func (m *TokenManager) GenerateReset(identity domain.Identity) (string, error) {
	return m.sign(identity, resetPurpose, m.resetTTL)
}

func (m *TokenManager) sign(identity domain.Identity, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID:  identity.UserID,
		Email:   identity.Email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "devroom",
		},
	}

	// HS256: HMAC with SHA256, same scheme for both flavours.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// VerifySession validates a session token and returns the caller identity.
// Reset tokens are rejected here regardless of their expiry.
func (m *TokenManager) VerifySession(tokenString string) (domain.Identity, error) {
	claims, err := m.parse(tokenString)
	if err != nil || claims.Purpose != "" {
		return domain.Identity{}, apperrors.ErrInvalidCredential
	}
	return domain.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

// VerifyReset validates a reset token; session tokens are rejected.
func (m *TokenManager) VerifyReset(tokenString string) (domain.Identity, error) {
	claims, err := m.parse(tokenString)
	if err != nil || claims.Purpose != resetPurpose {
		return domain.Identity{}, apperrors.ErrInvalidCredential
	}
	return domain.Identity{UserID: claims.UserID, Email: claims.Email}, nil
}

func (m *TokenManager) parse(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
