package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"devroom/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// Middleware validates the bearer credential of incoming HTTP calls and
// injects the caller identity into the request context. The token is read
// from the Authorization header ("Bearer <token>") or, failing that, from
// the "token" cookie, matching the original client behaviour.
func Middleware(tokens *TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				unauthorized(w, "no token, authorization denied")
				return
			}

			identity, err := tokens.VerifySession(tokenStr)
			if err != nil {
				unauthorized(w, "token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext retrieves the caller injected by Middleware.
func IdentityFromContext(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	return identity, ok
}

// bearerToken extracts the raw credential from a request.
func bearerToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"errors": msg})
}
