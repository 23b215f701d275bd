// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jonathan/resource-manager/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const sessionKey ContextKey = "session"

// Session is the authenticated caller. It is built once per request from the
// bearer token and passed down explicitly through the request context.
type Session struct {
	UserID int64
	Role   types.Role
}

// IsManager reports whether the caller holds the manager role.
func (s Session) IsManager() bool {
	return s.Role == types.RoleManager
}

// TokenValidator validates an access token and returns the session it encodes.
type TokenValidator interface {
	ValidateToken(tokenString string) (SessionClaims, error)
}

// SessionClaims is implemented by token claims that identify a caller.
type SessionClaims interface {
	Session() Session
}

// AuthMiddleware rejects requests without a valid bearer token and stores the
// caller's Session in the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w)
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := WithSession(r.Context(), claims.Session())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireManager rejects authenticated callers that are not managers. It must run
// after AuthMiddleware.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := SessionFrom(r.Context())
		if err != nil {
			unauthorized(w)
			return
		}
		if !sess.IsManager() {
			writeError(w, http.StatusForbidden, "manager role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithSession returns a context carrying sess.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFrom extracts the authenticated session from ctx.
func SessionFrom(ctx context.Context) (Session, error) {
	sess, ok := ctx.Value(sessionKey).(Session)
	if !ok {
		return Session{}, fmt.Errorf("session not found in request context")
	}
	return sess, nil
}

// bearerToken parses "Bearer <token>", accepting any case for the scheme.
func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], parts[1] != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "could not validate credentials")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
