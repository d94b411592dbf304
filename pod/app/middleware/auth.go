package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"panda-gate/apperrors"
	"panda-gate/roles"
	"panda-gate/session"
)

type ctxKey int

const claimsKey ctxKey = 1

// RoleSource reads a user's current stored role. The admin gate uses it
// instead of the role snapshot inside the token.
type RoleSource interface {
	CurrentRole(ctx context.Context, userID string) (roles.Role, error)
}

type Auth struct {
	Verifier session.Verifier
	Roles    RoleSource
}

func writeEnvelope(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(apperrors.ToEnvelope(err))
}

func bearerClaims(r *http.Request, v session.Verifier) *session.Claims {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return nil
	}
	return v.Verify(strings.TrimPrefix(authz, "Bearer "))
}

// RequireAuth re-verifies the bearer token on every pod request; the
// pod never trusts that the front tier already did.
func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := bearerClaims(r, a.Verifier)
		if claims == nil {
			writeEnvelope(w, http.StatusUnauthorized, apperrors.Unauthenticated("missing or invalid token"))
			return
		}
		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin additionally re-reads the stored role, so a demotion
// takes effect here within the role-cache TTL rather than the token
// lifetime.
func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r.Context())
		role, err := a.Roles.CurrentRole(r.Context(), claims.UserID)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			// valid token for an account that no longer exists
			writeEnvelope(w, http.StatusForbidden, apperrors.Forbidden("admin access required"))
			return
		case err != nil:
			// a store outage is not a forbidden caller
			writeEnvelope(w, http.StatusInternalServerError, err)
			return
		case !roles.IsAdmin(role):
			writeEnvelope(w, http.StatusForbidden, apperrors.Forbidden("admin access required"))
			return
		}
		next.ServeHTTP(w, r)
	}))
}
