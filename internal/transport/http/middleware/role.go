package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/catebros/lostfound/internal/domain"
)

// UserLookup resolves the current user for role checks.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// RequireStaff allows the request through only for moderator or admin
// users. Must run after Auth.
func RequireStaff(users UserLookup) func(http.Handler) http.Handler {
	return requireRole(users, func(r domain.Role) bool { return r.IsStaff() })
}

// RequireAdmin allows the request through only for admin users. Must
// run after Auth.
func RequireAdmin(users UserLookup) func(http.Handler) http.Handler {
	return requireRole(users, func(r domain.Role) bool { return r == domain.RoleAdmin })
}

func requireRole(users UserLookup, allowed func(domain.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				http.Error(w, `{"error":{"code":"INTERNAL","message":"Something went wrong"}}`, http.StatusInternalServerError)
				return
			}
			if user == nil || !allowed(user.Role) {
				http.Error(w, `{"error":{"code":"FORBIDDEN","message":"Insufficient role"}}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
