package middleware

import (
	"net/http"

	"github.com/arcadia-hr/hrm-backend-go/internal/domain/user"
	"github.com/arcadia-hr/hrm-backend-go/internal/handler/http/response"
)

// RequireRoles allows only the listed roles through. Must run after
// AuthRequired.
func RequireRoles(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				response.Forbidden(w, "access denied")
				return
			}

			for _, role := range roles {
				if identity.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			response.Forbidden(w, "access denied")
		})
	}
}

// HROnly admits the HR role.
func HROnly(next http.Handler) http.Handler {
	return RequireRoles(user.RoleHR)(next)
}

// StaffOnly admits HR and admin, the two roles that manage users and
// master data.
func StaffOnly(next http.Handler) http.Handler {
	return RequireRoles(user.RoleHR, user.RoleAdmin)(next)
}
