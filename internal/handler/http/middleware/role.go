package middleware

import (
	"net/http"
	"slices"

	"github.com/go-chi/jwtauth/v5"
	"github.com/policlinic/clinic-backend-go/internal/domain/auth"
	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/handler/http/response"
)

// RequireRole lets through tokens whose role claim is one of roles.
func RequireRole(roles ...staff.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, auth.ErrRoleNotAllowed)
				return
			}

			if !slices.Contains(roles, staff.RoleName(role)) {
				response.HandleError(w, auth.ErrRoleNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdministrator guards the clinic-wide endpoints.
func RequireAdministrator(next http.Handler) http.Handler {
	return RequireRole(staff.RoleAdministrator)(next)
}
