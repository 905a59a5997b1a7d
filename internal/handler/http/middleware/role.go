package middleware

import (
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
)

func requireRole(role auth.Role, denied error) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if RoleFromContext(r.Context()) != role {
				response.HandleError(w, denied)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminOnly gates the admin screens.
func AdminOnly(next http.Handler) http.Handler {
	return requireRole(auth.RoleAdmin, auth.ErrAdminRequired)(next)
}

// EmployeeOnly gates the clock screen. The token must also carry an employee id.
func EmployeeOnly(next http.Handler) http.Handler {
	return requireRole(auth.RoleEmployee, auth.ErrEmployeeRequired)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if EmployeeIDFromContext(r.Context()) == "" {
				response.HandleError(w, auth.ErrEmployeeRequired)
				return
			}
			next.ServeHTTP(w, r)
		}),
	)
}
