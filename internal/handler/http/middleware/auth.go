package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RevocationChecker reports tokens ended by logout.
type RevocationChecker interface {
	IsTokenRevoked(token string) bool
}

// AuthRequired accepts verified, unrevoked access tokens. It runs after jwtauth.Verifier.
func AuthRequired(revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if revoked != nil && revoked.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func claimString(ctx context.Context, key string) string {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return ""
	}
	v, _ := claims[key].(string)
	return v
}

// EmployeeIDFromContext returns the employee id of a clock session, or "".
func EmployeeIDFromContext(ctx context.Context) string {
	return claimString(ctx, "employee_id")
}

// SubjectFromContext returns the token subject, or "".
func SubjectFromContext(ctx context.Context) string {
	return claimString(ctx, "sub")
}

// RoleFromContext returns the role claim, or "".
func RoleFromContext(ctx context.Context) auth.Role {
	return auth.Role(claimString(ctx, "role"))
}
