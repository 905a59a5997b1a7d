package auth

import (
	"context"
)

type AuthService interface {
	// LoginWithEmployeeCode starts a clock session for the employee holding code
	LoginWithEmployeeCode(ctx context.Context, req EmployeeLoginRequest) (TokenResponse, error)
	// LoginAdmin checks the configured admin credential
	LoginAdmin(ctx context.Context, req AdminLoginRequest) (TokenResponse, error)
	// Logout revokes the presented access token
	Logout(ctx context.Context, token string) error
	// IssueSSEToken hands out a short-lived token for the admin event stream
	IssueSSEToken(ctx context.Context, subject string) (SSETokenResponse, error)
}
