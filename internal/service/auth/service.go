package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminCredentials is the single configured admin login.
type AdminCredentials struct {
	Username string
	Password string
}

type AuthServiceImpl struct {
	employeeRepo  employee.EmployeeRepository
	jwtService    jwt.Service
	adminUsername string
	adminHash     []byte
}

// NewAuthService hashes the admin password once so logins compare through bcrypt.
func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service, admin AdminCredentials) (auth.AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AuthServiceImpl{
		employeeRepo:  employeeRepo,
		jwtService:    jwtService,
		adminUsername: admin.Username,
		adminHash:     hash,
	}, nil
}

// LoginWithEmployeeCode implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithEmployeeCode(ctx context.Context, req auth.EmployeeLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	employeeData, err := a.employeeRepo.GetByEmployeeCode(ctx, req.EmployeeCode)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidEmployeeCode
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(employeeData.ID, auth.RoleEmployee, &employeeData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("employee clock session started", "employee_id", employeeData.ID)
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 auth.RoleEmployee,
		EmployeeID:           &employeeData.ID,
		EmployeeName:         &employeeData.Name,
	}, nil
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.adminUsername)) == 1
	// The hash is compared even on a wrong username so both paths cost the same.
	passwordErr := bcrypt.CompareHashAndPassword(a.adminHash, []byte(req.Password))
	if !usernameOK || passwordErr != nil {
		slog.Warn("admin login rejected", "username", req.Username)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAccessToken(a.adminUsername, auth.RoleAdmin, nil)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	slog.Info("admin logged in", "username", a.adminUsername)
	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		Role:                 auth.RoleAdmin,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	parsed, err := jwtauth.VerifyToken(a.jwtService.JWTAuth(), token)
	if err != nil {
		return auth.ErrInvalidToken
	}

	a.jwtService.RevokeToken(token, parsed.Expiration().Unix())
	slog.Info("session ended", "subject", parsed.Subject())
	return nil
}

// IssueSSEToken implements auth.AuthService.
func (a *AuthServiceImpl) IssueSSEToken(ctx context.Context, subject string) (auth.SSETokenResponse, error) {
	token, expiresIn, err := a.jwtService.GenerateSSEToken(subject)
	if err != nil {
		return auth.SSETokenResponse{}, fmt.Errorf("failed to create sse token: %w", err)
	}
	return auth.SSETokenResponse{Token: token, ExpiresIn: expiresIn}, nil
}
