package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/checkin-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/checkin-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthServiceImpl struct {
	jwtService    jwt.Service
	adminPassword string
}

// NewAuthService guards the admin area with a single shared password.
// An empty password disables admin login.
func NewAuthService(jwtService jwt.Service, adminPassword string) auth.AuthService {
	return &AuthServiceImpl{
		jwtService:    jwtService,
		adminPassword: adminPassword,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}
	if a.adminPassword == "" {
		return auth.TokenResponse{}, auth.ErrAdminDisabled
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.adminPassword)) != 1 {
		slog.Warn("admin login rejected")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.jwtService.GenerateAdminToken()
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   time.Unix(expiresAt, 0).UTC().Format(time.RFC3339),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context) error {
	token, _, err := jwtauth.FromContext(ctx)
	if err != nil || token == nil {
		return auth.ErrInvalidToken
	}

	jti := token.JwtID()
	if jti == "" {
		return auth.ErrInvalidToken
	}

	a.jwtService.RevokeToken(jti, token.Expiration())
	slog.Info("admin logged out", "jti", jti)
	return nil
}
