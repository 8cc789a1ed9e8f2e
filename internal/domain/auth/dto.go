package auth

import "github.com/cmlabs-hris/checkin-backend-go/internal/pkg/validator"

type LoginRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

func (r *LoginRequest) Validate() error {
	return validator.Struct(r)
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}
