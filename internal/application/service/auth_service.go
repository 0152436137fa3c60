package service

import (
	"strings"
	"time"

	"github.com/sangkips/gestor-mesas/pkg/apperror"
	"github.com/sangkips/gestor-mesas/pkg/utils"
)

// AuthService handles operator PIN login
type AuthService struct {
	enabled    bool
	pinHash    string
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(enabled bool, pinHash string, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		enabled:    enabled,
		pinHash:    pinHash,
		jwtManager: jwtManager,
	}
}

// LoginInput represents the login input
type LoginInput struct {
	Operator string
	PIN      string
}

// LoginOutput represents the login output
type LoginOutput struct {
	Operator    string    `json:"operator"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Enabled reports whether the API requires a token
func (s *AuthService) Enabled() bool {
	return s.enabled
}

// Login checks the operator PIN and issues an access token
func (s *AuthService) Login(input *LoginInput) (*LoginOutput, error) {
	if !s.enabled {
		return nil, apperror.NewBadRequestError("Authentication is disabled")
	}
	if s.pinHash == "" || !utils.CheckPasswordHash(input.PIN, s.pinHash) {
		return nil, apperror.ErrInvalidCredentials
	}

	operator := strings.TrimSpace(input.Operator)
	if operator == "" {
		operator = "caixa"
	}
	token, expiresAt, err := s.jwtManager.GenerateAccessToken(operator)
	if err != nil {
		return nil, err
	}
	return &LoginOutput{Operator: operator, AccessToken: token, ExpiresAt: expiresAt}, nil
}

// ValidateToken returns the operator of a valid access token
func (s *AuthService) ValidateToken(token string) (string, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return "", apperror.ErrInvalidToken
	}
	return claims.Operator, nil
}
