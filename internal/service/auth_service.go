package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"storefront/internal/config"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type JwtCustomClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService issues and verifies the admin session token. There is a
// single statically configured credential pair.
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

// Login checks the credentials against the configured admin pair and issues
// an HS256 token embedding the email, valid for the configured TTL.
func (s *AuthService) Login(email, password string) (string, error) {
	if email != s.cfg.AdminEmail || password != s.cfg.AdminPassword {
		return "", ErrInvalidCredentials
	}

	claims := &JwtCustomClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.TokenTTL)),
		},
	}

	tkn := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token, err := tkn.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		logger.Error().Err(err).Msg("Error signing session token")
		return "", err
	}

	return token, nil
}

// ParseToken validates signature and expiry and returns the decoded claims.
func (s *AuthService) ParseToken(token string) (*JwtCustomClaims, error) {
	claims := &JwtCustomClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
