package services

import (
	"errors"
	"time"

	"comic-news/config"
	"comic-news/models"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthService issues admin tokens for the refresh trigger, which costs
// provider money per run and is not left open.
type AuthService interface {
	Login(req models.LoginRequest) (string, error)
}

type authService struct {
	passwordHash  string
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(cfg *config.Config) AuthService {
	return &authService{
		passwordHash:  cfg.AdminPasswordHash,
		jwtSecret:     cfg.JWTSecret,
		jwtExpiration: cfg.JWTExpiration,
	}
}

func (s *authService) Login(req models.LoginRequest) (string, error) {
	if s.passwordHash == "" {
		return "", &models.ConfigurationError{Key: "ADMIN_PASSWORD_HASH"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(req.Password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  now.Add(s.jwtExpiration).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
