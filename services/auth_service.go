package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var ErrBadPassword = errors.New("incorrect password")

const tokenLifetime = 24 * time.Hour

// AuthService gates the app behind a single shared password. The password
// is hashed once at startup and never kept in clear; a successful login
// yields a JWT the middleware checks on mutating routes. An empty
// configured password disables the gate.
type AuthService struct {
	passwordHash []byte
	jwtSecret    string
	logger       zerolog.Logger
}

func NewAuthService(appPassword, jwtSecret string, logger zerolog.Logger) (*AuthService, error) {
	s := &AuthService{jwtSecret: jwtSecret, logger: logger}
	if appPassword == "" {
		logger.Warn().Msg("no app password configured, access gate disabled")
		return s, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(appPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	s.passwordHash = hash
	return s, nil
}

// Enabled reports whether a password gate is configured.
func (s *AuthService) Enabled() bool {
	return s.passwordHash != nil
}

// Login checks the shared password and issues a token.
func (s *AuthService) Login(password string) (string, error) {
	if !s.Enabled() {
		return s.issueToken()
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrBadPassword
	}
	return s.issueToken()
}

func (s *AuthService) issueToken() (string, error) {
	claims := jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(tokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}
