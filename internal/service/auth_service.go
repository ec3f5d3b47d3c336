package service

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AdminRole is the only role a session can be granted.
const AdminRole = "admin"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
)

// AuthService checks login attempts against the configured admin identity.
type AuthService struct {
	email        string
	password     string
	passwordHash string
}

// NewAuthService creates an AuthService. When passwordHash is a bcrypt hash it
// takes precedence over the plain password.
func NewAuthService(email, password, passwordHash string) *AuthService {
	return &AuthService{
		email:        email,
		password:     password,
		passwordHash: strings.TrimSpace(passwordHash),
	}
}

// Verify returns ErrInvalidCredentials unless email and password match.
func (s *AuthService) Verify(email, password string) error {
	if s.email == "" || (s.password == "" && s.passwordHash == "") {
		return ErrInvalidCredentials
	}
	if subtle.ConstantTimeCompare([]byte(email), []byte(s.email)) != 1 {
		return ErrInvalidCredentials
	}

	if s.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}
