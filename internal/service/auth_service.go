package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
	"github.com/Yurchenkopi/job4j-auth/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned by Authenticate for both an unknown
// login and a wrong password, so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid login or password")

// AuthService handles sign-up hashing and principal verification.
type AuthService struct {
	persons repository.Persons
}

func NewAuthService(persons repository.Persons) *AuthService {
	return &AuthService{persons: persons}
}

var _ Authorization = (*AuthService)(nil)

// SignUp hashes the (already validated) raw password and persists the
// record. The returned record carries the hash in its password field.
func (s *AuthService) SignUp(ctx context.Context, p models.Person) (*models.Person, error) {
	hash, err := HashPassword(p.Password)
	if err != nil {
		return nil, fmt.Errorf("invalid password: %w", err)
	}
	p.Password = hash
	return s.persons.Save(ctx, p)
}

// Authenticate looks up the principal by login and verifies the password
// against the stored hash. No token is issued; the caller only learns
// whether the credentials identify a stored account.
func (s *AuthService) Authenticate(ctx context.Context, login, password string) (*models.Person, error) {
	u, err := s.persons.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}
	if err := verifyPassword(u.Password, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// HashPassword runs the raw password through bcrypt.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// verifyPassword checks a raw password against a stored bcrypt hash.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
