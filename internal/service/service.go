package service

import (
	"context"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
	"github.com/Yurchenkopi/job4j-auth/internal/repository"
)

// Persons exposes account CRUD; a direct pass-through to the store.
type Persons interface {
	FindAll(ctx context.Context) ([]models.Person, error)
	FindByID(ctx context.Context, id int) (*models.Person, error)
	FindByLogin(ctx context.Context, login string) (*models.Person, error)
	Save(ctx context.Context, p models.Person) (*models.Person, error)
	Update(ctx context.Context, p models.Person) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// Authorization covers sign-up hashing and username/password principal
// verification. No tokens or sessions are issued at this layer.
type Authorization interface {
	SignUp(ctx context.Context, p models.Person) (*models.Person, error)
	Authenticate(ctx context.Context, login, password string) (*models.Person, error)
}

// Passwords validates raw password strength before hashing.
type Passwords interface {
	Validate(raw string) bool
}

// Service aggregates all sub-services.
type Service struct {
	Persons
	Authorization
	Passwords
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository) *Service {
	return &Service{
		Persons:       NewPersonService(repos.Persons),
		Authorization: NewAuthService(repos.Persons),
		Passwords:     NewPasswordPolicy(),
	}
}
