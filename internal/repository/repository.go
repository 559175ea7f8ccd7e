package repository

import (
	"context"
	"database/sql"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
)

// Persons is the account store: CRUD by id plus lookup by login.
type Persons interface {
	FindAll(ctx context.Context) ([]models.Person, error)
	FindByID(ctx context.Context, id int) (*models.Person, error)
	FindByLogin(ctx context.Context, login string) (*models.Person, error)
	Save(ctx context.Context, p models.Person) (*models.Person, error)
	Update(ctx context.Context, p models.Person) (bool, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type Repository struct {
	Persons Persons
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Persons: NewPersonRepository(db),
	}
}
