package service

import (
	"context"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
	"github.com/Yurchenkopi/job4j-auth/internal/repository"
)

// PersonService delegates straight to the store. Existence checks and
// validation are the caller's responsibility; failures are surfaced
// synchronously and never retried.
type PersonService struct {
	persons repository.Persons
}

func NewPersonService(persons repository.Persons) *PersonService {
	return &PersonService{persons: persons}
}

var _ Persons = (*PersonService)(nil)

func (s *PersonService) FindAll(ctx context.Context) ([]models.Person, error) {
	return s.persons.FindAll(ctx)
}

func (s *PersonService) FindByID(ctx context.Context, id int) (*models.Person, error) {
	return s.persons.FindByID(ctx, id)
}

func (s *PersonService) FindByLogin(ctx context.Context, login string) (*models.Person, error) {
	return s.persons.FindByLogin(ctx, login)
}

func (s *PersonService) Save(ctx context.Context, p models.Person) (*models.Person, error) {
	return s.persons.Save(ctx, p)
}

func (s *PersonService) Update(ctx context.Context, p models.Person) (bool, error) {
	return s.persons.Update(ctx, p)
}

func (s *PersonService) Delete(ctx context.Context, id int) (bool, error) {
	return s.persons.Delete(ctx, id)
}
