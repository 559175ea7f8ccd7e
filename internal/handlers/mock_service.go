package handlers

import (
	"context"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
	"github.com/Yurchenkopi/job4j-auth/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockPersons struct {
	FindAllFn     func(ctx context.Context) ([]models.Person, error)
	FindByIDFn    func(ctx context.Context, id int) (*models.Person, error)
	FindByLoginFn func(ctx context.Context, login string) (*models.Person, error)
	SaveFn        func(ctx context.Context, p models.Person) (*models.Person, error)
	UpdateFn      func(ctx context.Context, p models.Person) (bool, error)
	DeleteFn      func(ctx context.Context, id int) (bool, error)

	findAllCalls  int
	findByIDCalls int
	updateCalls   int
	deleteCalls   int

	lastFindByID int
	lastUpdate   models.Person
	lastDelete   int
}

func (m *mockPersons) FindAll(ctx context.Context) ([]models.Person, error) {
	m.findAllCalls++
	return m.FindAllFn(ctx)
}

func (m *mockPersons) FindByID(ctx context.Context, id int) (*models.Person, error) {
	m.findByIDCalls++
	m.lastFindByID = id
	return m.FindByIDFn(ctx, id)
}

func (m *mockPersons) FindByLogin(ctx context.Context, login string) (*models.Person, error) {
	return m.FindByLoginFn(ctx, login)
}

func (m *mockPersons) Save(ctx context.Context, p models.Person) (*models.Person, error) {
	return m.SaveFn(ctx, p)
}

func (m *mockPersons) Update(ctx context.Context, p models.Person) (bool, error) {
	m.updateCalls++
	m.lastUpdate = p
	return m.UpdateFn(ctx, p)
}

func (m *mockPersons) Delete(ctx context.Context, id int) (bool, error) {
	m.deleteCalls++
	m.lastDelete = id
	return m.DeleteFn(ctx, id)
}

type mockAuth struct {
	SignUpFn       func(ctx context.Context, p models.Person) (*models.Person, error)
	AuthenticateFn func(ctx context.Context, login, password string) (*models.Person, error)

	lastSignUp models.Person
}

func (m *mockAuth) SignUp(ctx context.Context, p models.Person) (*models.Person, error) {
	m.lastSignUp = p
	return m.SignUpFn(ctx, p)
}

func (m *mockAuth) Authenticate(ctx context.Context, login, password string) (*models.Person, error) {
	return m.AuthenticateFn(ctx, login, password)
}

// ---- Shared Test Helpers ----

// newTestRouter wires mocks behind the real routes with the real password
// policy; logging is disabled.
func newTestRouter(persons *mockPersons, auth *mockAuth) *gin.Engine {
	s := &service.Service{
		Persons:       persons,
		Authorization: auth,
		Passwords:     service.NewPasswordPolicy(),
	}
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
