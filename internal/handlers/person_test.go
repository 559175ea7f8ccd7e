package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
	"github.com/Yurchenkopi/job4j-auth/internal/service"

	"github.com/gin-gonic/gin"

	"golang.org/x/crypto/bcrypt"
)

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body == "" {
		reader = bytes.NewBufferString("")
	} else {
		reader = bytes.NewBufferString(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("error body is not JSON: %s", w.Body.String())
	}
	return e
}

func TestListPersons(t *testing.T) {
	persons := &mockPersons{
		FindAllFn: func(ctx context.Context) ([]models.Person, error) {
			return []models.Person{
				{ID: 1, Login: "alice", Password: "h1"},
				{ID: 2, Login: "bob", Password: "h2"},
			}, nil
		},
	}
	r := newTestRouter(persons, &mockAuth{})

	w := doJSON(t, r, http.MethodGet, "/person/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var got []models.Person
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("body is not a person array: %s", w.Body.String())
	}
	if len(got) != 2 || got[0].Login != "alice" {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestGetPersonByID(t *testing.T) {
	stored := &models.Person{ID: 7, Login: "alice", Password: "h123"}
	persons := &mockPersons{
		FindByIDFn: func(ctx context.Context, id int) (*models.Person, error) {
			if id == 7 {
				return stored, nil
			}
			return nil, nil
		},
	}
	r := newTestRouter(persons, &mockAuth{})

	// zero id rejected before the store is touched
	w := doJSON(t, r, http.MethodGet, "/person/0", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for id=0, got %d", w.Code)
	}
	if e := decodeError(t, w); e.Type != string(models.KindInvalidIdentifier) {
		t.Fatalf("expected InvalidIdentifier, got %+v", e)
	}
	if persons.findByIDCalls != 0 {
		t.Fatalf("store must not be consulted for id=0, got %d calls", persons.findByIDCalls)
	}

	// non-numeric id
	w = doJSON(t, r, http.MethodGet, "/person/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", w.Code)
	}

	// found
	w = doJSON(t, r, http.MethodGet, "/person/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}
	var got models.Person
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != 7 || got.Login != "alice" {
		t.Fatalf("unexpected person: %+v", got)
	}

	// absent
	w = doJSON(t, r, http.MethodGet, "/person/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if e := decodeError(t, w); e.Type != string(models.KindNotFound) {
		t.Fatalf("expected NotFound, got %+v", e)
	}
}

func TestCreatePerson(t *testing.T) {
	auth := &mockAuth{
		SignUpFn: func(ctx context.Context, p models.Person) (*models.Person, error) {
			hash, err := service.HashPassword(p.Password)
			if err != nil {
				return nil, err
			}
			p.ID = 1
			p.Password = hash
			return &p, nil
		},
	}
	r := newTestRouter(&mockPersons{}, auth)

	t.Run("missing credentials", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/person/", `{"login":"bob"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if e := decodeError(t, w); e.Type != string(models.KindMissingCredential) {
			t.Fatalf("expected MissingCredential, got %+v", e)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/person/", `{"login":"bob","password":"alllower"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if e := decodeError(t, w); e.Type != string(models.KindWeakPassword) {
			t.Fatalf("expected WeakPassword, got %+v", e)
		}
	})

	t.Run("success stores hash, not raw password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/person/", `{"login":"bob","password":"Mixed1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		var got models.Person
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got.ID != 1 || got.Login != "bob" {
			t.Fatalf("unexpected person: %+v", got)
		}
		if got.Password == "Mixed1" {
			t.Fatal("response must carry the hash, not the raw password")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("Mixed1")); err != nil {
			t.Fatalf("returned password is not a bcrypt hash of the raw one: %v", err)
		}
	})

	t.Run("sign-up alias", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/person/sign-up", `{"login":"carol","password":"Mixed1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
	})

	t.Run("duplicate login", func(t *testing.T) {
		dupAuth := &mockAuth{
			SignUpFn: func(ctx context.Context, p models.Person) (*models.Person, error) {
				return nil, models.E(models.KindDuplicateLogin, `login "bob" is already taken`)
			},
		}
		dr := newTestRouter(&mockPersons{}, dupAuth)

		w := doJSON(t, dr, http.MethodPost, "/person/", `{"login":"bob","password":"Mixed1"}`)
		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d body=%s", w.Code, w.Body.String())
		}
		if e := decodeError(t, w); e.Type != string(models.KindDuplicateLogin) {
			t.Fatalf("expected DuplicateLogin, got %+v", e)
		}
	})
}

func TestSignIn(t *testing.T) {
	stored := &models.Person{ID: 7, Login: "alice", Password: "$2a$10$hash"}
	auth := &mockAuth{
		AuthenticateFn: func(ctx context.Context, login, password string) (*models.Person, error) {
			if login == "alice" && password == "S3cret" {
				return stored, nil
			}
			return nil, service.ErrInvalidCredentials
		},
	}
	r := newTestRouter(&mockPersons{}, auth)

	w := doJSON(t, r, http.MethodPost, "/person/sign-in", `{"login":"alice","password":"S3cret"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/person/sign-in", `{"login":"alice","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/person/sign-in", `{"login":"alice"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing password, got %d", w.Code)
	}
}

func TestUpdatePerson(t *testing.T) {
	persons := &mockPersons{
		UpdateFn: func(ctx context.Context, p models.Person) (bool, error) {
			return p.ID == 7, nil
		},
	}
	r := newTestRouter(persons, &mockAuth{})

	t.Run("zero id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/person/", `{"login":"alice","password":"Mixed1"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
		if e := decodeError(t, w); e.Type != string(models.KindInvalidIdentifier) {
			t.Fatalf("expected InvalidIdentifier, got %+v", e)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/person/", `{"id":7,"login":"alice","password":"alllower"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success hashes password before store", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/person/", `{"id":7,"login":"alice","password":"Mixed1"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if persons.lastUpdate.Password == "Mixed1" {
			t.Fatal("raw password must not reach the store")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(persons.lastUpdate.Password), []byte("Mixed1")); err != nil {
			t.Fatalf("stored password is not a bcrypt hash: %v", err)
		}
	})

	t.Run("absent id", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/person/", `{"id":999,"login":"alice","password":"Mixed1"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestPatchPerson(t *testing.T) {
	current := models.Person{ID: 5, Login: "bob", Password: "$2a$10$hash", FirstName: "Bob", LastName: "Smith"}

	newPatchRouter := func() (*mockPersons, *gin.Engine) {
		persons := &mockPersons{
			FindByIDFn: func(ctx context.Context, id int) (*models.Person, error) {
				if id == 5 {
					c := current
					return &c, nil
				}
				return nil, nil
			},
			UpdateFn: func(ctx context.Context, p models.Person) (bool, error) {
				return true, nil
			},
		}
		return persons, newTestRouter(persons, &mockAuth{})
	}

	t.Run("id-only payload leaves record unchanged", func(t *testing.T) {
		persons, r := newPatchRouter()

		w := doJSON(t, r, http.MethodPatch, "/person/", `{"id":5}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if persons.lastUpdate != current {
			t.Fatalf("record must be unchanged, stored %+v", persons.lastUpdate)
		}
		var got models.Person
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got.Login != "bob" || got.FirstName != "Bob" || got.LastName != "Smith" {
			t.Fatalf("merged response changed fields: %+v", got)
		}
	})

	t.Run("non-empty field overwrites, others untouched", func(t *testing.T) {
		persons, r := newPatchRouter()

		w := doJSON(t, r, http.MethodPatch, "/person/", `{"id":5,"last_name":"Jones"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		got := persons.lastUpdate
		if got.LastName != "Jones" || got.Login != "bob" || got.FirstName != "Bob" || got.ID != 5 {
			t.Fatalf("unexpected merged record: %+v", got)
		}
	})

	t.Run("raw password is hashed before merge", func(t *testing.T) {
		persons, r := newPatchRouter()

		w := doJSON(t, r, http.MethodPatch, "/person/", `{"id":5,"password":"NewPass"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
		}
		if persons.lastUpdate.Password == "NewPass" {
			t.Fatal("raw password must not reach the store")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(persons.lastUpdate.Password), []byte("NewPass")); err != nil {
			t.Fatalf("stored password is not a bcrypt hash: %v", err)
		}
	})

	t.Run("unknown field is a structural mismatch", func(t *testing.T) {
		persons, r := newPatchRouter()

		w := doJSON(t, r, http.MethodPatch, "/person/", `{"id":5,"nickname":"bobby"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", w.Code, w.Body.String())
		}
		if e := decodeError(t, w); e.Type != string(models.KindStructuralMismatch) {
			t.Fatalf("expected StructuralMismatch, got %+v", e)
		}
		if persons.findByIDCalls != 0 || persons.updateCalls != 0 {
			t.Fatal("store must not be consulted for a mismatched payload")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		_, r := newPatchRouter()

		w := doJSON(t, r, http.MethodPatch, "/person/", `{"login":"bob"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("absent record", func(t *testing.T) {
		_, r := newPatchRouter()

		w := doJSON(t, r, http.MethodPatch, "/person/", `{"id":999,"login":"bob"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestDeletePerson(t *testing.T) {
	persons := &mockPersons{
		DeleteFn: func(ctx context.Context, id int) (bool, error) {
			return id == 7, nil
		},
	}
	r := newTestRouter(persons, &mockAuth{})

	// zero id rejected before the store is touched
	w := doJSON(t, r, http.MethodDelete, "/person/0", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for id=0, got %d", w.Code)
	}
	if persons.deleteCalls != 0 {
		t.Fatalf("store must not be consulted for id=0, got %d calls", persons.deleteCalls)
	}

	w = doJSON(t, r, http.MethodDelete, "/person/7", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodDelete, "/person/999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestStoreFailureIsFatalToRequest(t *testing.T) {
	persons := &mockPersons{
		FindAllFn: func(ctx context.Context) ([]models.Person, error) {
			return nil, errors.New("db down")
		},
	}
	r := newTestRouter(persons, &mockAuth{})

	w := doJSON(t, r, http.MethodGet, "/person/", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if e := decodeError(t, w); e.Type != string(models.KindInternal) {
		t.Fatalf("expected Internal, got %+v", e)
	}
}
