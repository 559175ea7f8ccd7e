package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Yurchenkopi/job4j-auth/internal/models"
)

type PersonRepository struct {
	db *sql.DB
}

func NewPersonRepository(db *sql.DB) *PersonRepository {
	return &PersonRepository{db: db}
}

// Ensure implementation of Persons interface at compile time.
var _ Persons = (*PersonRepository)(nil)

const (
	selectAllPersonsSQL = `SELECT id, login, password_hash, first_name, last_name FROM persons ORDER BY id`

	selectPersonByIDSQL = `SELECT id, login, password_hash, first_name, last_name FROM persons WHERE id = ?`

	selectPersonByLoginSQL = `SELECT id, login, password_hash, first_name, last_name FROM persons WHERE login = ?`

	insertPersonSQL = `INSERT INTO persons (login, password_hash, first_name, last_name) VALUES (?, ?, ?, ?)`

	updatePersonSQL = `UPDATE persons SET login = ?, password_hash = ?, first_name = ?, last_name = ? WHERE id = ?`

	deletePersonSQL = `DELETE FROM persons WHERE id = ?`
)

// isUniqueViolation reports whether err is the driver's UNIQUE constraint
// failure on the login column.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func scanPerson(row *sql.Row) (*models.Person, error) {
	var p models.Person
	err := row.Scan(&p.ID, &p.Login, &p.Password, &p.FirstName, &p.LastName)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll returns every stored person in id order.
func (r *PersonRepository) FindAll(ctx context.Context) ([]models.Person, error) {
	rows, err := r.db.QueryContext(ctx, selectAllPersonsSQL)
	if err != nil {
		return nil, fmt.Errorf("select persons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	persons := make([]models.Person, 0)
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Login, &p.Password, &p.FirstName, &p.LastName); err != nil {
			return nil, fmt.Errorf("scan person row: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate person rows: %w", err)
	}
	return persons, nil
}

// FindByID fetches a person by id. Returns (nil, nil) if not found.
func (r *PersonRepository) FindByID(ctx context.Context, id int) (*models.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, selectPersonByIDSQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select person id=%d: %w", id, err)
	}
	return p, nil
}

// FindByLogin fetches a person by login. Returns (nil, nil) if not found.
func (r *PersonRepository) FindByLogin(ctx context.Context, login string) (*models.Person, error) {
	p, err := scanPerson(r.db.QueryRowContext(ctx, selectPersonByLoginSQL, login))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select person login=%q: %w", login, err)
	}
	return p, nil
}

// Save inserts a new person and returns the stored record with its assigned
// id. A login collision surfaces as a DuplicateLogin domain error.
func (r *PersonRepository) Save(ctx context.Context, p models.Person) (*models.Person, error) {
	res, err := r.db.ExecContext(ctx, insertPersonSQL, p.Login, p.Password, p.FirstName, p.LastName)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, models.Wrap(models.KindDuplicateLogin,
				fmt.Sprintf("login %q is already taken", p.Login), err)
		}
		return nil, fmt.Errorf("insert person %q: %w", p.Login, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("get last insert id for person %q: %w", p.Login, err)
	}
	p.ID = int(lastID)
	return &p, nil
}

// Update replaces every mutable column of the row with p's values.
// Returns false if no row with p.ID exists.
func (r *PersonRepository) Update(ctx context.Context, p models.Person) (bool, error) {
	res, err := r.db.ExecContext(ctx, updatePersonSQL, p.Login, p.Password, p.FirstName, p.LastName, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return false, models.Wrap(models.KindDuplicateLogin,
				fmt.Sprintf("login %q is already taken", p.Login), err)
		}
		return false, fmt.Errorf("update person id=%d: %w", p.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for person id=%d: %w", p.ID, err)
	}
	return affected > 0, nil
}

// Delete removes a person by id. Returns false if no such row existed.
func (r *PersonRepository) Delete(ctx context.Context, id int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deletePersonSQL, id)
	if err != nil {
		return false, fmt.Errorf("delete person id=%d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for delete id=%d: %w", id, err)
	}
	return affected > 0, nil
}
