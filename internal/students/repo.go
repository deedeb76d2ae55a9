package students

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rollcall/internal/store"
)

// ErrDuplicateRollNumber is returned when a roll number is already registered.
var ErrDuplicateRollNumber = errors.New("duplicate roll number")

// Student is a roster entry keyed by roll number.
type Student struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RollNum   string    `json:"rollnum"`
	Branch    string    `json:"branch"`
	Year      string    `json:"year"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary is the listing projection of a student.
type Summary struct {
	Name    string `json:"name"`
	RollNum string `json:"rollnum"`
	Branch  string `json:"branch"`
	Year    string `json:"year"`
}

// Changes holds the fields an update may set; nil leaves the stored value.
type Changes struct {
	Name   *string
	Branch *string
	Year   *string
}

// Repository persists students in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new student.
func (r *Repository) Insert(ctx context.Context, st Student) (Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (id, name, rollnum, branch, year)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, st.ID, st.Name, st.RollNum, st.Branch, st.Year)
	if err := row.Scan(&st.CreatedAt, &st.UpdatedAt); err != nil {
		if store.IsUniqueViolation(err) {
			return Student{}, ErrDuplicateRollNumber
		}
		return Student{}, err
	}
	return st, nil
}

// Delete removes a student and reports whether one existed.
func (r *Repository) Delete(ctx context.Context, rollNum string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE rollnum = $1`, rollNum)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update applies changes and returns the updated student, or nil when absent.
func (r *Repository) Update(ctx context.Context, rollNum string, ch Changes) (*Student, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE students
		SET name = COALESCE($2, name),
			branch = COALESCE($3, branch),
			year = COALESCE($4, year),
			updated_at = NOW()
		WHERE rollnum = $1
		RETURNING id, name, rollnum, branch, year, created_at, updated_at
	`, rollNum, ch.Name, ch.Branch, ch.Year)
	var st Student
	if err := row.Scan(&st.ID, &st.Name, &st.RollNum, &st.Branch, &st.Year, &st.CreatedAt, &st.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// List returns every student ordered by roll number.
func (r *Repository) List(ctx context.Context) ([]Summary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, rollnum, branch, year FROM students ORDER BY rollnum`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.Name, &s.RollNum, &s.Branch, &s.Year); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
