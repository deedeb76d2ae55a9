package attendance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes rec keyed by (rollnum, date) in one statement. An existing row only has its
// status replaced and its version bumped; name, branch and year stay as first written. It
// reports whether a new row was inserted and the row version after the write.
func (r *Repository) Upsert(ctx context.Context, rec Record) (bool, int64, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO attendance (id, rollnum, date, attendance, name, branch, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (rollnum, date) DO UPDATE SET
			attendance = EXCLUDED.attendance,
			version = attendance.version + 1,
			updated_at = NOW()
		RETURNING (xmax = 0), version
	`, uuid.NewString(), rec.RollNum, rec.Date, string(rec.Status), rec.Name, rec.Branch, rec.Year)
	var inserted bool
	var version int64
	if err := row.Scan(&inserted, &version); err != nil {
		return false, 0, err
	}
	return inserted, version, nil
}

// Get returns the stored record for (rollnum, date), or nil when there is none.
func (r *Repository) Get(ctx context.Context, rollNum, date string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT rollnum, date, attendance, name, branch, year, version
		FROM attendance WHERE rollnum = $1 AND date = $2
	`, rollNum, date)
	var rec Record
	var status string
	if err := row.Scan(&rec.RollNum, &rec.Date, &status, &rec.Name, &rec.Branch, &rec.Year, &rec.Version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	rec.Status = Status(status)
	return &rec, nil
}

// DailySummary counts statuses recorded for date.
func (r *Repository) DailySummary(ctx context.Context, date string) (Summary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT attendance, COUNT(*) FROM attendance
		WHERE date = $1
		GROUP BY attendance
	`, date)
	if err != nil {
		return Summary{}, err
	}
	defer rows.Close()

	sum := Summary{Date: date}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return Summary{}, err
		}
		switch Status(status) {
		case Present:
			sum.Present = n
		case Absent:
			sum.Absent = n
		}
	}
	return sum, rows.Err()
}
