package accounts

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rollcall/internal/store"
)

// ErrDuplicateUsername is returned when the username is already taken.
var ErrDuplicateUsername = errors.New("duplicate username")

// Account is a login identity.
type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Repository persists accounts in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account, failing with ErrDuplicateUsername on a taken username.
func (r *Repository) Create(ctx context.Context, acc Account) (Account, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, acc.ID, acc.Username, acc.PasswordHash)
	if err := row.Scan(&acc.CreatedAt); err != nil {
		if store.IsUniqueViolation(err) {
			return Account{}, ErrDuplicateUsername
		}
		return Account{}, err
	}
	return acc, nil
}

// CreateIfAbsent inserts acc unless the username exists. It reports whether a row was written.
func (r *Repository) CreateIfAbsent(ctx context.Context, acc Account) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, username, password_hash)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, acc.ID, acc.Username, acc.PasswordHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// FindByUsername returns the account or nil when absent.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, created_at
		FROM accounts WHERE username = $1
	`, username)
	var acc Account
	if err := row.Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &acc, nil
}
