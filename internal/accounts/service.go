package accounts

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rollcall/internal/apperror"
	"rollcall/internal/auth"
	"rollcall/internal/metrics"
)

// Store is the persistence the directory needs.
type Store interface {
	Create(ctx context.Context, acc Account) (Account, error)
	CreateIfAbsent(ctx context.Context, acc Account) (bool, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(id, username string) (string, time.Time, error)
}

const invalidCredentials = "Invalid username or password."

// Service implements signup, login and bootstrap over a Store.
type Service struct {
	store  Store
	hasher *auth.Hasher
	tokens TokenIssuer
}

// NewService creates a directory service.
func NewService(store Store, hasher *auth.Hasher, tokens TokenIssuer) *Service {
	return &Service{store: store, hasher: hasher, tokens: tokens}
}

// Signup registers a username. Usernames match exactly, case included.
func (s *Service) Signup(ctx context.Context, username, password string) (Account, error) {
	if username == "" || password == "" {
		return Account{}, apperror.NewValidation("Username and password are required.")
	}
	acc, err := s.newAccount(username, password)
	if err != nil {
		return Account{}, err
	}
	created, err := s.store.Create(ctx, acc)
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return Account{}, apperror.New(apperror.Validation, "Username already exists.", nil)
		}
		return Account{}, fmt.Errorf("create account: %w", err)
	}
	return created, nil
}

// Login verifies credentials and returns a signed token. Unknown usernames and wrong
// passwords produce the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	acc, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("find account: %w", err)
	}
	if acc == nil || !s.hasher.Verify(password, acc.PasswordHash) {
		metrics.Logins.WithLabelValues("rejected").Inc()
		return "", apperror.NewValidation(invalidCredentials)
	}
	token, _, err := s.tokens.Issue(acc.ID, acc.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	metrics.Logins.WithLabelValues("ok").Inc()
	return token, nil
}

// Bootstrap provisions the well-known account once. Repeated calls are no-ops.
func (s *Service) Bootstrap(ctx context.Context, username, password string) (bool, error) {
	if username == "" || password == "" {
		log.Println("bootstrap account not configured, skipping")
		return false, nil
	}
	existing, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return false, fmt.Errorf("find bootstrap account: %w", err)
	}
	if existing != nil {
		log.Printf("bootstrap account %q already exists", username)
		return false, nil
	}
	acc, err := s.newAccount(username, password)
	if err != nil {
		return false, err
	}
	created, err := s.store.CreateIfAbsent(ctx, acc)
	if err != nil {
		return false, fmt.Errorf("create bootstrap account: %w", err)
	}
	if created {
		log.Printf("bootstrap account %q created", username)
	}
	return created, nil
}

func (s *Service) newAccount(username, password string) (Account, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return Account{}, apperror.NewValidation("Password must be at most 72 bytes.")
		}
		return Account{}, fmt.Errorf("hash password: %w", err)
	}
	return Account{ID: uuid.NewString(), Username: username, PasswordHash: hash}, nil
}
