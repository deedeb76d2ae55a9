package students

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"rollcall/internal/apperror"
)

// Store is the roster persistence.
type Store interface {
	Insert(ctx context.Context, st Student) (Student, error)
	Delete(ctx context.Context, rollNum string) (bool, error)
	Update(ctx context.Context, rollNum string, ch Changes) (*Student, error)
	List(ctx context.Context) ([]Summary, error)
}

// Service exposes roster CRUD keyed by roll number.
type Service struct {
	store Store
}

// NewService creates a roster service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a student; the roll number is required and must be unused.
func (s *Service) Create(ctx context.Context, name, rollNum, branch, year string) (Student, error) {
	if rollNum == "" {
		return Student{}, apperror.NewValidation("Roll number is required.")
	}
	st, err := s.store.Insert(ctx, Student{
		ID:      uuid.NewString(),
		Name:    name,
		RollNum: rollNum,
		Branch:  branch,
		Year:    year,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateRollNumber) {
			return Student{}, apperror.NewValidation("Roll number already exists.")
		}
		return Student{}, fmt.Errorf("insert student: %w", err)
	}
	return st, nil
}

// Delete removes the student with rollNum, or returns a NotFound error.
func (s *Service) Delete(ctx context.Context, rollNum string) error {
	found, err := s.store.Delete(ctx, rollNum)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if !found {
		return apperror.NewNotFound("Student not found.")
	}
	return nil
}

// Update changes the non-nil fields of a student. The roll number itself never changes.
func (s *Service) Update(ctx context.Context, rollNum string, ch Changes) (Student, error) {
	if rollNum == "" {
		return Student{}, apperror.NewValidation("Roll number is required.")
	}
	st, err := s.store.Update(ctx, rollNum, ch)
	if err != nil {
		return Student{}, fmt.Errorf("update student: %w", err)
	}
	if st == nil {
		return Student{}, apperror.NewNotFound("Student not found.")
	}
	return *st, nil
}

// List never returns nil so it encodes as an empty JSON array.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	if list == nil {
		list = []Summary{}
	}
	return list, nil
}
