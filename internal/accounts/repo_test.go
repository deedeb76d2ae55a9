package accounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"rollcall/internal/store/storetest"
)

func TestRepositoryCreateIfAbsentWritesOnce(t *testing.T) {
	db := storetest.DB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	username := "admin-" + uuid.NewString()
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM accounts WHERE username = $1`, username) })

	created, err := repo.CreateIfAbsent(ctx, Account{ID: uuid.NewString(), Username: username, PasswordHash: "h1"})
	if err != nil || !created {
		t.Fatalf("first create = %v, %v", created, err)
	}
	created, err = repo.CreateIfAbsent(ctx, Account{ID: uuid.NewString(), Username: username, PasswordHash: "h2"})
	if err != nil || created {
		t.Fatalf("second create = %v, %v", created, err)
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM accounts WHERE username = $1`, username).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
	acc, err := repo.FindByUsername(ctx, username)
	if err != nil || acc == nil {
		t.Fatalf("find: %+v, %v", acc, err)
	}
	if acc.PasswordHash != "h1" {
		t.Fatalf("hash = %q, the second bootstrap overwrote the first", acc.PasswordHash)
	}
}

func TestRepositoryCreateRejectsDuplicate(t *testing.T) {
	db := storetest.DB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	username := "user-" + uuid.NewString()
	t.Cleanup(func() { _, _ = db.Exec(`DELETE FROM accounts WHERE username = $1`, username) })

	if _, err := repo.Create(ctx, Account{ID: uuid.NewString(), Username: username, PasswordHash: "h"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, Account{ID: uuid.NewString(), Username: username, PasswordHash: "h"}); !errors.Is(err, ErrDuplicateUsername) {
		t.Fatalf("duplicate err = %v", err)
	}
	if acc, err := repo.FindByUsername(ctx, "missing-"+username); err != nil || acc != nil {
		t.Fatalf("missing find = %+v, %v", acc, err)
	}
}
