// Package storetest opens the Postgres database named by DATABASE_URL for repository tests.
package storetest

import (
	"database/sql"
	"os"
	"testing"

	"rollcall/internal/store"
)

// DB migrates and opens DATABASE_URL, skipping the test when it is unset.
// Tables are shared between packages, so tests should use keys no other test writes.
func DB(t testing.TB) *sql.DB {
	t.Helper()
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}
	if err := store.Migrate(url); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db, err := store.NewDB(url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db.Client
}
