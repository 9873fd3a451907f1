// Package testutil provides shared helpers for tests that need a real
// database.
package testutil

import (
	"context"
	"testing"

	"github.com/ledgersplit/ledgersplit/internal/storage"
)

// SetupTestDB creates a migrated in-memory SQLite database and registers
// cleanup with the test.
func SetupTestDB(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedUsers inserts test users and returns their ids in argument order.
func SeedUsers(t *testing.T, store *storage.SQLiteStorage, emails ...string) []int64 {
	t.Helper()

	ctx := context.Background()
	ids := make([]int64, 0, len(emails))
	for _, email := range emails {
		id, err := store.CreateUser(ctx, email, "")
		if err != nil {
			t.Fatalf("failed to seed user %q: %v", email, err)
		}
		ids = append(ids, id)
	}
	return ids
}
