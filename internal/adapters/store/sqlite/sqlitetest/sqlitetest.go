// Package sqlitetest provides SQLite fixtures for tests.
package sqlitetest

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jsamuelsen11/go-interactor/internal/adapters/store/sqlite"
)

// OpenDB opens an in-memory SQLite database with all migrations applied.
// The database is closed when the test finishes.
func OpenDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
