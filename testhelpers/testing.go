// Package testhelpers sets up a real Postgres database for integration
// tests. Tests are skipped unless TEST_DATABASE_URL is set.
package testhelpers

import (
	"context"
	"os"
	"testing"

	"opsdash/pkg/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func()
}

// SetupTestDB connects to TEST_DATABASE_URL, applies migrations and empties
// every entity table.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if _, err := database.NewMigrator(pool).RunMigrations(ctx); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{Pool: pool, Cleanup: pool.Close}
	TruncateAll(t, db)
	return db
}

// TruncateAll removes every row and restarts the id sequences.
func TruncateAll(t *testing.T, db *TestDB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `
		TRUNCATE payments, calls, appointments, users;
		ALTER SEQUENCE users_seq RESTART;
		ALTER SEQUENCE appointments_seq RESTART;
		ALTER SEQUENCE payments_seq RESTART;
		ALTER SEQUENCE calls_seq RESTART;
	`)
	if err != nil {
		t.Fatalf("Failed to truncate test tables: %v", err)
	}
}

// SetupTestUser inserts a customer row and returns its id.
func SetupTestUser(t *testing.T, db *TestDB, id, email string) string {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `
		INSERT INTO users (id, seq, full_name, email)
		VALUES ($1, nextval('users_seq'), $2, $3)
	`, id, "Test User", email)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return id
}
