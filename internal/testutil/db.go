package testutil

import (
	"database/sql"
	"os"
	"testing"

	"github.com/taskpad/taskpad/internal/config"
	"github.com/taskpad/taskpad/internal/db"
)

// OpenTestDB connects to the test postgres instance, applying the
// schema. Tests calling it are skipped when TEST_DB_HOST is unset so
// the unit suite stays runnable without infrastructure.
func OpenTestDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "taskpad",
		Password: "taskpad_pass",
		DBName:   "taskpad_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}
