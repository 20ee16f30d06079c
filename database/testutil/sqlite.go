// Package testutil opens isolated in-memory sqlite databases for tests.
package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/biduedson/reservas-api/database"
	"github.com/biduedson/reservas-api/logger"
)

// Config returns a sqlite config for a private shared-cache memory database.
// Every connection in the pool sees the same data; other tests do not.
func Config() database.Config {
	return database.Config{
		Enabled:    true,
		Driver:     database.DriverSQLite,
		DSN:        fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		MaxRetries: 1,
		LogLevel:   "silent",
	}
}

// NewSQLite opens a fresh database, auto-migrates models, and closes it
// when the test ends.
func NewSQLite(t testing.TB, models ...interface{}) *database.DB {
	t.Helper()

	db, err := database.New(context.Background(), Config(), logger.NewNop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("auto-migrate: %v", err)
		}
	}
	return db
}
