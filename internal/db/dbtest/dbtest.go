// Package dbtest opens isolated in-memory SQLite databases for tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"flightdesk/airline/internal/db"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"
)

var counter int64

// Open returns a migrated GORM handle and a sqlx handle on the same pool.
// Each call gets its own named shared-cache database.
func Open(t *testing.T) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:airline_test_%d?mode=memory&cache=shared", atomic.AddInt64(&counter, 1))

	gdb, err := db.OpenSQLite(dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	reader, err := db.WrapORM(gdb, "sqlite3")
	if err != nil {
		t.Fatalf("Failed to wrap test database: %v", err)
	}

	sqlDB, _ := gdb.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	return gdb, reader
}
