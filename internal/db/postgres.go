package db

import (
	"fmt"
	"time"

	"flightdesk/airline/internal/config"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"
)

// ConnectPostgres opens the read-side sqlx pool, retrying while the database
// comes up.
func ConnectPostgres(dsn string) (*sqlx.DB, error) {
	var (
		conn *sqlx.DB
		err  error
	)

	for i := 0; i < 10; i++ {
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return conn, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("failed to connect to postgres (sqlx): %w", err)
}

// WrapORM shares the GORM connection pool with sqlx. driverName only selects
// the placeholder style ("sqlite3" → '?', "postgres" → '$n').
func WrapORM(gdb *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	return sqlx.NewDb(sqlDB, driverName), nil
}

// InitReader returns the sqlx handle used by the query facade.
func InitReader(cfg *config.Config, gdb *gorm.DB) (*sqlx.DB, error) {
	if cfg.DBDriver == config.DriverSQLite {
		return WrapORM(gdb, "sqlite3")
	}
	return ConnectPostgres(cfg.PostgresDSN())
}
