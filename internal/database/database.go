package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	_ "modernc.org/sqlite"

	"docshare/internal/config"
)

var sqlOpen = sql.Open

// BuildSQLiteDSN constructs a DSN for the modernc SQLite driver.
// Example: file:app.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)
func BuildSQLiteDSN(c config.DatabaseConfig) (string, error) {
	if c.Path == "" {
		return "", fmt.Errorf("invalid database config: path is required")
	}

	dsn := "file:" + c.Path + "?_pragma=foreign_keys(1)"
	if c.BusyTimeoutMs > 0 {
		dsn += fmt.Sprintf("&_pragma=busy_timeout(%d)", c.BusyTimeoutMs)
	}

	return dsn, nil
}

// NewSQLite opens a database/sql connection using the modernc sqlite driver and applies pooling settings.
// The driver is wrapped with otelsql so queries produce spans.
func NewSQLite(c config.DatabaseConfig) (*sql.DB, error) {
	dsn, err := BuildSQLiteDSN(c)
	if err != nil {
		return nil, err
	}

	// Register the otelsql driver wrapper
	driverName, err := otelsql.Register("sqlite",
		otelsql.WithAttributes(semconv.DBSystemSqlite),
		otelsql.WithSQLCommenter(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register otelsql: %w", err)
	}

	db, err := sqlOpen(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	// Apply connection pool settings if provided.
	// SQLite is single-writer; the default config keeps one connection.
	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		db.SetMaxIdleConns(c.MaxIdleConns)
	}
	if c.ConnMaxLifetimeSec > 0 {
		db.SetConnMaxLifetime(time.Duration(c.ConnMaxLifetimeSec) * time.Second)
	}

	// Verify connectivity with a short timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return db, nil
}
