package db

import (
	"context"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// sqlDriverName maps the configured driver to the database/sql driver name.
// modernc/sqlite registers itself as "sqlite" (CGO-free).
func sqlDriverName(driver string) (string, error) {
	switch driver {
	case "sqlite3":
		return "sqlite", nil
	case "mysql":
		return "mysql", nil
	case "postgres":
		return "postgres", nil
	default:
		return "", fmt.Errorf("unsupported DB driver %q: must be sqlite3, mysql, or postgres", driver)
	}
}

// New opens and pings a preset database for the given driver and DSN.
func New(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	name, err := sqlDriverName(driver)
	if err != nil {
		return nil, err
	}

	conn, err := sqlx.Open(name, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	if driver == "sqlite3" {
		if err := configureSQLite(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
	}
	return conn, nil
}

// configureSQLite switches the database to WAL so readers do not block the
// writer. Foreign keys stay off (the pragma is per connection), so the store
// deletes preset_tags rows itself.
func configureSQLite(ctx context.Context, conn *sqlx.DB) error {
	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("enable WAL: %w", err)
	}
	return nil
}
