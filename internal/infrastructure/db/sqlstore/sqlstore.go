// Package sqlstore implements the decision store on top of database/sql through
// sqlx. PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite) are supported.
package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultTimeout = 10 * time.Second
)

// Config selects the driver and data source.
type Config struct {
	Driver string
	DSN    string
}

var schemas = map[string]string{
	DriverPostgres: `
CREATE TABLE IF NOT EXISTS decisiones (
	seq       BIGSERIAL PRIMARY KEY,
	id        TEXT NOT NULL UNIQUE,
	texto     TEXT NOT NULL,
	resultado TEXT NULL,
	exito     BOOLEAN NULL,
	tipo      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS decisiones_tipo_idx ON decisiones (tipo, seq);`,
	DriverSQLite: `
CREATE TABLE IF NOT EXISTS decisiones (
	seq       INTEGER PRIMARY KEY AUTOINCREMENT,
	id        TEXT NOT NULL UNIQUE,
	texto     TEXT NOT NULL,
	resultado TEXT NULL,
	exito     BOOLEAN NULL,
	tipo      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS decisiones_tipo_idx ON decisiones (tipo, seq);`,
}

// Open connects, pings and applies the schema.
func Open(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	schema, ok := schemas[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("sql: unsupported driver %q", cfg.Driver)
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// a single connection keeps ":memory:" databases shared
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sql ping: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sql migrate: %w", err)
	}
	return db, nil
}
