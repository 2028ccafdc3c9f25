package db

import (
	"context"
	"database/sql"
	"fmt"

	"password_vault/internal/logger"
	"password_vault/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are applied to every new sqlite database handle.
var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA foreign_keys = ON;",
	"PRAGMA busy_timeout = 5000;",
}

// InitDB opens the configured database, checks connectivity and applies
// pending migrations.
func InitDB(ctx context.Context, dialect repository.Dialect, dsn string, log *logger.Logger) (*sql.DB, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	if dialect == repository.DialectSQLite {
		// sqlite pragmas are per connection; one connection keeps them in force.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		for _, p := range sqlitePragmas {
			if _, err := db.ExecContext(ctx, p); err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("apply %q: %w", p, err)
			}
		}
	}

	// Fail fast if the DB cannot be reached
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	if err := RunMigrations(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Infow("database ready", "driver", string(dialect))
	return db, nil
}
