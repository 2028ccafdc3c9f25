package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"password_vault/internal/logger"
	"password_vault/internal/repository"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its dialect, filesystem and logger in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// gooseLogger routes goose output through the application logger.
type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Infof(format, v...) }
func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatalf(format, v...) }

func migrationDir(dialect repository.Dialect) (dir, gooseDialect string) {
	if dialect == repository.DialectPostgres {
		return "migrations/postgres", "postgres"
	}
	return "migrations/sqlite", "sqlite3"
}

// RunMigrations applies the embedded migrations for dialect.
func RunMigrations(ctx context.Context, db *sql.DB, dialect repository.Dialect, log *logger.Logger) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, gd := migrationDir(dialect)
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log.Named("migrations")})
	if err := goose.SetDialect(gd); err != nil {
		return fmt.Errorf("set goose dialect %s: %w", gd, err)
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
