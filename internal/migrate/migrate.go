// Package migrate applies the run history schema with goose.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// Open connects to Postgres and returns a database/sql handle for goose.
// The returned func closes both the handle and the pool.
func Open(ctx context.Context, dsn string) (*sql.DB, func(), error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("DB_DSN is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("cannot ping database: %w", err)
	}
	db := stdlib.OpenDBFromPool(pool)
	return db, func() {
		_ = db.Close()
		pool.Close()
	}, nil
}

type Migrator struct {
	db  *sql.DB
	dir string
}

// New returns a Migrator for the SQL files in dir. db may be nil when only
// Create is used.
func New(db *sql.DB, dir string, logger *slog.Logger) (*Migrator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{logger})
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	return &Migrator{db: db, dir: dir}, nil
}

func (m *Migrator) Up(ctx context.Context) error {
	if err := goose.UpContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (m *Migrator) Down(ctx context.Context) error {
	if err := goose.DownContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("roll back migration: %w", err)
	}
	return nil
}

func (m *Migrator) Status(ctx context.Context) error {
	if err := goose.StatusContext(ctx, m.db, m.dir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// Create writes a new, empty SQL migration named name into the directory.
func (m *Migrator) Create(name string) error {
	if name == "" {
		return fmt.Errorf("migration name is required")
	}
	if err := goose.Create(nil, m.dir, name, "sql"); err != nil {
		return fmt.Errorf("create migration %s: %w", name, err)
	}
	return nil
}

// gooseLogger routes goose output through slog.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
