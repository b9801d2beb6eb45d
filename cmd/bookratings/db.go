package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZackKanter/a16z-library/internal/enrich"
)

// openRunRepository returns the Postgres run history when dsn is set and a
// no-op repository otherwise.
func openRunRepository(ctx context.Context, dsn string, logger *slog.Logger) (enrich.Repository, func(), error) {
	if dsn == "" {
		return enrich.NopRepository{}, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("cannot ping database (%s): %w", redactDSN(dsn), err)
	}
	logger.Info("database connection OK", "dsn", redactDSN(dsn))
	return enrich.NewPostgresRepo(pool), pool.Close, nil
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
