package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ZackKanter/a16z-library/internal/config"
	"github.com/ZackKanter/a16z-library/internal/migrate"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the run history schema",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&cfg.MigrationsDir, "dir", cfg.MigrationsDir, "directory holding SQL migrations")
	root.PersistentFlags().StringVar(&cfg.DBDSN, "dsn", cfg.DBDSN, "Postgres connection string (default $DB_DSN)")

	// withDB opens the database for commands that need it.
	withDB := func(fn func(ctx context.Context, m *migrate.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			db, closeDB, err := migrate.Open(cmd.Context(), cfg.DBDSN)
			if err != nil {
				return err
			}
			defer closeDB()

			m, err := migrate.New(db, cfg.MigrationsDir, newLogger(cfg))
			if err != nil {
				return err
			}
			return fn(cmd.Context(), m)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, m *migrate.Migrator) error {
				return m.Up(ctx)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the latest migration",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, m *migrate.Migrator) error {
				return m.Down(ctx)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			Args:  cobra.NoArgs,
			RunE: withDB(func(ctx context.Context, m *migrate.Migrator) error {
				return m.Status(ctx)
			}),
		},
		&cobra.Command{
			Use:   "create NAME",
			Short: "Create an empty SQL migration",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				m, err := migrate.New(nil, cfg.MigrationsDir, newLogger(cfg))
				if err != nil {
					return err
				}
				return m.Create(args[0])
			},
		},
	)
	return root
}

func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
