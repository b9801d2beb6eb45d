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
	"github.com/ZackKanter/a16z-library/internal/enrich"
	"github.com/ZackKanter/a16z-library/internal/platform/goodreads"
)

// execute runs the command and returns the process exit code.
func execute() int {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(cfg).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookratings KEY SECRET",
		Short: "Add Goodreads ratings to a markdown table of books",
		Long: `Reads a markdown table of books, looks up every row that links to
Goodreads, appends title, rating, ratings count, page count, publication
date, publisher and ISBN, sorts by average rating (highest first) and
writes the result as markdown and CSV.

KEY and SECRET are the Goodreads developer credentials. Book lookups
only send KEY; SECRET is accepted so existing invocations keep working.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfg.InputPath, "input", cfg.InputPath, "markdown table to read")
	f.StringVar(&cfg.MarkdownOut, "markdown-out", cfg.MarkdownOut, "markdown file to write")
	f.StringVar(&cfg.CSVOut, "csv-out", cfg.CSVOut, "CSV file to write")
	f.IntVar(&cfg.LinkColumn, "link-column", cfg.LinkColumn, "zero-based column holding the Goodreads link")
	f.StringVar(&cfg.FieldSet, "fields", cfg.FieldSet, `columns to append: "full" or "ratings"`)

	return cmd
}

func run(ctx context.Context, cfg *config.Config, key string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	repo, closeRepo, err := openRunRepository(ctx, cfg.DBDSN, logger)
	if err != nil {
		return err
	}
	defer closeRepo()

	client := goodreads.NewClient(key, goodreads.Options{
		BaseURL:    cfg.GoodreadsBaseURL,
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.RequestTimeout,
		RPS:        cfg.RequestsPerSecond,
		MaxRetries: cfg.MaxRetries,
	})

	svc := enrich.NewService(client, repo, enrich.Config{
		InputPath:   cfg.InputPath,
		MarkdownOut: cfg.MarkdownOut,
		CSVOut:      cfg.CSVOut,
		LinkColumn:  cfg.LinkColumn,
		FieldSet:    cfg.FieldSet,
	}, logger)
	return svc.Run(ctx)
}
