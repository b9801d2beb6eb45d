package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ZackKanter/a16z-library/internal/catalog"
	"github.com/ZackKanter/a16z-library/internal/platform/goodreads"
	"github.com/ZackKanter/a16z-library/internal/table"
)

type Config struct {
	InputPath   string
	MarkdownOut string
	CSVOut      string
	LinkColumn  int
	FieldSet    string
}

type GoodreadsClient interface {
	GetBook(ctx context.Context, id string) (*goodreads.Book, error)
}

type Service struct {
	client GoodreadsClient
	repo   Repository
	cfg    Config
	logger *slog.Logger
}

func NewService(client GoodreadsClient, repo Repository, cfg Config, logger *slog.Logger) *Service {
	if repo == nil {
		repo = NopRepository{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client: client,
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Run reads the input table, enriches and sorts it, and writes both output
// files. Nothing is written unless every row was enriched and sorted.
func (s *Service) Run(ctx context.Context) (err error) {
	run := &Run{
		ID:        uuid.NewString(),
		Status:    StatusRunning,
		InputPath: s.cfg.InputPath,
		FieldSet:  s.cfg.FieldSet,
		StartedAt: time.Now(),
	}
	if rErr := s.repo.CreateRun(ctx, run); rErr != nil {
		s.logger.Warn("failed to record run start", "run_id", run.ID, "error", rErr)
	}

	defer func() {
		now := time.Now()
		run.FinishedAt = &now
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
		}
		// The run is recorded even when ctx was cancelled.
		if updateErr := s.repo.UpdateRun(context.WithoutCancel(ctx), run); updateErr != nil {
			s.logger.Warn("failed to record run result", "run_id", run.ID, "error", updateErr)
		}
	}()

	in, err := table.ReadMarkdown(s.cfg.InputPath)
	if err != nil {
		return err
	}
	run.RowsRead = len(in.Rows)
	s.logger.Info("read books", "path", s.cfg.InputPath, "rows", run.RowsRead)

	out, err := s.enrich(ctx, in, run)
	if err != nil {
		return err
	}

	if err := table.WriteMarkdown(s.cfg.MarkdownOut, out); err != nil {
		return err
	}
	if err := table.WriteCSV(s.cfg.CSVOut, out); err != nil {
		return err
	}
	run.RowsWritten = len(out.Rows)

	s.logger.Info("wrote ratings",
		"markdown", s.cfg.MarkdownOut,
		"csv", s.cfg.CSVOut,
		"rows", run.RowsWritten,
		"lookups", run.LookupsMade,
	)
	return nil
}

// Enrich returns a new table holding every row of in extended with the
// configured catalog fields, sorted by average rating.
func (s *Service) Enrich(ctx context.Context, in *table.Table) (*table.Table, error) {
	return s.enrich(ctx, in, &Run{})
}

func (s *Service) enrich(ctx context.Context, in *table.Table, run *Run) (*table.Table, error) {
	fields, err := catalog.FieldSet(s.cfg.FieldSet)
	if err != nil {
		return nil, err
	}
	ratingCol := ratingColumn(in.Width(), fields)
	if ratingCol < 0 {
		return nil, fmt.Errorf("field set %q has no %s column", s.cfg.FieldSet, catalog.FieldAverageRating.Heading)
	}
	if s.cfg.LinkColumn < 0 || s.cfg.LinkColumn >= in.Width() {
		return nil, fmt.Errorf("%w: link column %d out of range for %d columns", table.ErrFormat, s.cfg.LinkColumn, in.Width())
	}

	out := &table.Table{
		Header: append(append([]string(nil), in.Header...), catalog.Headings(fields)...),
		Rows:   make([]table.Row, 0, len(in.Rows)),
	}

	for i, row := range in.Rows {
		s.logger.Info("processing row", "row", i+1)

		entry, err := newEntry(row, i+1, in.Width(), s.cfg.LinkColumn)
		if err != nil {
			return nil, err
		}
		id, ok, err := catalog.ExtractID(entry.LinkCell)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		if ok {
			entry.Attributes, err = s.lookup(ctx, run, id)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d (book %s): %w", ErrLookup, i+1, id, err)
			}
		}
		out.Rows = append(out.Rows, entry.Row(fields))
	}

	if err := SortByRating(out.Rows, ratingCol); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) lookup(ctx context.Context, run *Run, id string) (catalog.Attributes, error) {
	book, err := s.client.GetBook(ctx, id)
	if err != nil {
		return catalog.Attributes{}, err
	}
	run.LookupsMade++

	attrs := catalog.Resolve(toRecord(book))
	if run.ID != "" {
		if err := s.repo.RecordBook(ctx, run.ID, id, attrs); err != nil {
			s.logger.Warn("failed to record book", "run_id", run.ID, "book_id", id, "error", err)
		}
	}
	return attrs, nil
}

func ratingColumn(width int, fields []catalog.Field) int {
	for i, f := range fields {
		if f.Name == catalog.FieldAverageRating.Name {
			return width + i
		}
	}
	return -1
}
