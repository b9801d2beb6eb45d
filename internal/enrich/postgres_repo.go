package enrich

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ZackKanter/a16z-library/internal/catalog"
)

type Repository interface {
	CreateRun(ctx context.Context, run *Run) error
	UpdateRun(ctx context.Context, run *Run) error
	RecordBook(ctx context.Context, runID string, bookID string, attrs catalog.Attributes) error
}

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) CreateRun(ctx context.Context, run *Run) error {
	const sql = `
		INSERT INTO rating_runs (id, started_at, status, input_path, field_set)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.Exec(ctx, sql, run.ID, run.StartedAt, run.Status, run.InputPath, run.FieldSet)
	return err
}

func (r *PostgresRepo) UpdateRun(ctx context.Context, run *Run) error {
	const sql = `
		UPDATE rating_runs SET
			finished_at = $1,
			status = $2,
			rows_read = $3,
			lookups_made = $4,
			rows_written = $5,
			error = $6
		WHERE id = $7`

	_, err := r.db.Exec(ctx, sql, run.FinishedAt, run.Status, run.RowsRead, run.LookupsMade, run.RowsWritten, run.Error, run.ID)
	return err
}

func (r *PostgresRepo) RecordBook(ctx context.Context, runID string, bookID string, a catalog.Attributes) error {
	const sql = `
		INSERT INTO rating_run_books (run_id, book_id, title, average_rating, ratings_count, number_pages, publication_date, publisher, isbn)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (run_id, book_id) DO NOTHING`

	_, err := r.db.Exec(ctx, sql, runID, bookID, a.Title, a.AverageRating, a.RatingsCount, a.NumberPages, a.PublicationDate, a.Publisher, a.ISBN)
	return err
}

// NopRepository discards run history. It is used when no database is
// configured.
type NopRepository struct{}

func (NopRepository) CreateRun(context.Context, *Run) error { return nil }

func (NopRepository) UpdateRun(context.Context, *Run) error { return nil }

func (NopRepository) RecordBook(context.Context, string, string, catalog.Attributes) error {
	return nil
}
