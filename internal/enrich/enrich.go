package enrich

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZackKanter/a16z-library/internal/catalog"
	"github.com/ZackKanter/a16z-library/internal/table"
)

var (
	// ErrLookup is returned when the catalog lookup for a row fails.
	ErrLookup = errors.New("catalog lookup failed")
	// ErrParse is returned when a rating cell is not a number.
	ErrParse = errors.New("rating is not a number")
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Status      string // RUNNING, COMPLETED, FAILED
	InputPath   string
	FieldSet    string
	RowsRead    int
	LookupsMade int
	RowsWritten int
	Error       string
}

// Entry is one input row with its catalog link and resolved attributes.
type Entry struct {
	Cells      table.Row
	LinkCell   string
	Attributes catalog.Attributes
}

// newEntry fails with table.ErrFormat when row does not have exactly width
// cells. num is the 1-based data row number used in the error.
func newEntry(row table.Row, num, width, linkColumn int) (Entry, error) {
	if len(row) != width {
		return Entry{}, fmt.Errorf("%w: row %d has %d cells, header has %d", table.ErrFormat, num, len(row), width)
	}
	return Entry{
		Cells:      row,
		LinkCell:   row[linkColumn],
		Attributes: catalog.DefaultAttributes(),
	}, nil
}

// Row returns the input cells followed by the values of fields.
func (e Entry) Row(fields []catalog.Field) table.Row {
	out := make(table.Row, 0, len(e.Cells)+len(fields))
	out = append(out, e.Cells...)
	return append(out, e.Attributes.Cells(fields)...)
}
