package table

import (
	"errors"
)

// Delimiter separates cells on every line of a markdown table.
const Delimiter = " | "

var (
	// ErrIO is returned when a table file cannot be read or written.
	ErrIO = errors.New("table io")
	// ErrFormat is returned when the input is not a usable markdown table.
	ErrFormat = errors.New("malformed table")
)

// Row is one line of a table, split into cells.
type Row []string

// Table is a header plus its data rows in order.
type Table struct {
	Header []string
	Rows   []Row
}

// Width returns the number of header columns.
func (t *Table) Width() int {
	return len(t.Header)
}
