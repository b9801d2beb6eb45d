package enrich

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ZackKanter/a16z-library/internal/table"
)

// SortByRating orders rows by the numeric value of column col, highest
// first, keeping the input order of equal ratings. Every rating is parsed
// before anything moves, so on error rows are left untouched.
func SortByRating(rows []table.Row, col int) error {
	type rated struct {
		rating float64
		row    table.Row
	}

	items := make([]rated, len(rows))
	for i, row := range rows {
		if col < 0 || col >= len(row) {
			return fmt.Errorf("%w: row %d has no column %d", ErrParse, i+1, col)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
		if err != nil {
			return fmt.Errorf("%w: row %d: %q", ErrParse, i+1, row[col])
		}
		items[i] = rated{rating: v, row: row}
	}

	slices.SortStableFunc(items, func(a, b rated) int {
		return cmp.Compare(b.rating, a.rating)
	})

	for i, it := range items {
		rows[i] = it.row
	}
	return nil
}
