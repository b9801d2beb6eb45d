package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// RenderCSV writes t as comma separated values with a leading index
// column. The index header cell is empty and rows are numbered from 0.
func RenderCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, t.Width()+1)
	header = append(header, "")
	header = append(header, t.Header...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, row := range t.Rows {
		record := make([]string, 0, len(row)+1)
		record = append(record, strconv.Itoa(i))
		record = append(record, row...)
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSV renders t and replaces the file at path with the result.
func WriteCSV(path string, t *Table) error {
	var buf bytes.Buffer
	if err := RenderCSV(&buf, t); err != nil {
		return fmt.Errorf("%w: render %s: %w", ErrIO, path, err)
	}
	return writeFile(path, buf.Bytes())
}
