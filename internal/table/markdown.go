package table

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadMarkdown loads the markdown table stored at path.
func ReadMarkdown(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	defer f.Close()

	t, err := ParseMarkdown(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseMarkdown splits every non-empty trimmed line on Delimiter. The first
// line is the header, the second is the dash separator and is dropped.
func ParseMarkdown(r io.Reader) (*Table, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read: %w", ErrIO, err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: need a header and a separator line, got %d line(s)", ErrFormat, len(lines))
	}

	t := &Table{Header: strings.Split(lines[0], Delimiter)}
	for i, line := range lines[2:] {
		row := Row(strings.Split(line, Delimiter))
		if len(row) != t.Width() {
			// i+1 is the data row number as a reader counts them.
			return nil, fmt.Errorf("%w: row %d has %d cells, header has %d", ErrFormat, i+1, len(row), t.Width())
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// RenderMarkdown writes t as a markdown table to w.
func RenderMarkdown(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	writeLine := func(cells []string) {
		bw.WriteString(strings.Join(cells, Delimiter))
		bw.WriteByte('\n')
	}

	writeLine(t.Header)
	sep := make([]string, t.Width())
	for i := range sep {
		sep[i] = "---"
	}
	writeLine(sep)
	for _, row := range t.Rows {
		writeLine(row)
	}
	return bw.Flush()
}

// WriteMarkdown renders t and replaces the file at path with the result.
func WriteMarkdown(path string, t *Table) error {
	var buf bytes.Buffer
	if err := RenderMarkdown(&buf, t); err != nil {
		return fmt.Errorf("%w: render %s: %w", ErrIO, path, err)
	}
	return writeFile(path, buf.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrIO, path, err)
	}
	return nil
}
