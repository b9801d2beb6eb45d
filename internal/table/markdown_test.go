package table

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `Title | Author | Year | Link
--- | --- | --- | ---
Dune | Herbert | 1965 | [Goodreads](https://www.goodreads.com/book/show/234225)

Zero to One | Thiel | 2014 | -
`

func TestParseMarkdown(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		tbl, err := ParseMarkdown(strings.NewReader(sample))
		require.NoError(t, err)

		assert.Equal(t, []string{"Title", "Author", "Year", "Link"}, tbl.Header)
		require.Len(t, tbl.Rows, 2)
		assert.Equal(t, Row{"Dune", "Herbert", "1965", "[Goodreads](https://www.goodreads.com/book/show/234225)"}, tbl.Rows[0])
		assert.Equal(t, Row{"Zero to One", "Thiel", "2014", "-"}, tbl.Rows[1])
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		tbl, err := ParseMarkdown(strings.NewReader("  A | B  \n---|---\n  1 | 2 \t\n"))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, tbl.Header)
		assert.Equal(t, []Row{{"1", "2"}}, tbl.Rows)
	})

	t.Run("header only", func(t *testing.T) {
		tbl, err := ParseMarkdown(strings.NewReader("A | B\n--- | ---\n"))
		require.NoError(t, err)
		assert.Empty(t, tbl.Rows)
	})

	t.Run("too few lines", func(t *testing.T) {
		_, err := ParseMarkdown(strings.NewReader("A | B\n"))
		assert.True(t, errors.Is(err, ErrFormat))
	})

	t.Run("cell count mismatch", func(t *testing.T) {
		_, err := ParseMarkdown(strings.NewReader("A | B\n--- | ---\n1 | 2 | 3\n"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrFormat))
		assert.Contains(t, err.Error(), "row 1")
	})
}

func TestReadMarkdown(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadMarkdown(filepath.Join(t.TempDir(), "nope.md"))
		assert.True(t, errors.Is(err, ErrIO))
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("reads file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "books.md")
		require.NoError(t, os.WriteFile(p, []byte(sample), 0o644))

		tbl, err := ReadMarkdown(p)
		require.NoError(t, err)
		assert.Len(t, tbl.Rows, 2)
	})
}

func TestRenderMarkdown(t *testing.T) {
	tbl := &Table{
		Header: []string{"A", "B"},
		Rows:   []Row{{"1", "2"}, {"3", "4"}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderMarkdown(&buf, tbl))
	assert.Equal(t, "A | B\n--- | ---\n1 | 2\n3 | 4\n", buf.String())
}

func TestMarkdownRoundTrip(t *testing.T) {
	tbl, err := ParseMarkdown(strings.NewReader(sample))
	require.NoError(t, err)

	p := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, WriteMarkdown(p, tbl))

	again, err := ReadMarkdown(p)
	require.NoError(t, err)
	assert.Equal(t, tbl, again)
}

func TestWriteMarkdown_Overwrites(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, os.WriteFile(p, []byte(strings.Repeat("stale\n", 50)), 0o644))

	require.NoError(t, WriteMarkdown(p, &Table{Header: []string{"A"}}))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "A\n---\n", string(b))
}

func TestWriteMarkdown_UnwritablePath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing-dir", "out.md")
	err := WriteMarkdown(p, &Table{Header: []string{"A"}})
	assert.True(t, errors.Is(err, ErrIO))
}
