package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	// LinkMarker flags a cell that carries a catalog link.
	LinkMarker = "[Goodreads]"
	// LinkText is the text of the catalog link.
	LinkText = "Goodreads"
	// BookURLPrefix precedes the book identifier in a catalog link.
	BookURLPrefix = "https://www.goodreads.com/book/show/"
)

// ErrExtraction is returned when a cell is marked as holding a catalog link
// but no identifier can be read from it.
var ErrExtraction = errors.New("catalog link extraction failed")

// ExtractID returns the catalog identifier embedded in cell. ok is false
// when the cell has no LinkMarker, in which case the row is not looked up.
func ExtractID(cell string) (id string, ok bool, err error) {
	if !strings.Contains(cell, LinkMarker) {
		return "", false, nil
	}

	dest, found := findLink(cell, LinkText)
	if !found {
		return "", false, fmt.Errorf("%w: no %s link in %q", ErrExtraction, LinkText, cell)
	}
	id, hasPrefix := strings.CutPrefix(dest, BookURLPrefix)
	if !hasPrefix {
		return "", false, fmt.Errorf("%w: link %q does not start with %s", ErrExtraction, dest, BookURLPrefix)
	}
	if id == "" {
		return "", false, fmt.Errorf("%w: link %q has no book id", ErrExtraction, dest)
	}
	return id, true, nil
}

// findLink parses cell as inline markdown and returns the destination of the
// first link whose text equals label.
func findLink(cell, label string) (string, bool) {
	src := []byte(cell)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var dest string
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok || linkLabel(link, src) != label {
			return ast.WalkContinue, nil
		}
		dest = string(link.Destination)
		found = true
		return ast.WalkStop, nil
	})
	return dest, found
}

func linkLabel(link *ast.Link, src []byte) string {
	var b strings.Builder
	for c := link.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			b.Write(t.Segment.Value(src))
		}
	}
	return b.String()
}
