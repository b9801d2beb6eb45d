package catalog

import (
	"fmt"
)

// Field is one enrichment column: its key, the heading written to the
// output table, and how to read it from Attributes.
type Field struct {
	Name    string
	Heading string
	value   func(Attributes) string
}

var (
	FieldTitle           = Field{"title", "Book Title", func(a Attributes) string { return a.Title }}
	FieldAverageRating   = Field{"average rating", "Average Rating", func(a Attributes) string { return a.AverageRating }}
	FieldRatingsCount    = Field{"ratings count", "Ratings Count", func(a Attributes) string { return a.RatingsCount }}
	FieldNumberPages     = Field{"number pages", "Number Pages", func(a Attributes) string { return a.NumberPages }}
	FieldPublicationDate = Field{"publication date", "Publication Date", func(a Attributes) string { return a.PublicationDate }}
	FieldPublisher       = Field{"publisher", "Publisher", func(a Attributes) string { return a.Publisher }}
	FieldISBN            = Field{"isbn", "ISBN", func(a Attributes) string { return a.ISBN }}
)

var allFields = []Field{
	FieldTitle,
	FieldAverageRating,
	FieldRatingsCount,
	FieldNumberPages,
	FieldPublicationDate,
	FieldPublisher,
	FieldISBN,
}

// Field set names accepted by FieldSet.
const (
	FieldSetFull    = "full"
	FieldSetRatings = "ratings"
)

// FieldSet returns the enrichment columns for the named variant: "full"
// appends all seven fields, "ratings" only the average rating and count.
func FieldSet(name string) ([]Field, error) {
	switch name {
	case FieldSetFull:
		return append([]Field(nil), allFields...), nil
	case FieldSetRatings:
		return []Field{FieldAverageRating, FieldRatingsCount}, nil
	default:
		return nil, fmt.Errorf("unknown field set %q (want %q or %q)", name, FieldSetFull, FieldSetRatings)
	}
}

// Headings returns the output headings of fields in order.
func Headings(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Heading
	}
	return out
}

// Cells returns the values of fields from a in order.
func (a Attributes) Cells(fields []Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.value(a)
	}
	return out
}
