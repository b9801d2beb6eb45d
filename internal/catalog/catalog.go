package catalog

import (
	"fmt"
)

// Date is a publication date as reported by the catalog.
type Date struct {
	Month int
	Day   int
	Year  int
}

// UnknownDate stands in for a missing publication date.
var UnknownDate = Date{Month: 1, Day: 1, Year: 1000}

// String formats the date as month/day/year without zero padding.
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Month, d.Day, d.Year)
}

// Record is a raw catalog lookup result. A nil field was absent in the
// response, which is different from an empty value.
type Record struct {
	Title           *string
	AverageRating   *string
	RatingsCount    *string
	NumPages        *string
	PublicationDate *Date
	Publisher       *string
	ISBN            *string
}

// Attributes is the resolved set of enrichment values for one book. Every
// field is always populated, either from the catalog or with its default.
type Attributes struct {
	Title           string
	AverageRating   string
	RatingsCount    string
	NumberPages     string
	PublicationDate string
	Publisher       string
	ISBN            string
}

const (
	defaultTitle         = ""
	defaultAverageRating = "0.0"
	defaultRatingsCount  = "0"
	defaultNumberPages   = "0"
	defaultPublisher     = ""
	defaultISBN          = ""
)

// DefaultAttributes returns the values used for books without a catalog link.
func DefaultAttributes() Attributes {
	return Resolve(Record{})
}

// Resolve maps a raw record onto Attributes, substituting the default for
// each absent field. Present values are kept verbatim.
func Resolve(r Record) Attributes {
	return Attributes{
		Title:           orDefault(r.Title, defaultTitle),
		AverageRating:   orDefault(r.AverageRating, defaultAverageRating),
		RatingsCount:    orDefault(r.RatingsCount, defaultRatingsCount),
		NumberPages:     orDefault(r.NumPages, defaultNumberPages),
		PublicationDate: orDefault(r.PublicationDate, UnknownDate).String(),
		Publisher:       orDefault(r.Publisher, defaultPublisher),
		ISBN:            orDefault(r.ISBN, defaultISBN),
	}
}

func orDefault[T any](v *T, def T) T {
	if v == nil {
		return def
	}
	return *v
}

// Map returns the attributes keyed by field name.
func (a Attributes) Map() map[string]string {
	m := make(map[string]string, len(allFields))
	for _, f := range allFields {
		m[f.Name] = f.value(a)
	}
	return m
}
