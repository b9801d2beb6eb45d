package enrich

import (
	"strconv"

	"github.com/ZackKanter/a16z-library/internal/catalog"
	"github.com/ZackKanter/a16z-library/internal/platform/goodreads"
)

func toRecord(b *goodreads.Book) catalog.Record {
	return catalog.Record{
		Title:           optional(b.Title),
		AverageRating:   optional(b.AverageRating),
		RatingsCount:    optional(b.RatingsCount),
		NumPages:        optional(b.NumPages),
		PublicationDate: publicationDate(b),
		Publisher:       optional(b.Publisher),
		ISBN:            optional(b.ISBN),
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// publicationDate is present only when month, day and year all are.
func publicationDate(b *goodreads.Book) *catalog.Date {
	month, err := strconv.Atoi(b.PublicationMonth)
	if err != nil {
		return nil
	}
	day, err := strconv.Atoi(b.PublicationDay)
	if err != nil {
		return nil
	}
	year, err := strconv.Atoi(b.PublicationYear)
	if err != nil {
		return nil
	}
	return &catalog.Date{Month: month, Day: day, Year: year}
}
