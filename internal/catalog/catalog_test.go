package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	t.Run("all fields absent", func(t *testing.T) {
		got := Resolve(Record{})
		assert.Equal(t, Attributes{
			Title:           "",
			AverageRating:   "0.0",
			RatingsCount:    "0",
			NumberPages:     "0",
			PublicationDate: "1/1/1000",
			Publisher:       "",
			ISBN:            "",
		}, got)
		assert.Equal(t, DefaultAttributes(), got)
	})

	t.Run("all fields present", func(t *testing.T) {
		got := Resolve(Record{
			Title:           ptr("Dune"),
			AverageRating:   ptr("4.25"),
			RatingsCount:    ptr("500000"),
			NumPages:        ptr("412"),
			PublicationDate: &Date{Month: 1, Day: 1, Year: 1965},
			Publisher:       ptr("Ace"),
			ISBN:            ptr("0441013597"),
		})
		assert.Equal(t, Attributes{
			Title:           "Dune",
			AverageRating:   "4.25",
			RatingsCount:    "500000",
			NumberPages:     "412",
			PublicationDate: "1/1/1965",
			Publisher:       "Ace",
			ISBN:            "0441013597",
		}, got)
	})

	t.Run("present values kept verbatim", func(t *testing.T) {
		got := Resolve(Record{AverageRating: ptr("n/a"), RatingsCount: ptr("")})
		assert.Equal(t, "n/a", got.AverageRating)
		assert.Equal(t, "", got.RatingsCount)
		assert.Equal(t, "0", got.NumberPages)
	})
}

func TestDate_String(t *testing.T) {
	assert.Equal(t, "12/25/2003", Date{Month: 12, Day: 25, Year: 2003}.String())
	assert.Equal(t, "3/7/99", Date{Month: 3, Day: 7, Year: 99}.String())
	assert.Equal(t, "1/1/1000", UnknownDate.String())
}

func TestAttributes_Map(t *testing.T) {
	m := DefaultAttributes().Map()
	assert.Equal(t, map[string]string{
		"title":            "",
		"average rating":   "0.0",
		"ratings count":    "0",
		"number pages":     "0",
		"publication date": "1/1/1000",
		"publisher":        "",
		"isbn":             "",
	}, m)
}

func TestFieldSet(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		fields, err := FieldSet(FieldSetFull)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"Book Title", "Average Rating", "Ratings Count", "Number Pages",
			"Publication Date", "Publisher", "ISBN",
		}, Headings(fields))
	})

	t.Run("ratings", func(t *testing.T) {
		fields, err := FieldSet(FieldSetRatings)
		require.NoError(t, err)
		assert.Equal(t, []string{"Average Rating", "Ratings Count"}, Headings(fields))

		a := Attributes{AverageRating: "3.9", RatingsCount: "12"}
		assert.Equal(t, []string{"3.9", "12"}, a.Cells(fields))
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := FieldSet("partial")
		assert.Error(t, err)
	})

	t.Run("full set is a copy", func(t *testing.T) {
		fields, err := FieldSet(FieldSetFull)
		require.NoError(t, err)
		fields[0] = FieldISBN

		again, err := FieldSet(FieldSetFull)
		require.NoError(t, err)
		assert.Equal(t, "Book Title", again[0].Heading)
	})
}
