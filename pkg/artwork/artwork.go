// Package artwork defines the artwork record and page types returned by the
// Art Institute of Chicago artworks endpoint, plus decoding of its JSON.
package artwork

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Fields is the list of artwork fields requested from the API.
// Keeping the projection small avoids downloading the full record.
var Fields = []string{
	"id",
	"title",
	"place_of_origin",
	"artist_display",
	"inscriptions",
	"date_start",
	"date_end",
}

// ErrMissingPagination is returned when a response has no pagination block.
var ErrMissingPagination = errors.New("response has no pagination block")

// Artwork is one record of the artworks table. Identity is ID.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ArtistDisplay string `json:"artist_display"`
	Inscriptions  string `json:"inscriptions"`
	DateStart     int    `json:"date_start"`
	DateEnd       int    `json:"date_end"`
}

// Page is one page of artworks together with the pagination totals.
type Page struct {
	// Number is the 1-based page index.
	Number int

	// Records are the artworks on this page in arrival order.
	Records []Artwork

	// Total is the total number of records across all pages.
	Total int

	// TotalPages is the number of pages reported by the source.
	TotalPages int

	// Limit is the page size the source used.
	Limit int
}

// IsLast reports whether no further pages follow this one.
func (p *Page) IsLast() bool {
	return p.Number >= p.TotalPages || len(p.Records) == 0
}

// apiArtwork mirrors the API item. Most fields are nullable upstream.
type apiArtwork struct {
	ID            int     `json:"id"`
	Title         *string `json:"title"`
	PlaceOfOrigin *string `json:"place_of_origin"`
	ArtistDisplay *string `json:"artist_display"`
	Inscriptions  *string `json:"inscriptions"`
	DateStart     *int    `json:"date_start"`
	DateEnd       *int    `json:"date_end"`
}

type apiPagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	Offset      int `json:"offset"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

type apiResponse struct {
	Data       []apiArtwork   `json:"data"`
	Pagination *apiPagination `json:"pagination"`
}

// DecodePage parses an artworks list response body.
// page is the requested page number; it is used when the body omits
// current_page.
func DecodePage(body []byte, page int) (*Page, error) {
	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode artworks response: %w", err)
	}
	if resp.Pagination == nil {
		return nil, ErrMissingPagination
	}

	records := make([]Artwork, 0, len(resp.Data))
	for _, item := range resp.Data {
		records = append(records, item.toArtwork())
	}

	number := resp.Pagination.CurrentPage
	if number == 0 {
		number = page
	}

	return &Page{
		Number:     number,
		Records:    records,
		Total:      resp.Pagination.Total,
		TotalPages: resp.Pagination.TotalPages,
		Limit:      resp.Pagination.Limit,
	}, nil
}

func (a apiArtwork) toArtwork() Artwork {
	return Artwork{
		ID:            a.ID,
		Title:         deref(a.Title),
		PlaceOfOrigin: deref(a.PlaceOfOrigin),
		ArtistDisplay: deref(a.ArtistDisplay),
		Inscriptions:  deref(a.Inscriptions),
		DateStart:     deref(a.DateStart),
		DateEnd:       deref(a.DateEnd),
	}
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
