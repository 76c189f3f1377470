package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sternrassler/artic-client/pkg/artwork"
)

// StubFetcher serves a fixed, generated catalogue of artworks page by page.
// Record IDs are FirstID, FirstID+1, ... in page-then-arrival order.
type StubFetcher struct {
	Total    int
	PageSize int
	FirstID  int

	// Errors makes FetchPage fail for the given page numbers.
	Errors map[int]error

	// OnFetch, if set, runs before each page is served.
	OnFetch func(page int)

	mu    sync.Mutex
	calls []int
}

// NewStubFetcher creates a stub with total records split into pages of pageSize.
func NewStubFetcher(total, pageSize int) *StubFetcher {
	return &StubFetcher{
		Total:    total,
		PageSize: pageSize,
		FirstID:  1000,
		Errors:   make(map[int]error),
	}
}

// FetchPage implements pagination.PageFetcher.
func (s *StubFetcher) FetchPage(ctx context.Context, page int) (*artwork.Page, error) {
	s.mu.Lock()
	s.calls = append(s.calls, page)
	s.mu.Unlock()

	if s.OnFetch != nil {
		s.OnFetch(page)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := s.Errors[page]; ok {
		return nil, err
	}

	return &artwork.Page{
		Number:     page,
		Records:    s.Records(page),
		Total:      s.Total,
		TotalPages: s.TotalPages(),
		Limit:      s.PageSize,
	}, nil
}

// Records returns the records the stub serves for page.
func (s *StubFetcher) Records(page int) []artwork.Artwork {
	start := (page - 1) * s.PageSize
	end := start + s.PageSize
	if end > s.Total {
		end = s.Total
	}

	var records []artwork.Artwork
	for i := start; i < end; i++ {
		records = append(records, Artwork(s.FirstID+i))
	}
	return records
}

// TotalPages returns the number of pages the stub reports.
func (s *StubFetcher) TotalPages() int {
	if s.PageSize <= 0 {
		return 0
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

// Calls returns the page numbers requested so far, in order.
func (s *StubFetcher) Calls() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.calls...)
}

// Artwork builds a deterministic artwork for id.
func Artwork(id int) artwork.Artwork {
	return artwork.Artwork{
		ID:            id,
		Title:         fmt.Sprintf("Artwork %d", id),
		PlaceOfOrigin: "Chicago",
		ArtistDisplay: fmt.Sprintf("Artist %d", id%7),
		DateStart:     1800 + id%200,
		DateEnd:       1801 + id%200,
	}
}
