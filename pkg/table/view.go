// Package table holds the state of the artworks page currently on screen.
package table

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sternrassler/artic-client/pkg/artwork"
	"github.com/Sternrassler/artic-client/pkg/pagination"
	"github.com/Sternrassler/artic-client/pkg/selection"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPageSize matches the artworks API default limit.
const DefaultPageSize = 12

// ErrInvalidPage is returned for page numbers below 1.
var ErrInvalidPage = errors.New("page must be >= 1")

var (
	pageLoadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_page_loads_total",
		Help: "Total page view loads by outcome",
	}, []string{"outcome"})

	stalePagesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "artic_stale_pages_total",
		Help: "Page responses dropped because a newer navigation superseded them",
	})
)

// View is the page currently displayed: its number, rows and totals.
// Rows are replaced on every successful load.
type View struct {
	Page         int
	PageSize     int
	Rows         []artwork.Artwork
	TotalRecords int
	TotalPages   int
	Loading      bool

	// pending is the page of the most recent Begin; responses for any other
	// page are stale.
	pending int
	logger  zerolog.Logger
}

// NewView creates an empty view positioned on page 1.
func NewView(pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{
		Page:     1,
		PageSize: pageSize,
		logger:   log.With().Str("component", "table").Logger(),
	}
}

// Begin marks page as requested and sets the loading flag.
func (v *View) Begin(page int) error {
	if page < 1 {
		return fmt.Errorf("%w (got %d)", ErrInvalidPage, page)
	}
	v.pending = page
	v.Loading = true
	return nil
}

// Apply replaces rows and totals with p if p answers the pending request.
// It reports whether p was applied.
func (v *View) Apply(p *artwork.Page) bool {
	if p == nil || p.Number != v.pending {
		stalePagesTotal.Inc()
		v.logger.Debug().
			Int("pending", v.pending).
			Msg("Dropping stale page response")
		return false
	}

	v.Page = p.Number
	v.Rows = p.Records
	v.TotalRecords = p.Total
	v.TotalPages = p.TotalPages
	v.Loading = false
	pageLoadsTotal.WithLabelValues("ok").Inc()
	return true
}

// Fail records a failed load of page. Rows and totals are left unchanged.
func (v *View) Fail(page int, err error) {
	pageLoadsTotal.WithLabelValues("error").Inc()
	v.logger.Error().
		Err(err).
		Int("page", page).
		Msg("Error fetching artworks")

	if page == v.pending {
		v.Loading = false
	}
}

// Load fetches page synchronously through fetcher.
// On failure the previous rows stay in place and the error is returned.
func (v *View) Load(ctx context.Context, fetcher pagination.PageFetcher, page int) error {
	if err := v.Begin(page); err != nil {
		return err
	}

	p, err := fetcher.FetchPage(ctx, page)
	if err != nil {
		v.Fail(page, err)
		return err
	}

	// The fetcher may echo a different page number; the request is what counts.
	if p.Number != page {
		p.Number = page
	}
	v.Apply(p)
	return nil
}

// Selected returns the visible rows that are in the tracker's set.
func (v *View) Selected(t *selection.Tracker) []artwork.Artwork {
	return t.Visible(v.Rows)
}

// Offset returns the index of the first row of the page across all records.
func (v *View) Offset() int {
	return (v.Page - 1) * v.PageSize
}

// HasNext reports whether a page follows the current one.
func (v *View) HasNext() bool {
	return v.Page < v.TotalPages
}

// HasPrev reports whether a page precedes the current one.
func (v *View) HasPrev() bool {
	return v.Page > 1
}

// Target returns the page being loaded, or the current page when idle.
// Navigation is relative to it so that repeated key presses queue up.
func (v *View) Target() int {
	if v.Loading && v.pending > 0 {
		return v.pending
	}
	return v.Page
}

// Next returns the page after Target, clamped to the last page.
func (v *View) Next() int {
	return v.Clamp(v.Target() + 1)
}

// Prev returns the page before Target, clamped to page 1.
func (v *View) Prev() int {
	return v.Clamp(v.Target() - 1)
}

// Clamp limits page to [1, TotalPages]. With unknown totals only the lower
// bound applies.
func (v *View) Clamp(page int) int {
	if v.TotalPages > 0 && page > v.TotalPages {
		page = v.TotalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
