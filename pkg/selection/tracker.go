// Package selection tracks which artworks are selected across pages.
//
// The selection set maps artwork ID to the full record and does not depend on
// which page is on screen: selecting a row on page 1 and navigating to page 5
// leaves it selected. It changes only through ReconcileVisible (and Toggle,
// built on it), SelectAcrossPages and Clear.
//
// A Tracker is not safe for concurrent mutation. Callers that run bulk
// selection in the background should work on a Clone and swap it in.
package selection

import (
	"context"
	"sort"

	"github.com/Sternrassler/artic-client/pkg/artwork"
	"github.com/Sternrassler/artic-client/pkg/pagination"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	bulkSelectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_bulk_selections_total",
		Help: "Total bulk selection runs by outcome",
	}, []string{"outcome"})

	bulkPagesFetched = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "artic_bulk_selection_pages",
		Help:    "Pages fetched per bulk selection run",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
)

// Tracker holds the cross-page selection set.
type Tracker struct {
	selected map[int]artwork.Artwork
	walker   pagination.Config
	logger   zerolog.Logger
}

// NewTracker creates an empty tracker. walker configures the page walk used
// by SelectAcrossPages.
func NewTracker(walker pagination.Config) *Tracker {
	return &Tracker{
		selected: make(map[int]artwork.Artwork),
		walker:   walker,
		logger:   log.With().Str("component", "selection").Logger(),
	}
}

// ReconcileVisible applies the checkbox state of the visible page.
// Every row in selected is inserted or updated; every row in pageRows that is
// not in selected is removed. Records outside pageRows are left alone.
func (t *Tracker) ReconcileVisible(pageRows, selected []artwork.Artwork) {
	keep := make(map[int]struct{}, len(selected))
	for _, a := range selected {
		t.selected[a.ID] = a
		keep[a.ID] = struct{}{}
	}

	for _, a := range pageRows {
		if _, ok := keep[a.ID]; !ok {
			delete(t.selected, a.ID)
		}
	}
}

// Toggle flips the selection of row, which must be one of pageRows.
func (t *Tracker) Toggle(pageRows []artwork.Artwork, row artwork.Artwork) {
	visible := t.Visible(pageRows)

	next := make([]artwork.Artwork, 0, len(visible)+1)
	found := false
	for _, a := range visible {
		if a.ID == row.ID {
			found = true
			continue
		}
		next = append(next, a)
	}
	if !found {
		next = append(next, row)
	}

	t.ReconcileVisible(pageRows, next)
}

// SelectAcrossPages adds records from page 1 onwards, in page-then-arrival
// order, until the set holds target records or the source runs out of pages.
// Already selected records count towards target and are not re-added.
//
// Pages are fetched one at a time and ctx is checked before every request.
// On error the walk stops; records added before the failure stay selected.
// It returns the number of records added.
func (t *Tracker) SelectAcrossPages(ctx context.Context, fetcher pagination.PageFetcher, target int) (int, error) {
	if len(t.selected) >= target {
		bulkSelectionsTotal.WithLabelValues("noop").Inc()
		return 0, nil
	}

	added := 0
	pages := 0
	walker := pagination.NewWalker(fetcher, t.walker)

	err := walker.Walk(ctx, func(page *artwork.Page) bool {
		pages++
		for _, a := range page.Records {
			if len(t.selected) >= target {
				break
			}
			if _, ok := t.selected[a.ID]; !ok {
				t.selected[a.ID] = a
				added++
			}
		}
		return len(t.selected) < target
	})

	bulkPagesFetched.Observe(float64(pages))

	if err != nil {
		bulkSelectionsTotal.WithLabelValues("error").Inc()
		t.logger.Error().
			Err(err).
			Int("target", target).
			Int("added", added).
			Int("selected", len(t.selected)).
			Msg("Bulk selection aborted")
		return added, err
	}

	bulkSelectionsTotal.WithLabelValues("ok").Inc()
	t.logger.Info().
		Int("target", target).
		Int("added", added).
		Int("selected", len(t.selected)).
		Int("pages", pages).
		Msg("Bulk selection complete")

	return added, nil
}

// Visible returns the rows of pageRows that are selected, in row order.
func (t *Tracker) Visible(pageRows []artwork.Artwork) []artwork.Artwork {
	var visible []artwork.Artwork
	for _, a := range pageRows {
		if _, ok := t.selected[a.ID]; ok {
			visible = append(visible, a)
		}
	}
	return visible
}

// Has reports whether id is selected.
func (t *Tracker) Has(id int) bool {
	_, ok := t.selected[id]
	return ok
}

// Len returns the number of selected records.
func (t *Tracker) Len() int {
	return len(t.selected)
}

// Records returns the selected records ordered by ID.
func (t *Tracker) Records() []artwork.Artwork {
	records := make([]artwork.Artwork, 0, len(t.selected))
	for _, a := range t.selected {
		records = append(records, a)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}

// Clear removes every record from the set.
func (t *Tracker) Clear() {
	clear(t.selected)
}

// Clone returns an independent copy of the tracker.
func (t *Tracker) Clone() *Tracker {
	selected := make(map[int]artwork.Artwork, len(t.selected))
	for id, a := range t.selected {
		selected[id] = a
	}
	return &Tracker{
		selected: selected,
		walker:   t.walker,
		logger:   t.logger,
	}
}
