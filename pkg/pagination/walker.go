package pagination

import (
	"context"
	"fmt"
	"time"

	"github.com/Sternrassler/artic-client/pkg/artwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds walker configuration
type Config struct {
	// Timeout per page fetch (0 disables the per-page deadline)
	Timeout time.Duration
	// MaxPages caps the number of pages a single walk may fetch (0 = unlimited)
	MaxPages int
}

// DefaultConfig returns the default walker configuration
func DefaultConfig() Config {
	return Config{
		Timeout:  15 * time.Second,
		MaxPages: 0,
	}
}

// PageFetcher fetches a single page of artworks.
// Implemented by client.Client and by test stubs.
type PageFetcher interface {
	// FetchPage fetches the 1-based page and returns its records and totals
	FetchPage(ctx context.Context, page int) (*artwork.Page, error)
}

// PageFunc is called once per fetched page. Returning false stops the walk.
type PageFunc func(page *artwork.Page) bool

// Walker fetches pages sequentially starting at page 1
type Walker struct {
	fetcher PageFetcher
	config  Config
	logger  zerolog.Logger
}

// NewWalker creates a new sequential walker
func NewWalker(fetcher PageFetcher, config Config) *Walker {
	if config.Timeout < 0 {
		config.Timeout = 0
	}
	if config.MaxPages < 0 {
		config.MaxPages = 0
	}

	return &Walker{
		fetcher: fetcher,
		config:  config,
		logger:  log.With().Str("component", "pagination").Logger(),
	}
}

// Walk fetches page 1, 2, ... and hands each page to fn.
// The context is checked before every request. On error the pages already
// delivered to fn stay delivered; the error reports where the walk stopped.
func (w *Walker) Walk(ctx context.Context, fn PageFunc) error {
	start := time.Now()
	fetched := 0

	for pageNum := 1; ; pageNum++ {
		if err := ctx.Err(); err != nil {
			w.logger.Debug().
				Int("page", pageNum).
				Int("pages_fetched", fetched).
				Msg("Walk stopping (context cancelled)")
			return err
		}

		if w.config.MaxPages > 0 && fetched >= w.config.MaxPages {
			w.logger.Warn().
				Int("max_pages", w.config.MaxPages).
				Msg("Walk stopped at page limit")
			return nil
		}

		page, err := w.fetch(ctx, pageNum)
		if err != nil {
			w.logger.Warn().
				Err(err).
				Int("page", pageNum).
				Int("pages_fetched", fetched).
				Msg("Page fetch failed")
			return fmt.Errorf("fetch page %d: %w", pageNum, err)
		}
		fetched++

		if !fn(page) {
			w.logger.Debug().
				Int("pages_fetched", fetched).
				Dur("duration", time.Since(start)).
				Msg("Walk complete (stopped by caller)")
			return nil
		}

		if page.IsLast() {
			w.logger.Debug().
				Int("pages_fetched", fetched).
				Int("total_pages", page.TotalPages).
				Dur("duration", time.Since(start)).
				Msg("Walk complete (no more pages)")
			return nil
		}
	}
}

func (w *Walker) fetch(ctx context.Context, pageNum int) (*artwork.Page, error) {
	if w.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.config.Timeout)
		defer cancel()
	}
	return w.fetcher.FetchPage(ctx, pageNum)
}
