// Package client fetches pages from the Art Institute of Chicago artworks API,
// with optional Redis caching and a shared request budget.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/artic-client/pkg/artwork"
	"github.com/Sternrassler/artic-client/pkg/cache"
	"github.com/Sternrassler/artic-client/pkg/ratelimit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultBaseURL is the public API root.
const DefaultBaseURL = "https://api.artic.edu/api/v1"

// MaxPageSize is the largest limit the API accepts.
const MaxPageSize = 100

// Prometheus metrics for API requests.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_requests_total",
		Help: "Total artworks API requests by status",
	}, []string{"status"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "artic_request_duration_seconds",
		Help:    "Artworks API request duration in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
	})

	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "artic_errors_total",
		Help: "Total artworks API errors by class",
	}, []string{"class"})
)

// Client fetches artwork pages.
type Client struct {
	httpClient  *http.Client
	baseURL     *url.URL
	rateLimiter *ratelimit.Tracker
	cache       *cache.Manager
	config      Config
	logger      zerolog.Logger
}

// Config holds the client configuration.
type Config struct {
	// BaseURL of the API, without the /artworks suffix
	BaseURL string

	// User-Agent header; the API asks clients to identify themselves
	UserAgent string

	// PageSize is sent as the limit parameter (1..MaxPageSize)
	PageSize int

	// Fields restricts the response to these artwork fields (nil = all)
	Fields []string

	// Timeout per HTTP request
	Timeout time.Duration

	// Redis enables the page cache and request budget when non-nil
	Redis *redis.Client

	// RequestsPerMinute is the shared request budget (needs Redis)
	RequestsPerMinute int

	// CacheEnabled turns the Redis page cache on (needs Redis)
	CacheEnabled bool
}

// DefaultConfig returns a configuration for the public API without Redis.
func DefaultConfig(userAgent string) Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         userAgent,
		PageSize:          12,
		Fields:            artwork.Fields,
		Timeout:           30 * time.Second,
		RequestsPerMinute: ratelimit.DefaultRequestsPerMinute,
		CacheEnabled:      true,
	}
}

// New creates a new client.
func New(cfg Config) (*Client, error) {
	if cfg.UserAgent == "" {
		return nil, fmt.Errorf("user-agent is required")
	}

	if cfg.PageSize < 1 || cfg.PageSize > MaxPageSize {
		return nil, fmt.Errorf("page_size must be between 1 and %d (got %d)", MaxPageSize, cfg.PageSize)
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", cfg.BaseURL)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "artic-client").Logger()

	c := &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: base,
		config:  cfg,
		logger:  logger,
	}

	if cfg.Redis != nil {
		c.rateLimiter = ratelimit.NewTracker(cfg.Redis, cfg.RequestsPerMinute, logger)
		if cfg.CacheEnabled {
			c.cache = cache.NewManager(cfg.Redis)
		}
	}

	return c, nil
}

// FetchPage fetches one page of artworks. It implements pagination.PageFetcher.
func (c *Client) FetchPage(ctx context.Context, page int) (*artwork.Page, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w (got %d)", ErrInvalidPage, page)
	}

	key := cache.PageKey{Page: page, Limit: c.config.PageSize, Fields: c.config.Fields}

	// Step 1: fresh cache entry
	if c.cache != nil {
		entry, err := c.cache.Get(ctx, key)
		switch {
		case err == nil:
			c.logger.Debug().Int("page", page).Msg("Serving page from cache")
			return c.decode(entry.Data, page)
		case !errors.Is(err, cache.ErrCacheMiss):
			c.logger.Warn().Err(err).Int("page", page).Msg("Cache get error")
		}
	}

	// Step 2: request budget
	if c.rateLimiter != nil {
		allowed, err := c.rateLimiter.Allow(ctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("Rate limit check failed, sending request anyway")
		} else if !allowed {
			requestsTotal.WithLabelValues("rate_limited").Inc()
			return nil, ErrRateLimited
		}
	}

	// Step 3: request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.pageURL(page), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassNetwork,
			Message:    "read body",
			Err:        err,
		}
	}

	p, err := c.decode(body, page)
	if err != nil {
		return nil, err
	}

	// Step 4: cache the body once it is known to decode
	if c.cache != nil {
		entry := cache.NewEntry(resp.StatusCode, resp.Header, body)
		if err := c.cache.Set(ctx, key, entry); err != nil {
			c.logger.Warn().Err(err).Int("page", page).Msg("Failed to cache page")
		}
	}

	return p, nil
}

// Do sends req with the client headers and classifies the outcome.
// Any non-2xx response is returned as *APIError with the body closed.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	startTime := time.Now()
	defer func() {
		requestDuration.Observe(time.Since(startTime).Seconds())
	}()

	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("url", req.URL.String()).
		Msg("Executing artworks request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		errorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		requestsTotal.WithLabelValues("network_error").Inc()
		c.logger.Error().Err(err).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, &APIError{
			ErrorClass: ErrorClassNetwork,
			Message:    "request failed",
			Err:        err,
		}
	}

	requestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if class := classifyStatus(resp.StatusCode); class != "" {
		defer resp.Body.Close()
		errorsTotal.WithLabelValues(string(class)).Inc()

		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: class,
			Message:    errorMessage(resp),
		}
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("error_class", string(class)).
			Str("message", apiErr.Message).
			Msg("Artworks request error")
		return nil, apiErr
	}

	return resp, nil
}

// PageSize returns the configured page size.
func (c *Client) PageSize() int {
	return c.config.PageSize
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

// RateLimiter returns the request budget tracker, or nil without Redis.
func (c *Client) RateLimiter() *ratelimit.Tracker {
	return c.rateLimiter
}

func (c *Client) pageURL(page int) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/artworks"

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(c.config.PageSize))
	if len(c.config.Fields) > 0 {
		q.Set("fields", strings.Join(c.config.Fields, ","))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func (c *Client) decode(body []byte, page int) (*artwork.Page, error) {
	p, err := artwork.DecodePage(body, page)
	if err != nil {
		errorsTotal.WithLabelValues("decode").Inc()
		c.logger.Error().Err(err).Int("page", page).Msg("Failed to decode artworks page")
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return p, nil
}

// errorMessage extracts the API's error detail, falling back to the status.
func errorMessage(resp *http.Response) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err == nil && json.Unmarshal(data, &body) == nil {
		if body.Detail != "" {
			return body.Detail
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return resp.Status
}
