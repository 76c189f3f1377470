// Package testutil provides testing utilities for the artworks client.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines a canned response for a single page.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockArtic is a configurable mock of the artworks API.
// By default it serves the catalogue of an embedded StubFetcher as JSON.
type MockArtic struct {
	server  *httptest.Server
	catalog *StubFetcher

	mu        sync.RWMutex
	overrides map[int]MockResponse

	// Tracking
	requestCount   int
	pagesRequested []int
	lastHeader     http.Header
	lastQuery      map[string]string
}

// NewMockArtic creates a mock API serving total records in pages of pageSize
// under /artworks.
func NewMockArtic(total, pageSize int) *MockArtic {
	mock := &MockArtic{
		catalog:   NewStubFetcher(total, pageSize),
		overrides: make(map[int]MockResponse),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/artworks", mock.handleArtworks)
	mock.server = httptest.NewServer(mux)

	return mock
}

// URL returns the mock base URL (use it as the client BaseURL).
func (m *MockArtic) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockArtic) Close() {
	m.server.Close()
}

// Catalog returns the stub backing the default responses.
func (m *MockArtic) Catalog() *StubFetcher {
	return m.catalog
}

// SetPageResponse overrides the response for one page number.
func (m *MockArtic) SetPageResponse(page int, resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[page] = resp
}

// Reset clears all tracking counters.
func (m *MockArtic) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount = 0
	m.pagesRequested = nil
	m.lastHeader = nil
	m.lastQuery = nil
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockArtic) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// PagesRequested returns the requested page numbers in arrival order.
func (m *MockArtic) PagesRequested() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]int(nil), m.pagesRequested...)
}

// LastQuery returns the query parameters of the most recent request.
func (m *MockArtic) LastQuery() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastQuery
}

// LastHeader returns the headers of the most recent request.
func (m *MockArtic) LastHeader() http.Header {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHeader
}

func (m *MockArtic) handleArtworks(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}

	query := make(map[string]string)
	for key := range r.URL.Query() {
		query[key] = r.URL.Query().Get(key)
	}

	m.mu.Lock()
	m.requestCount++
	m.pagesRequested = append(m.pagesRequested, page)
	m.lastHeader = r.Header.Clone()
	m.lastQuery = query
	override, hasOverride := m.overrides[page]
	m.mu.Unlock()

	if hasOverride {
		writeMockResponse(w, override)
		return
	}

	m.defaultHandler(w, page)
}

// defaultHandler renders the catalogue page the way the real API does.
func (m *MockArtic) defaultHandler(w http.ResponseWriter, page int) {
	records := m.catalog.Records(page)
	data := make([]map[string]any, 0, len(records))
	for _, a := range records {
		data = append(data, map[string]any{
			"id":              a.ID,
			"title":           a.Title,
			"place_of_origin": a.PlaceOfOrigin,
			"artist_display":  a.ArtistDisplay,
			"inscriptions":    nil,
			"date_start":      a.DateStart,
			"date_end":        a.DateEnd,
		})
	}

	body := map[string]any{
		"pagination": map[string]any{
			"total":        m.catalog.Total,
			"limit":        m.catalog.PageSize,
			"offset":       (page - 1) * m.catalog.PageSize,
			"total_pages":  m.catalog.TotalPages(),
			"current_page": page,
		},
		"data": data,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "max-age=300")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}

func writeMockResponse(w http.ResponseWriter, resp MockResponse) {
	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for key, value := range resp.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		w.Write([]byte(resp.Body))
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"status": 500, "error": "Internal server error"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewForbiddenResponse mimics the API's answer for pages beyond its window.
func NewForbiddenResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusForbidden,
		Body:       `{"status": 403, "error": "Invalid number of results", "detail": "page * limit must not exceed 10000"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewTooManyRequestsResponse creates a 429 response.
func NewTooManyRequestsResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"status": 429, "error": "Too many requests"}`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewMalformedResponse creates a 200 response whose body is not valid JSON.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"data": [`,
		Headers:    map[string]string{"Content-Type": "application/json"},
	}
}

// NewPageBody renders a minimal valid page body; handy for stale-response tests.
func NewPageBody(page, total, totalPages int, ids ...int) string {
	items := ""
	for i, id := range ids {
		if i > 0 {
			items += ","
		}
		items += fmt.Sprintf(`{"id": %d, "title": "Artwork %d"}`, id, id)
	}
	return fmt.Sprintf(`{"pagination": {"total": %d, "total_pages": %d, "current_page": %d}, "data": [%s]}`,
		total, totalPages, page, items)
}
