// Package ratelimit enforces a per-minute request budget against the artworks
// API. The public API allows a limited number of anonymous requests per
// minute; a bulk selection over many pages can easily exceed that. Counters
// live in Redis so every client sharing the Redis instance shares the budget.
package ratelimit

import (
	"strconv"
	"time"
)

// RedisKeyPrefix namespaces the per-window counters.
const RedisKeyPrefix = "artic:ratelimit"

// DefaultRequestsPerMinute is the documented anonymous quota of the API.
const DefaultRequestsPerMinute = 60

// Window is the length of one budget window.
const Window = time.Minute

// BudgetState describes the current window.
type BudgetState struct {
	// Limit is the number of requests allowed per window.
	Limit int `json:"limit"`

	// Used is the number of requests counted in the current window.
	Used int `json:"used"`

	// ResetAt is when the current window ends.
	ResetAt time.Time `json:"reset_at"`
}

// Remaining returns how many requests are left in the window (never negative).
func (s *BudgetState) Remaining() int {
	if s.Used >= s.Limit {
		return 0
	}
	return s.Limit - s.Used
}

// Exhausted returns true if no requests are left in the window.
func (s *BudgetState) Exhausted() bool {
	return s.Remaining() == 0
}

// TimeUntilReset returns the duration until the window resets.
// Returns 0 if the reset time has already passed.
func (s *BudgetState) TimeUntilReset() time.Duration {
	duration := time.Until(s.ResetAt)
	if duration < 0 {
		return 0
	}
	return duration
}

// windowStart truncates t to the start of its window.
func windowStart(t time.Time) time.Time {
	return t.Truncate(Window)
}

// windowKey returns the Redis key counting requests of the window holding t.
func windowKey(t time.Time) string {
	return RedisKeyPrefix + ":" + strconv.FormatInt(windowStart(t).Unix(), 10)
}
