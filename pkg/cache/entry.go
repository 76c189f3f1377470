package cache

import (
	"time"
)

// Entry is a cached page response body.
type Entry struct {
	// Data is the raw response body
	Data []byte `json:"data"`

	// StatusCode of the cached response (always 200 today)
	StatusCode int `json:"status_code"`

	// Expires is when the entry stops being fresh
	Expires time.Time `json:"expires"`

	// CachedAt is when the entry was stored
	CachedAt time.Time `json:"cached_at"`
}

// IsExpired returns true if the entry is no longer fresh.
func (e *Entry) IsExpired() bool {
	return !time.Now().Before(e.Expires)
}

// TTL returns the time until expiration, or 0 if already expired.
func (e *Entry) TTL() time.Duration {
	ttl := time.Until(e.Expires)
	if ttl < 0 {
		return 0
	}
	return ttl
}
