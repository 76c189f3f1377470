package cache

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultTTL is the fallback TTL when the response carries no freshness info
	DefaultTTL = 5 * time.Minute
)

// NewEntry builds an Entry from a response body and its headers.
func NewEntry(statusCode int, headers http.Header, body []byte) *Entry {
	now := time.Now()
	return &Entry{
		Data:       body,
		StatusCode: statusCode,
		Expires:    freshUntil(headers, now),
		CachedAt:   now,
	}
}

// freshUntil derives the expiry from Cache-Control and Expires.
// Cache-Control wins when both are present; no-store/no-cache yield now.
func freshUntil(headers http.Header, now time.Time) time.Time {
	if cc := headers.Get("Cache-Control"); cc != "" {
		for _, directive := range strings.Split(cc, ",") {
			directive = strings.TrimSpace(strings.ToLower(directive))
			switch {
			case directive == "no-store" || directive == "no-cache":
				return now
			case strings.HasPrefix(directive, "max-age="):
				seconds, err := strconv.Atoi(strings.TrimPrefix(directive, "max-age="))
				if err == nil {
					if seconds <= 0 {
						return now
					}
					return now.Add(time.Duration(seconds) * time.Second)
				}
			}
		}
	}

	expiresStr := headers.Get("Expires")
	if expiresStr == "" {
		return now.Add(DefaultTTL)
	}

	expires, err := http.ParseTime(expiresStr)
	if err != nil {
		return now.Add(DefaultTTL)
	}
	if expires.Before(now) {
		return now
	}
	return expires
}
