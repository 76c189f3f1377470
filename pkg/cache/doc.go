// Package cache stores artworks page responses in Redis.
//
// Entries live for as long as the upstream response says they are fresh
// (Expires or Cache-Control max-age, falling back to DefaultTTL). Expired
// entries are a miss; nothing here serves stale data when the API is down.
//
// # Basic Usage
//
//	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	manager := cache.NewManager(redisClient)
//
//	key := cache.PageKey{Page: 3, Limit: 12}
//	entry, err := manager.Get(ctx, key)
//	if errors.Is(err, cache.ErrCacheMiss) {
//		// fetch from the API, then:
//		entry = cache.NewEntry(resp.StatusCode, resp.Header, body)
//		_ = manager.Set(ctx, key, entry)
//	}
//
// # Metrics
//
//   - artic_cache_hits_total
//   - artic_cache_misses_total
//   - artic_cache_errors_total{operation}
package cache
