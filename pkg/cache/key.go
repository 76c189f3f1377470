package cache

import (
	"fmt"
	"strings"
)

// KeyPrefix namespaces every cache key in Redis.
const KeyPrefix = "artic:artworks"

// PageKey identifies one cached page of the artworks listing.
type PageKey struct {
	// Page is the 1-based page number
	Page int

	// Limit is the page size the page was requested with
	Limit int

	// Fields is the field projection; pages fetched with different
	// projections are cached separately
	Fields []string
}

// String generates a deterministic key.
// Format: artic:artworks:limit=12:page=3[:fields=id,title]
func (k PageKey) String() string {
	key := fmt.Sprintf("%s:limit=%d:page=%d", KeyPrefix, k.Limit, k.Page)
	if len(k.Fields) > 0 {
		key += ":fields=" + strings.Join(k.Fields, ",")
	}
	return key
}
