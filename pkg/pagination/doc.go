// Package pagination walks paginated artwork listings one page at a time.
//
// The artworks API does not promise a stable cursor under parallel access,
// and callers such as bulk selection need to know whether they are done
// before asking for the next page. The Walker therefore fetches strictly in
// order and waits for each page before requesting the following one.
//
// Example usage:
//
//	walker := pagination.NewWalker(apiClient, pagination.DefaultConfig())
//	err := walker.Walk(ctx, func(page *artwork.Page) bool {
//		for _, a := range page.Records {
//			fmt.Println(a.ID, a.Title)
//		}
//		return true // keep going
//	})
//
// The walker stops when:
//   - the callback returns false
//   - the source reports no further pages (or returns an empty page)
//   - Config.MaxPages pages have been fetched
//   - a fetch fails or the context is cancelled
package pagination
