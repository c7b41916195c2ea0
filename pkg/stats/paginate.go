package stats

// Paginate slices a rank-ordered collection into the requested 1-based page.
// A page past the end of the collection is an empty slice, not an error;
// whether that means "not found" is the caller's call.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
