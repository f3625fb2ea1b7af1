package analytics

// Paginate returns the 1-based page slice [(page-1)*size, page*size),
// clamped to the input. A page past the end is empty, never an error.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// TotalPages is ceil(n/size); 0 for an empty input.
func TotalPages[T any](items []T, pageSize int) int {
	if pageSize < 1 || len(items) == 0 {
		return 0
	}
	return (len(items) + pageSize - 1) / pageSize
}
