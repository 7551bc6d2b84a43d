package service

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// clampPage normalizes skip/limit: negatives to zero, zero or missing limit
// to the default, oversized limit to the cap.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}
