// Package pagination implements the offset cursor shared by the feed,
// search, and list endpoints. It only produces deterministic pages when the
// underlying query carries a total order, so every caller pairs it with an
// ORDER BY that breaks created_at ties on id.
package pagination

// DefaultSize is the page size used by all list endpoints.
const DefaultSize = 10

// Page describes one slice of an ordered result set.
// Previous/Next are 1-based page numbers, nil at the boundaries.
type Page struct {
	Number   int   `json:"page"`
	Size     int   `json:"size"`
	Total    int64 `json:"total"`
	Previous *int  `json:"previous"`
	Next     *int  `json:"next"`
}

// Slice computes the zero-based offset of the requested 1-based page and
// its boundary markers. Out-of-range or non-positive page numbers clamp
// into [1, lastPage] rather than erroring, so "page 999" returns the last
// page and "page 0" the first.
func Slice(total int64, page, size int) (int, Page) {
	if size <= 0 {
		size = DefaultSize
	}

	lastPage := int((total + int64(size) - 1) / int64(size))
	if lastPage < 1 {
		lastPage = 1
	}

	if page < 1 {
		page = 1
	}
	if page > lastPage {
		page = lastPage
	}

	p := Page{
		Number: page,
		Size:   size,
		Total:  total,
	}
	if page > 1 {
		prev := page - 1
		p.Previous = &prev
	}
	if int64(page)*int64(size) < total {
		next := page + 1
		p.Next = &next
	}

	return (page - 1) * size, p
}
