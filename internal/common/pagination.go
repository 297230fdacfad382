package common

// Pagination over collections that grow and shrink under concurrent writes.
// The count and the page fetch are two separate queries, so the requested
// page can be past the end by the time the count lands; Paginate clamps to
// the last page and fetches once more instead of serving an empty page.

// DefaultPerPage replaces any per-page value outside AllowedPerPage
const DefaultPerPage = 15

// AllowedPerPage is the fixed set of accepted page sizes
var AllowedPerPage = map[int]bool{10: true, 15: true, 20: true, 50: true}

// PageRequest carries raw, possibly out-of-range pagination parameters
type PageRequest struct {
	Page    int
	PerPage int
}

// Normalize clamps the page to >= 1 and silently replaces a per-page value
// outside the allowed set with the default. Invalid sizes are not an error.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 1 {
		r.Page = 1
	}
	if !AllowedPerPage[r.PerPage] {
		r.PerPage = DefaultPerPage
	}
	return r
}

// PageResult is one served page plus collection totals
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Meta converts the result into response metadata
func (r *PageResult[T]) Meta() *Meta {
	return &Meta{Page: r.Page, PerPage: r.PerPage, Total: r.Total, TotalPages: r.TotalPages}
}

// TotalPages computes ceil(total/perPage) with a floor of one page, so an
// empty collection still reports page 1 of 1.
func TotalPages(total int64, perPage int) int {
	pages := int((total + int64(perPage) - 1) / int64(perPage))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Paginate normalizes the request, runs the count/fetch pair, and re-fetches
// with the last page when the requested page is out of range after counting.
func Paginate[T any](req PageRequest, count func() (int64, error), fetch func(page, perPage int) ([]T, error)) (*PageResult[T], error) {
	req = req.Normalize()

	total, err := count()
	if err != nil {
		return nil, err
	}
	items, err := fetch(req.Page, req.PerPage)
	if err != nil {
		return nil, err
	}

	totalPages := TotalPages(total, req.PerPage)
	page := req.Page
	if page > totalPages {
		page = totalPages
		items, err = fetch(page, req.PerPage)
		if err != nil {
			return nil, err
		}
	}

	return &PageResult[T]{
		Items:      items,
		Page:       page,
		PerPage:    req.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// EmptyPage is the zero-result page for a normalized request, used when a
// query is rejected without touching the store (e.g. too-short search terms).
func EmptyPage[T any](req PageRequest) *PageResult[T] {
	req = req.Normalize()
	return &PageResult[T]{
		Items:      []T{},
		Page:       1,
		PerPage:    req.PerPage,
		Total:      0,
		TotalPages: 1,
	}
}
