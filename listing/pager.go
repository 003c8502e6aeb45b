// Package listing provides the one paginated-list utility every list
// screen shares, replacing the per-screen copies of the same slicing
// logic.
package listing

import "fmt"

const DefaultPageSize = 10

// Page is one window into a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Pager slices the result of a fetch function into fixed-size pages.
// It holds no state between calls; the fetch runs once per Load.
type Pager[T any] struct {
	fetch    func() ([]T, error)
	pageSize int
}

// NewPager creates a pager over fetch. pageSize falls back to
// DefaultPageSize when non-positive.
func NewPager[T any](fetch func() ([]T, error), pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager[T]{fetch: fetch, pageSize: pageSize}
}

// Load fetches the full listing, applies the optional filter, and returns
// the requested page. Page numbers are 1-based; a page past the end comes
// back empty rather than erroring, so a screen that deletes the last item
// of the last page stays renderable.
func (p *Pager[T]) Load(page int, filter func(T) bool) (Page[T], error) {
	items, err := p.fetch()
	if err != nil {
		return Page[T]{}, fmt.Errorf("[Pager Load] fetch: %w", err)
	}

	if filter != nil {
		filtered := make([]T, 0, len(items))
		for _, item := range items {
			if filter(item) {
				filtered = append(filtered, item)
			}
		}
		items = filtered
	}

	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + p.pageSize - 1) / p.pageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * p.pageSize
	if start > total {
		start = total
	}
	end := start + p.pageSize
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      items[start:end],
		Page:       page,
		PageSize:   p.pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}
