// Package pagination carries page requests from the query string down to
// the repositories and wraps list results with their page position.
package pagination

// Page sizes applied when a request asks for none or too many rows.
const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// PaginationParams is the page a list request asks for, bound from
// ?page=&per_page=.
type PaginationParams struct {
	Page    int `form:"page" json:"page"`
	PerPage int `form:"per_page" json:"per_page"`
}

// DefaultPagination is the first page at the default size.
func DefaultPagination() *PaginationParams {
	return &PaginationParams{Page: 1, PerPage: DefaultPerPage}
}

// Validate clamps Page to at least 1 and PerPage into [1, MaxPerPage].
// A missing or negative size falls back to DefaultPerPage.
func (p *PaginationParams) Validate() {
	p.Page = max(p.Page, 1)
	switch {
	case p.PerPage < 1:
		p.PerPage = DefaultPerPage
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset is the number of rows to skip for the requested page.
func (p *PaginationParams) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrev     bool  `json:"has_prev"`
}

func NewPagination(page, perPage int, total int64) *Pagination {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	size := int64(perPage)
	pages := int((total + size - 1) / size)

	return &Pagination{
		CurrentPage: page,
		PerPage:     perPage,
		Total:       total,
		TotalPages:  pages,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}

// PaginatedResult is one page of items plus its position.
type PaginatedResult[T any] struct {
	Items      []T         `json:"items"`
	Pagination *Pagination `json:"pagination"`
}

// NewPaginatedResult never returns nil Items so the JSON is always an array.
func NewPaginatedResult[T any](items []T, page *Pagination) *PaginatedResult[T] {
	if items == nil {
		items = make([]T, 0)
	}
	return &PaginatedResult[T]{Items: items, Pagination: page}
}

// Paginate wraps items fetched for params, out of total matching rows.
func Paginate[T any](items []T, params *PaginationParams, total int64) *PaginatedResult[T] {
	return NewPaginatedResult(items, NewPagination(params.Page, params.PerPage, total))
}
