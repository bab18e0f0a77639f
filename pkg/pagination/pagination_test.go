package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsValues(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 15, 31)

	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)
}

func TestNewPaginatedResultNeverNil(t *testing.T) {
	res := NewPaginatedResult[int](nil, NewPagination(1, 15, 0))
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestNewPagination_Boundaries(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		perPage int
		total   int64
		pages   int
		next    bool
	}{
		{"empty result", 1, 15, 0, 0, false},
		{"exactly one page", 1, 15, 15, 1, false},
		{"one row over", 1, 15, 16, 2, true},
		{"zero size uses default", 1, 0, 30, 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pag := NewPagination(tt.page, tt.perPage, tt.total)
			assert.Equal(t, tt.pages, pag.TotalPages)
			assert.Equal(t, tt.next, pag.HasNext)
			assert.False(t, pag.HasPrev)
		})
	}
}

func TestPaginate(t *testing.T) {
	params := &PaginationParams{Page: 3, PerPage: 10}
	res := Paginate([]string{"a"}, params, 21)

	assert.Equal(t, []string{"a"}, res.Items)
	assert.Equal(t, 3, res.Pagination.CurrentPage)
	assert.Equal(t, 3, res.Pagination.TotalPages)
	assert.False(t, res.Pagination.HasNext)
	assert.True(t, res.Pagination.HasPrev)
	assert.Equal(t, 20, params.Offset())
}
