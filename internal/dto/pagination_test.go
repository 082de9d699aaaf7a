package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationParams_Normalize(t *testing.T) {
	var p PaginationParams
	p.Normalize()
	assert.Equal(t, 1, p.PageNumber)
	assert.Equal(t, DefaultPageSize, p.PageSize)

	p = PaginationParams{PageNumber: 3, PageSize: 50}
	p.Normalize()
	assert.Equal(t, 3, p.PageNumber)
	assert.Equal(t, 50, p.PageSize)
}

func TestPaginationParams_OffsetAndLimit(t *testing.T) {
	p := PaginationParams{PageNumber: 1, PageSize: 20}
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 20, p.Limit())

	p = PaginationParams{PageNumber: 4, PageSize: 25}
	assert.Equal(t, 75, p.Offset())
}

func TestNewPaginationMetadata(t *testing.T) {
	tests := []struct {
		name       string
		totalCount int64
		pageNumber int
		pageSize   int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"empty result", 0, 1, 20, 0, false, false},
		{"single partial page", 7, 1, 20, 1, false, false},
		{"exact page boundary", 40, 1, 20, 2, true, false},
		{"middle page", 95, 3, 20, 5, true, true},
		{"last page", 95, 5, 20, 5, false, true},
		{"page beyond range", 10, 9, 20, 1, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := NewPaginationMetadata(tt.totalCount, PaginationParams{
				PageNumber: tt.pageNumber,
				PageSize:   tt.pageSize,
			})
			assert.Equal(t, tt.totalCount, meta.TotalCount)
			assert.Equal(t, tt.totalPages, meta.TotalPages)
			assert.Equal(t, tt.hasNext, meta.HasNextPage)
			assert.Equal(t, tt.hasPrev, meta.HasPreviousPage)
		})
	}
}
