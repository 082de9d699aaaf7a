package dto

// PaginationParams represents the page window requested by a client
type PaginationParams struct {
	PageNumber int `form:"pageNumber" json:"pageNumber" binding:"omitempty,min=1" example:"1"`
	PageSize   int `form:"pageSize" json:"pageSize" binding:"omitempty,min=1,max=100" example:"20"`
}

// DefaultPageSize is applied when a list request omits pageSize
const DefaultPageSize = 20

// Normalize fills in defaults for zero-valued fields
func (p *PaginationParams) Normalize() {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
}

// Offset returns the zero-based row offset for the requested page
func (p PaginationParams) Offset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// Limit returns the row limit for the requested page
func (p PaginationParams) Limit() int {
	return p.PageSize
}

// PaginationMetadata describes the page of results returned by a list query
type PaginationMetadata struct {
	TotalCount      int64 `json:"totalCount"`
	PageSize        int   `json:"pageSize"`
	PageNumber      int   `json:"pageNumber"`
	TotalPages      int   `json:"totalPages"`
	HasNextPage     bool  `json:"hasNextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
}

// NewPaginationMetadata derives page counts and navigation flags from the
// total item count and the requested page window.
func NewPaginationMetadata(totalCount int64, params PaginationParams) *PaginationMetadata {
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = int((totalCount + int64(params.PageSize) - 1) / int64(params.PageSize))
	}
	return &PaginationMetadata{
		TotalCount:      totalCount,
		PageSize:        params.PageSize,
		PageNumber:      params.PageNumber,
		TotalPages:      totalPages,
		HasNextPage:     params.PageNumber < totalPages,
		HasPreviousPage: params.PageNumber > 1,
	}
}
