package domain

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Pagination struct {
	Page       int32 `json:"page"`
	Limit      int32 `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int32 `json:"totalPages"`
}

// NewPagination normalizes page/limit and computes totalPages = ceil(total/limit).
// Page and limit below 1 fall back to defaults; limit is capped at MaxPageSize.
func NewPagination(page, limit int32, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	totalPages := int32(total / int64(limit))
	if total%int64(limit) > 0 {
		totalPages++
	}

	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the row offset for the current page.
func (p Pagination) Offset() int32 {
	return (p.Page - 1) * p.Limit
}
