package model

// ListParams carries pagination, sorting, search and equality filters for list endpoints.
type ListParams struct {
	Page     int
	PageSize int
	Sort     string
	Order    string
	Search   string
	Filters  map[string]string
}

func (p ListParams) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, total int64, params ListParams) Page[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := 0
	if params.PageSize > 0 {
		totalPages = int(total) / params.PageSize
		if int(total)%params.PageSize > 0 {
			totalPages++
		}
	}
	return Page[T]{
		Items:      items,
		Total:      total,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalPages: totalPages,
	}
}
