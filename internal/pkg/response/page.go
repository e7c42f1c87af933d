package response

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPageResponse wraps one page of items. A nil slice is reported as [] rather than null.
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	pages := 0
	if pageSize > 0 {
		pages = (total + pageSize - 1) / pageSize
	}

	return PageResponse[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pages,
	}
}
