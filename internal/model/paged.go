package model

// Paged is one page of a larger result set. Page is 0-based. TotalPages is
// ceil(TotalItems/PageSize).
type Paged[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// NewPaged assembles a page from a slice and the overall item count.
func NewPaged[T any](items []T, page, pageSize, totalItems int) Paged[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}
	return Paged[T]{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
