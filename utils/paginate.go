package utils

// Pagination is the envelope returned alongside every paginated list.
type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
	NextPage    *int  `json:"nextPage"`
	PrevPage    *int  `json:"prevPage"`
	Limit       int   `json:"limit"`
}

// NewPagination computes the envelope for a page/limit request over
// total matching rows. Page and limit are clamped to sane minimums.
func NewPagination(page, limit int, total int64) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	p := Pagination{
		TotalItems:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1 && total > 0,
		Limit:       limit,
	}
	if p.HasNextPage {
		next := page + 1
		p.NextPage = &next
	}
	if p.HasPrevPage {
		prev := page - 1
		p.PrevPage = &prev
	}
	return p
}

// Offset converts the page/limit pair to a SQL offset.
func (p Pagination) Offset() int {
	return (p.CurrentPage - 1) * p.Limit
}
