// Package pagination holds page requests and the paginated result shape.
package pagination

import (
	"math"

	"gorm.io/gorm"
)

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
	// MaxPage keeps Offset and the meta positions within int32.
	MaxPage = math.MaxInt32 / MaxPerPage
)

// PageRequest holds pagination parameters parsed from query strings.
type PageRequest struct {
	Page    int `form:"page"`
	PerPage int `form:"per_page"`
}

// Defaults fills in missing values, clamps page to [1, MaxPage] and
// per_page to [1, MaxPerPage].
func (p *PageRequest) Defaults() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	switch {
	case p.PerPage == 0:
		p.PerPage = DefaultPerPage
	case p.PerPage < 1:
		p.PerPage = 1
	case p.PerPage > MaxPerPage:
		p.PerPage = MaxPerPage
	}
}

// Offset returns the SQL OFFSET for the current page.
func (p *PageRequest) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Meta describes where a page sits in the full result set. From and To are
// 1-based item positions and are nil for an empty page.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
}

// PageResponse wraps a paginated list of items with metadata.
type PageResponse[T any] struct {
	Data       []T  `json:"data"`
	Pagination Meta `json:"pagination"`
}

// NewPageResponse creates a PageResponse from the given data and total count.
func NewPageResponse[T any](data []T, page, perPage int, total int64) PageResponse[T] {
	if data == nil {
		data = []T{}
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	meta := Meta{
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     perPage,
		Total:       total,
	}
	if len(data) > 0 {
		from := (page-1)*perPage + 1
		to := from + len(data) - 1
		meta.From = &from
		meta.To = &to
	}
	return PageResponse[T]{Data: data, Pagination: meta}
}

// Paginate returns a GORM scope that applies OFFSET and LIMIT for the given page request.
func Paginate(req PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(req.Offset()).Limit(req.PerPage)
	}
}
