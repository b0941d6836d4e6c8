package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrUnsortedQuery is returned when a paginated query is built without
// an explicit sort key. Unordered pagination is non-deterministic
// across calls, so it is rejected at this boundary.
var ErrUnsortedQuery = errors.New("paginated query requires an explicit sort key")

// PageFilter describes a page request. PageNumber and PageSize below 1
// are clamped to 1 rather than rejected, so callers can never produce
// a negative offset or a zero divisor.
type PageFilter struct {
	PageNumber int    `form:"page" json:"page"`
	PageSize   int    `form:"page_size" json:"page_size"`
	SortBy     string `form:"sort_by" json:"sort_by"`
	SortDesc   bool   `form:"sort_desc" json:"sort_desc"`
}

func (f PageFilter) clamped() PageFilter {
	if f.PageNumber < 1 {
		f.PageNumber = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 1
	}
	return f
}

// Page is one page of results plus paging metadata.
type Page[T any] struct {
	Data       []T   `json:"data"`
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// Paginate applies count + offset/limit to the given query and scans
// one page of T. The query must carry any WHERE clauses already; the
// sort key comes from the filter and is mandatory.
func Paginate[T any](query *gorm.DB, filter PageFilter) (*Page[T], error) {
	if filter.SortBy == "" {
		return nil, ErrUnsortedQuery
	}
	filter = filter.clamped()

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}

	var data []T
	err := query.
		Order(fmt.Sprintf("%s %s", filter.SortBy, direction)).
		Offset((filter.PageNumber - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&data).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))

	return &Page[T]{
		Data:       data,
		TotalCount: total,
		PageNumber: filter.PageNumber,
		PageSize:   filter.PageSize,
		TotalPages: totalPages,
	}, nil
}
