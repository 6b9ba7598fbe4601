package models

import (
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultPageSize is used when a page request carries no size.
	DefaultPageSize = 20
	// MaxPageSize caps the size of any page request.
	MaxPageSize = 100
	// MaxPage keeps Page*Size within int.
	MaxPage = math.MaxInt / MaxPageSize
)

// sortable maps accepted sort fields to their column names.
var sortable = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"createdAt":  "created_at",
	"updated_at": "updated_at",
	"updatedAt":  "updated_at",
	"title":      "title",
}

// PageRequest asks for a bounded, offset slice of a result set plus ordering.
// Page is zero-based. Sort has the form "field,asc" or "field,desc".
type PageRequest struct {
	Page int
	Size int
	Sort string
}

// Normalize clamps page and size into their valid ranges.
func (r PageRequest) Normalize() PageRequest {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Page > MaxPage {
		r.Page = MaxPage
	}
	if r.Size <= 0 {
		r.Size = DefaultPageSize
	}
	if r.Size > MaxPageSize {
		r.Size = MaxPageSize
	}
	return r
}

// Offset returns the number of rows to skip.
func (r PageRequest) Offset() int {
	n := r.Normalize()
	return n.Page * n.Size
}

// OrderClause returns a safe ORDER BY clause. Unknown fields fall back to "id DESC".
func (r PageRequest) OrderClause() string {
	field, dir, _ := strings.Cut(strings.TrimSpace(r.Sort), ",")
	column, ok := sortable[strings.TrimSpace(field)]
	if !ok {
		return "id DESC"
	}
	direction := "DESC"
	if strings.EqualFold(strings.TrimSpace(dir), "asc") {
		direction = "ASC"
	}
	if column == "id" {
		return fmt.Sprintf("id %s", direction)
	}
	// id breaks ties so pages stay stable.
	return fmt.Sprintf("%s %s, id %s", column, direction, direction)
}

// Page is one slice of a paginated result with its total metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
	TotalPages    int   `json:"total_pages"`
}

// NewPage builds a page for req over a result set of total rows.
func NewPage[T any](content []T, req PageRequest, total int64) *Page[T] {
	req = req.Normalize()
	if content == nil {
		content = []T{}
	}
	pages := int((total + int64(req.Size) - 1) / int64(req.Size))
	return &Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    pages,
	}
}

// MapPage converts every element of p with fn, keeping the metadata.
func MapPage[T, U any](p *Page[T], fn func(T) U) *Page[U] {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		out = append(out, fn(v))
	}
	return &Page[U]{
		Content:       out,
		Page:          p.Page,
		Size:          p.Size,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
	}
}
