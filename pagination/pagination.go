// Package pagination computes list windows and the metadata returned with them.
package pagination

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 5
	MaxLimit     = 100
)

// Params is a normalised page request.
type Params struct {
	Page   int
	Limit  int
	Search string
}

// Meta is the pagination block of a list response.
type Meta struct {
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Limit       int   `json:"limit"`
	NextPage    *int  `json:"nextPage"`
}

// Page is one window of rows with its metadata.
type Page[T any] struct {
	Items []T
	Meta  Meta
}

// New normalises raw values. Non-positive page or limit fall back to the
// defaults and limit is capped at MaxLimit.
func New(page, limit int, search string) Params {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Params{Page: page, Limit: limit, Search: strings.TrimSpace(search)}
}

// Parse normalises query string values; anything that is not an integer is
// treated as absent.
func Parse(page, limit, search string) Params {
	return New(atoi(page), atoi(limit), search)
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Offset is the number of rows skipped before this page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// MetaFor derives the metadata for a filtered total.
func (p Params) MetaFor(total int64) Meta {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	meta := Meta{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
		Limit:       p.Limit,
	}
	if p.Page < totalPages {
		next := p.Page + 1
		meta.NextPage = &next
	}
	return meta
}

// NewPage pairs rows with metadata. A nil slice is replaced so that it
// serialises as an empty JSON array.
func NewPage[T any](items []T, p Params, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Meta: p.MetaFor(total)}
}
