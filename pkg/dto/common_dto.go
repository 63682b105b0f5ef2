package dto

import (
	"net/url"
	"strconv"
)

const DefaultPageSize = 10

// Page is the paginated list envelope: total count, links to the
// neighbouring pages and the current slice of results.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type PageQuery struct {
	Page string `form:"page"`
}

// TotalPages never returns less than one so that page 1 of an empty list is valid.
func TotalPages(count int64, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	pages := int((count + int64(size) - 1) / int64(size))
	if pages < 1 {
		return 1
	}
	return pages
}

// ParsePage returns the requested page number, defaulting to 1 when absent.
func ParsePage(raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// NewPage builds the envelope, deriving next/previous from base (the request URL).
func NewPage[T any](base *url.URL, page, size int, count int64, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	out := Page[T]{Count: count, Results: results}
	if page < TotalPages(count, size) {
		out.Next = pageLink(base, page+1)
	}
	if page > 1 {
		out.Previous = pageLink(base, page-1)
	}
	return out
}

func pageLink(base *url.URL, page int) *string {
	if base == nil {
		return nil
	}
	u := *base
	q := u.Query()
	if page == 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}
