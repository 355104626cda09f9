package resource

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter is an additional WHERE clause applied to a list query.
type Filter struct {
	Clause string
	Args   []any
}

// ListQuery is the normalized form of ?search=&sortBy=&sort=&page=&limit=.
type ListQuery struct {
	Search  string
	SortBy  string
	Sort    string
	Page    int
	Limit   int
	Filters []Filter
}

func (q *ListQuery) Where(clause string, args ...any) {
	q.Filters = append(q.Filters, Filter{Clause: clause, Args: args})
}

// Normalize clamps page and limit and lowercases the direction.
func (q *ListQuery) Normalize() {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	q.Sort = strings.ToLower(strings.TrimSpace(q.Sort))
	if q.Sort != "asc" && q.Sort != "desc" {
		q.Sort = ""
	}
	q.Search = strings.TrimSpace(q.Search)
}

func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// ParseInt returns def for empty or malformed input.
func ParseInt(v string, def int) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

type Meta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	LastPage int   `json:"lastPage"`
}

type Page[T any] struct {
	Data []T `json:"data"`
	Meta Meta `json:"meta"`
}

func LastPage(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func NewPage[T any](data []T, total int64, q ListQuery) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		Data: data,
		Meta: Meta{
			Total:    total,
			Page:     q.Page,
			Limit:    q.Limit,
			LastPage: LastPage(total, q.Limit),
		},
	}
}
