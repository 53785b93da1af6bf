// Package query implements the filter → search → sort → paginate pipeline shared by
// every list operation. Fields are resolved through an explicit per-entity Schema
// instead of reflection.
package query

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"
)

const (
	// DefaultPageSize is used when the caller does not request a page size.
	DefaultPageSize = 10
	// MaxPageSize caps every page regardless of the requested size.
	MaxPageSize = 100
)

// Params carries the caller-controlled part of a list request.
type Params struct {
	Search   string
	SortBy   string
	SortDesc bool
	Page     int
	PageSize int
}

// Normalize applies paging defaults and the page size cap.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	if p.PageSize > MaxPageSize {
		p.PageSize = MaxPageSize
	}
	p.Search = strings.TrimSpace(p.Search)
	p.SortBy = strings.TrimSpace(p.SortBy)
	return p
}

// Offset returns the number of records skipped before the current page. Offsets
// that do not fit in an int saturate at math.MaxInt.
func (p Params) Offset() int {
	n := p.Normalize()
	if n.Page-1 > math.MaxInt/n.PageSize {
		return math.MaxInt
	}
	return (n.Page - 1) * n.PageSize
}

// Page is one slice of a result set together with the size of the whole set.
type Page[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"total_count"`
	PageNumber int   `json:"page_number"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// Compare orders two records; negative means a sorts before b.
type Compare[T any] func(a, b T) int

// Schema declares which fields of T can be searched and sorted.
type Schema[T any] struct {
	// Search lists the text accessors matched by the free-text term.
	Search []func(T) string
	// Sort maps a field name to its comparator. Names are matched ignoring case and underscores.
	Sort map[string]Compare[T]
}

// Comparator resolves a sort field name. Unknown names report false.
func (s Schema[T]) Comparator(name string) (Compare[T], bool) {
	key := fieldKey(name)
	if key == "" {
		return nil, false
	}
	for field, cmpFn := range s.Sort {
		if fieldKey(field) == key {
			return cmpFn, true
		}
	}
	return nil, false
}

// Matches reports whether any search accessor contains term, ignoring case.
func (s Schema[T]) Matches(record T, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, field := range s.Search {
		if strings.Contains(strings.ToLower(field(record)), term) {
			return true
		}
	}
	return false
}

// Run filters, searches, sorts and paginates records. The input slice is not modified.
// A nil filter accepts every record; an unknown sort field keeps the input order.
func Run[T any](records []T, filter func(T) bool, schema Schema[T], params Params) Page[T] {
	p := params.Normalize()

	matched := make([]T, 0, len(records))
	for _, r := range records {
		if filter != nil && !filter(r) {
			continue
		}
		if !schema.Matches(r, p.Search) {
			continue
		}
		matched = append(matched, r)
	}

	if cmpFn, ok := schema.Comparator(p.SortBy); ok {
		slices.SortStableFunc(matched, func(a, b T) int {
			if p.SortDesc {
				return cmpFn(b, a)
			}
			return cmpFn(a, b)
		})
	}

	return Paginate(matched, p)
}

// Paginate cuts one page out of an already ordered result set.
func Paginate[T any](records []T, params Params) Page[T] {
	p := params.Normalize()
	total := len(records)

	start := total
	if p.Page-1 <= total/p.PageSize {
		start = min((p.Page-1)*p.PageSize, total)
	}
	end := start + p.PageSize
	if end > total {
		end = total
	}

	items := make([]T, end-start)
	copy(items, records[start:end])

	return Page[T]{
		Items:      items,
		TotalCount: int64(total),
		PageNumber: p.Page,
		PageSize:   p.PageSize,
		TotalPages: TotalPages(int64(total), p.PageSize),
	}
}

// TotalPages returns ceil(total / size).
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

// By builds a comparator over an ordered key.
func By[T any, K cmp.Ordered](key func(T) K) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ByFold builds a case-insensitive comparator over a text key.
func ByFold[T any](key func(T) string) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	}
}

// ByTime builds a comparator over a timestamp key.
func ByTime[T any](key func(T) time.Time) Compare[T] {
	return func(a, b T) int {
		return key(a).Compare(key(b))
	}
}

// ByOptionalTime orders missing timestamps first.
func ByOptionalTime[T any](key func(T) *time.Time) Compare[T] {
	return func(a, b T) int {
		ta, tb := key(a), key(b)
		switch {
		case ta == nil && tb == nil:
			return 0
		case ta == nil:
			return -1
		case tb == nil:
			return 1
		}
		return ta.Compare(*tb)
	}
}

func fieldKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("_", "", "-", "").Replace(name)
}
