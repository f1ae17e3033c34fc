// Package pagination models page requests and page results shared by list operations.
package pagination

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// DefaultSize is applied when a request omits the page size.
	DefaultSize = 20
	// MaxSize bounds the page size a caller may request.
	MaxSize = 100
)

// ErrInvalidSort signals a sort expression that cannot be parsed.
var ErrInvalidSort = errors.New("invalid sort expression")

// Direction is the ordering applied to a sort property.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is a single sort criterion.
type Order struct {
	Property  string
	Direction Direction
}

// Pageable describes the slice of results a caller wants.
type Pageable struct {
	Page int
	Size int
	Sort []Order
}

// NewPageable normalizes page and size. Negative pages become zero and
// pages are capped so the offset fits in an int. Non-positive sizes fall
// back to DefaultSize and sizes above MaxSize are capped.
func NewPageable(page, size int, sort ...Order) Pageable {
	switch {
	case size <= 0:
		size = DefaultSize
	case size > MaxSize:
		size = MaxSize
	}
	switch {
	case page < 0:
		page = 0
	case page > math.MaxInt/size:
		page = math.MaxInt / size
	}
	return Pageable{Page: page, Size: size, Sort: sort}
}

// Offset returns the index of the first element on the page.
func (p Pageable) Offset() int {
	return p.Page * p.Size
}

// SortOr returns the requested sort, or fallback when none was given.
func (p Pageable) SortOr(fallback ...Order) []Order {
	if len(p.Sort) == 0 {
		return fallback
	}
	return p.Sort
}

// ParseSort parses "property[,asc|desc]" expressions.
func ParseSort(values []string) ([]Order, error) {
	orders := make([]Order, 0, len(values))
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.Split(raw, ",")
		property := strings.TrimSpace(parts[0])
		if property == "" || len(parts) > 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
		}
		direction := Asc
		if len(parts) == 2 {
			switch strings.ToUpper(strings.TrimSpace(parts[1])) {
			case "", "ASC":
			case "DESC":
				direction = Desc
			default:
				return nil, fmt.Errorf("%w: %q", ErrInvalidSort, raw)
			}
		}
		orders = append(orders, Order{Property: property, Direction: direction})
	}
	return orders, nil
}

// Page is one slice of a larger result set.
type Page[T any] struct {
	Content       []T
	Pageable      Pageable
	TotalElements int64
}

// NewPage assembles a page result.
func NewPage[T any](content []T, pageable Pageable, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Pageable: pageable, TotalElements: total}
}

// TotalPages reports how many pages of Pageable.Size cover TotalElements.
func (p Page[T]) TotalPages() int {
	if p.Pageable.Size <= 0 {
		return 1
	}
	return int((p.TotalElements + int64(p.Pageable.Size) - 1) / int64(p.Pageable.Size))
}

// First reports whether this is the first page.
func (p Page[T]) First() bool { return p.Pageable.Page == 0 }

// Last reports whether no page follows this one.
func (p Page[T]) Last() bool { return p.Pageable.Page+1 >= p.TotalPages() }

// Map converts page content while keeping the paging metadata.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	content := make([]U, 0, len(p.Content))
	for _, item := range p.Content {
		content = append(content, fn(item))
	}
	return Page[U]{Content: content, Pageable: p.Pageable, TotalElements: p.TotalElements}
}

// Slice pages an in-memory result set that is already sorted.
func Slice[T any](items []T, pageable Pageable) Page[T] {
	total := int64(len(items))
	start := pageable.Offset()
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := len(items)
	if remaining := len(items) - start; pageable.Size >= 0 && pageable.Size < remaining {
		end = start + pageable.Size
	}
	content := make([]T, end-start)
	copy(content, items[start:end])
	return NewPage(content, pageable, total)
}
