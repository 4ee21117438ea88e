// Package fieldsort orders and compares values through explicit, named comparator
// tables. A table maps a field name to a comparator so callers can sort by a field
// chosen at runtime (a query parameter) without reflection.
package fieldsort

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrUnknownField is returned when a sort is requested on a field the table lacks.
var ErrUnknownField = errors.New("unknown sort field")

// Order is a sort direction.
type Order string

const (
	Asc  Order = "ASC"
	Desc Order = "DESC"
)

// ParseOrder maps user input to an Order. Anything other than "desc" (any case) is ascending.
func ParseOrder(s string) Order {
	if strings.EqualFold(strings.TrimSpace(s), string(Desc)) {
		return Desc
	}
	return Asc
}

// Compare returns a negative number when a < b, zero when equal, positive when a > b.
type Compare[T any] func(a, b T) int

// Ordered compares by a key with a natural ordering.
func Ordered[T any, K cmp.Ordered](get func(T) K) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(get(a), get(b))
	}
}

// Text compares strings case-insensitively, falling back to a byte-wise comparison
// so that distinct strings never compare equal.
func Text[T any](get func(T) string) Compare[T] {
	return func(a, b T) int {
		x, y := get(a), get(b)
		if c := cmp.Compare(strings.ToLower(x), strings.ToLower(y)); c != 0 {
			return c
		}
		return cmp.Compare(x, y)
	}
}

// Time compares instants.
func Time[T any](get func(T) time.Time) Compare[T] {
	return func(a, b T) int {
		return get(a).Compare(get(b))
	}
}

// Bool orders false before true.
func Bool[T any](get func(T) bool) Compare[T] {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x == y:
			return 0
		case !x:
			return -1
		default:
			return 1
		}
	}
}

// Optional lifts a comparator over K to pointer keys. nil sorts before any value
// and two nils are equal.
func Optional[T any, K any](get func(T) *K, inner func(a, b K) int) Compare[T] {
	return func(a, b T) int {
		x, y := get(a), get(b)
		switch {
		case x == nil && y == nil:
			return 0
		case x == nil:
			return -1
		case y == nil:
			return 1
		default:
			return inner(*x, *y)
		}
	}
}

// Fields is a named comparator table for T.
type Fields[T any] map[string]Compare[T]

// Sort returns items ordered by field. An empty field returns items unchanged.
// The result is a new slice; items is not modified. The sort is stable in both
// directions.
func (f Fields[T]) Sort(items []T, field string, order Order) ([]T, error) {
	if field == "" {
		return items, nil
	}
	compare, ok := f[field]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	sorted := slices.Clone(items)
	if order == Desc {
		slices.SortStableFunc(sorted, func(a, b T) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(sorted, compare)
	}
	return sorted, nil
}

// Equal reports whether a and b compare equal on every field of the table.
func (f Fields[T]) Equal(a, b T) bool {
	for _, compare := range f {
		if compare(a, b) != 0 {
			return false
		}
	}
	return true
}

// Names returns the field names in lexical order.
func (f Fields[T]) Names() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
