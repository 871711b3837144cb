// Package listing provides the generic filter and sort primitives shared by
// every list screen: projects, invoices, invoice line items and payments all
// go through the same predicate and comparator machinery so that identical
// controls behave identically everywhere.
package listing

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sentinel is the filter value meaning "no filtering on this dimension".
const Sentinel = "all"

// Direction controls sort order.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// ParseDirection maps a query-string value to a Direction, defaulting to
// descending (the most-recent-first convention of the list screens).
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, string(Ascending)) {
		return Ascending
	}
	return Descending
}

// Predicate reports whether a record passes a filter.
type Predicate[T any] func(T) bool

// Filter returns the records matching every predicate. The input slice is
// never mutated and the result is always a fresh slice, so repeated calls
// with identical inputs are reproducible.
func Filter[T any](records []T, preds ...Predicate[T]) []T {
	out := make([]T, 0, len(records))
	for _, rec := range records {
		keep := true
		for _, p := range preds {
			if !p(rec) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out
}

// SearchText builds a case-insensitive substring predicate over the given
// string fields. An empty query matches everything.
func SearchText[T any](query string, fields ...func(T) string) Predicate[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(rec T) bool {
		if query == "" {
			return true
		}
		for _, field := range fields {
			if strings.Contains(strings.ToLower(field(rec)), query) {
				return true
			}
		}
		return false
	}
}

// Exact builds an exact-match predicate on an enum-like field. The sentinel
// value "all" (and the empty string) disables the filter.
func Exact[T any](value string, field func(T) string) Predicate[T] {
	return func(rec T) bool {
		if value == "" || value == Sentinel {
			return true
		}
		return field(rec) == value
	}
}

// SortBy returns a sorted copy of records using the given comparator. The
// sort is stable: ties keep their original relative order. Descending order
// is the reverse of ascending for the compared key, with stability preserved.
func SortBy[T any](records []T, cmp func(a, b T) int, dir Direction) []T {
	out := slices.Clone(records)
	if dir == Descending {
		slices.SortStableFunc(out, func(a, b T) int { return cmp(b, a) })
	} else {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

// ByString compares records on a string key (locale-naive byte order).
func ByString[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return strings.Compare(key(a), key(b))
	}
}

// ByDecimal compares records on a decimal key.
func ByDecimal[T any](key func(T) decimal.Decimal) func(a, b T) int {
	return func(a, b T) int {
		return key(a).Cmp(key(b))
	}
}

// ByTime compares records on an optional timestamp key. Records without a
// value sort before records with one, so "never assigned" rows surface first
// in ascending order instead of disappearing among the oldest dates.
func ByTime[T any](key func(T) *time.Time) func(a, b T) int {
	return func(a, b T) int {
		ta, tb := key(a), key(b)
		switch {
		case ta == nil && tb == nil:
			return 0
		case ta == nil:
			return -1
		case tb == nil:
			return 1
		default:
			return ta.Compare(*tb)
		}
	}
}
