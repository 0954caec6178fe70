package bikeshare

import (
	"cmp"
	"slices"
)

// NotDisclosed labels trips whose rider did not state a gender.
const NotDisclosed = "Not disclosed"

// Mode is the most frequent value in a selection.
type Mode[T comparable] struct {
	Value T
	Count int // occurrences of Value; 0 when the selection was empty
}

// Valid reports whether the mode was computed from at least one value.
func (m Mode[T]) Valid() bool { return m.Count > 0 }

// ModeOf returns the most frequent value. When several values share the
// highest count, the one that appears first in values wins.
func ModeOf[T comparable](values []T) Mode[T] {
	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	var best Mode[T]
	for _, v := range values {
		if c := counts[v]; c > best.Count {
			best = Mode[T]{Value: v, Count: c}
		}
	}
	return best
}

// Count is one row of a frequency table.
type Count struct {
	Value string
	Count int
}

// ValueCounts returns the frequency of each distinct value, most frequent
// first. Values with equal counts keep their order of first appearance.
func ValueCounts(values []string) []Count {
	index := make(map[string]int)
	var out []Count
	for _, v := range values {
		if i, ok := index[v]; ok {
			out[i].Count++
			continue
		}
		index[v] = len(out)
		out = append(out, Count{Value: v, Count: 1})
	}
	slices.SortStableFunc(out, func(a, b Count) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// GenderLabels returns one label per trip with missing genders replaced by
// NotDisclosed. The trips are left untouched.
func GenderLabels(trips []Trip) []string {
	out := make([]string, len(trips))
	for i, t := range trips {
		if t.Gender == nil {
			out[i] = NotDisclosed
			continue
		}
		out[i] = *t.Gender
	}
	return out
}

// collect returns f(t) for every trip where f reports ok.
func collect[T any](trips []Trip, f func(Trip) (T, bool)) []T {
	out := make([]T, 0, len(trips))
	for _, t := range trips {
		if v, ok := f(t); ok {
			out = append(out, v)
		}
	}
	return out
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
