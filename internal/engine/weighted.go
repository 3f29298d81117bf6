package engine

import "errors"

// ErrEmptyTable is returned when a weighted table has no entries.
var ErrEmptyTable = errors.New("weighted table has no entries")

// Entry is one row of a weighted table. Weights are percentages out of
// 100; a table whose weights sum below 100 resolves the shortfall to
// its final entry.
type Entry[T any] struct {
	Value  T
	Weight float64
}

// Percent draws a uniform value on the [0,100) percent scale.
func Percent(src Source) float64 {
	return src.Float64() * 100
}

// Pick walks entries in the given order, accumulating weights, and
// returns the first entry whose cumulative weight exceeds the draw.
// Entry order is significant: callers list entries rarest-first so a
// low draw lands on the rare end. If the accumulated weights never
// exceed the draw (table sums under 100, or float rounding), the final
// entry is the catch-all.
func Pick[T any](src Source, entries []Entry[T]) (T, error) {
	var zero T
	if len(entries) == 0 {
		return zero, ErrEmptyTable
	}

	r := Percent(src)
	cumulative := 0.0
	for _, e := range entries {
		cumulative += e.Weight
		if r < cumulative {
			return e.Value, nil
		}
	}
	return entries[len(entries)-1].Value, nil
}

// PickIndex behaves like Pick but reports which row won, for callers
// that need the position rather than the value.
func PickIndex[T any](src Source, entries []Entry[T]) (int, error) {
	if len(entries) == 0 {
		return 0, ErrEmptyTable
	}

	r := Percent(src)
	cumulative := 0.0
	for i, e := range entries {
		cumulative += e.Weight
		if r < cumulative {
			return i, nil
		}
	}
	return len(entries) - 1, nil
}

// PickUniform selects one of n options with equal probability.
func PickUniform(src Source, n int) int {
	if n <= 1 {
		return 0
	}
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
