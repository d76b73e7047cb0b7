package randgen

import "strings"

// Repeat calls fn n times with the indexes 0..n-1 in order and collects the
// results. A non-positive n returns an empty slice without calling fn.
func Repeat[T any](n int, fn func(i int) T) []T {
	if n <= 0 {
		return []T{}
	}

	out := make([]T, n)
	for i := range n {
		out[i] = fn(i)
	}
	return out
}

// NoIndex adapts a generator that does not care about the repetition index.
func NoIndex[T any](fn func() T) func(int) T {
	return func(int) T { return fn() }
}

// Join repeats fn n times and joins the results with sep.
func Join(n int, sep string, fn func(i int) string) string {
	return strings.Join(Repeat(n, fn), sep)
}
