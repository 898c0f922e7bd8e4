package utils

import "strings"

// Map returns f applied to every element of elems.
func Map[T, U any](elems []T, f func(T) U) []U {
	out := make([]U, len(elems))
	for i, v := range elems {
		out[i] = f(v)
	}
	return out
}

// Filter returns the elements of elems for which keep is true, in order. The
// result is nil when nothing is kept.
func Filter[T any](elems []T, keep func(T) bool) []T {
	var out []T
	for _, v := range elems {
		if keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// ContainsFold reports whether list holds s under Unicode case folding.
func ContainsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
