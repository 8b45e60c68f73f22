// Package rank orders scored rows by reconstruction
// error and summarizes error distributions.
package rank

import "sort"

// Rank returns the indices 0..len(errs)-1 ordered by
// ascending error value.
// Ties keep their original index order, so the result is
// deterministic for a given input.
func Rank(errs []float64) []int {
	order := make([]int, len(errs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return errs[order[i]] < errs[order[j]]
	})
	return order
}

// Best returns the k best-reconstructed indices from an
// ordering produced by Rank.
// The result is a read-only view into order.
func Best(order []int, k int) []int {
	return order[:min(k, len(order))]
}

// Worst returns the k most anomalous indices from an
// ordering produced by Rank, still in ascending error
// order.
// The result is a read-only view into order.
func Worst(order []int, k int) []int {
	return order[len(order)-min(k, len(order)):]
}

// Typical returns a window of k indices centered on the
// median of an ordering produced by Rank.
// The result is a read-only view into order.
func Typical(order []int, k int) []int {
	if k >= len(order) {
		return order
	}
	start := (len(order) - k) / 2
	return order[start : start+k]
}
