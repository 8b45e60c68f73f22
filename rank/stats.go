package rank

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// A Summary describes the distribution of a batch of
// reconstruction errors.
type Summary struct {
	Mean   float64
	StdDev float64

	// Cutoff is the error value at the summarized
	// quantile.
	// Rows scoring above it are candidate anomalies.
	Cutoff float64
}

// Summarize computes a Summary of the error vector with
// the cutoff at the given quantile in [0, 1].
//
// An empty error vector yields a zero Summary.
func Summarize(errs []float64, quantile float64) Summary {
	if len(errs) == 0 {
		return Summary{}
	}
	sorted := append([]float64{}, errs...)
	sort.Float64s(sorted)
	return Summary{
		Mean:   stat.Mean(errs, nil),
		StdDev: stat.StdDev(errs, nil),
		Cutoff: stat.Quantile(quantile, stat.Empirical, sorted, nil),
	}
}
