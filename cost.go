package autorec

import "github.com/unixpickle/anydiff"

// A Cost measures the reconstruction error for a batch
// of network outputs.
//
// Like the network itself, a Cost is batched.
// It takes a packed batch of desired outputs and actual
// outputs, and produces one cost per row.
type Cost interface {
	Cost(desired, actual anydiff.Res, n int) anydiff.Res
}

// MSE evaluates cost as the mean squared distance
// between the actual and desired output.
//
// This is the reconstruction error used for anomaly
// scoring: a row's cost is the mean over its components
// of the squared difference from its reconstruction.
type MSE struct{}

// Cost computes, for each of the n rows, the mean
// squared distance between the actual and desired
// output values.
func (m MSE) Cost(desired, actual anydiff.Res, n int) anydiff.Res {
	neg := anydiff.Scale(actual, actual.Output().Creator().MakeNumeric(-1))
	diff := anydiff.Add(desired, neg)
	sq := anydiff.Square(diff)
	numComps := sq.Output().Len() / n
	sum := anydiff.SumCols(&anydiff.Matrix{
		Data: sq,
		Rows: n,
		Cols: numComps,
	})
	normalizer := 1.0 / float64(numComps)
	return anydiff.Scale(sum, sum.Output().Creator().MakeNumeric(normalizer))
}
