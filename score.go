package autorec

import (
	"fmt"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

// Score reconstructs a packed batch of rows and measures
// each row's reconstruction error.
//
// The batch length must be a multiple of the input
// dimension; otherwise a *ShapeError is returned.
// An empty batch produces empty outputs.
//
// Score is a pure function of the current parameters and
// the input: it does not mutate the model, and repeated
// calls with the same input give the same result.
func (a *Autoencoder) Score(batch anyvec.Vector) (recons anyvec.Vector, rowErrs []float64, err error) {
	if batch.Len() == 0 {
		return batch.Creator().MakeVector(0), []float64{}, nil
	}
	if batch.Len()%a.InCount != 0 {
		return nil, nil, &ShapeError{InCount: a.InCount, Len: batch.Len()}
	}
	n := batch.Len() / a.InCount
	in := anydiff.NewConst(batch)
	out := a.Apply(in, n)
	errs := MSE{}.Cost(in, out, n)
	return out.Output(), floatData(errs.Output()), nil
}

func floatData(v anyvec.Vector) []float64 {
	switch data := v.Data().(type) {
	case []float32:
		res := make([]float64, len(data))
		for i, x := range data {
			res[i] = float64(x)
		}
		return res
	case []float64:
		return append([]float64{}, data...)
	default:
		panic(fmt.Sprintf("unsupported numeric list: %T", data))
	}
}
