package sample

import (
	"errors"
	"math/rand"
)

// Errors for invalid Draw arguments.
var (
	ErrEmptyDataset = errors.New("draw minibatch: empty dataset")
	ErrBadBatchSize = errors.New("draw minibatch: non-positive batch size")
)

// Draw selects n rows from a dataset, sampling indices
// independently and uniformly at random with
// replacement, so the result may repeat rows.
//
// The rng argument makes draws reproducible under a
// fixed seed.
// If rng is nil, the global random source is used.
//
// Calling Draw repeatedly yields an unbounded stream of
// minibatches; there is no state besides rng.
func Draw(rng *rand.Rand, l List, n int) (SliceList, error) {
	if l.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if n < 1 {
		return nil, ErrBadBatchSize
	}
	res := make(SliceList, n)
	for i := range res {
		res[i] = l.At(intn(rng, l.Len()))
	}
	return res, nil
}

func intn(rng *rand.Rand, n int) int {
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}
