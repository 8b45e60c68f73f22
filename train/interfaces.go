// Package train provides minibatch gradient training for
// autoencoders.
package train

import "github.com/unixpickle/anydiff"

// A Transformer transforms gradients before they are
// applied, e.g. to implement an adaptive optimizer.
//
// After its first call, a Transformer expects to see
// gradients of the same form (i.e. containing the same
// variables).
//
// A Transformer may modify its own input and return the
// same gradient as an output.
// However, the input still belongs to the caller, and
// the transformer should not retain a reference to it.
//
// A Transformer's output is only guaranteed to be valid
// until the next time Transform is called.
type Transformer interface {
	Transform(g anydiff.Grad) anydiff.Grad
}

// A Rater determines the step size given the epoch
// number.
// An "epoch" is a full pass over the training set, so
// fractional epochs are possible.
type Rater interface {
	Rate(epoch float64) float64
}

// A ConstRater is a Rater which always returns the same
// constant step size.
type ConstRater float64

// Rate returns float64(c).
func (c ConstRater) Rate(epoch float64) float64 {
	return float64(c)
}
