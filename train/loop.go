package train

import (
	"errors"
	"math/rand"

	"github.com/dirkdupont/autorec/sample"
	"github.com/unixpickle/essentials"
)

// DefaultRate is the step size used when a Loop has no
// Rater.
const DefaultRate = 0.001

// A Loop runs a fixed number of epochs of minibatch
// training over a dataset.
//
// Each epoch runs floor(N/B) steps, where N is the
// dataset size and B is the batch size, drawing a fresh
// random minibatch with replacement for every step.
// Termination is purely step-count-based; there is no
// convergence check.
type Loop struct {
	Trainer *Trainer

	// Samples is the training dataset.
	// Its length must be at least BatchSize.
	Samples sample.List

	// Rater determines the step size for each step.
	// If it is nil, ConstRater(DefaultRate) is used.
	Rater Rater

	BatchSize int
	Epochs    int

	// Rand is the source used to draw minibatches.
	// If it is nil, the global random source is used.
	Rand *rand.Rand

	// Cancel, if non-nil, stops training cooperatively
	// when it is closed.
	// A cancelled Run returns the epoch costs recorded so
	// far and no error.
	Cancel <-chan struct{}

	// StatusFunc, if non-nil, is called after each epoch
	// with the epoch's mean cost.
	StatusFunc func(epoch int, meanCost float64)
}

// Run trains for the configured number of epochs and
// returns the mean cost of each completed epoch.
func (l *Loop) Run() ([]float64, error) {
	if l.BatchSize < 1 {
		return nil, essentials.AddCtx("run training", sample.ErrBadBatchSize)
	}
	if l.Samples.Len() == 0 {
		return nil, essentials.AddCtx("run training", sample.ErrEmptyDataset)
	}
	batchesPerEpoch := l.Samples.Len() / l.BatchSize
	if batchesPerEpoch == 0 {
		return nil, errors.New("run training: batch size exceeds dataset size")
	}

	rater := l.Rater
	if rater == nil {
		rater = ConstRater(DefaultRate)
	}

	var costs []float64
	for epoch := 0; epoch < l.Epochs; epoch++ {
		var total float64
		for i := 0; i < batchesPerEpoch; i++ {
			select {
			case <-l.Cancel:
				return costs, nil
			default:
			}
			drawn, err := sample.Draw(l.Rand, l.Samples, l.BatchSize)
			if err != nil {
				return costs, essentials.AddCtx("run training", err)
			}
			batch, err := l.Trainer.Fetch(drawn)
			if err != nil {
				return costs, essentials.AddCtx("run training", err)
			}
			rate := rater.Rate(float64(epoch) + float64(i)/float64(batchesPerEpoch))
			cost, err := l.Trainer.Step(batch, rate)
			if err != nil {
				return costs, essentials.AddCtx("run training", err)
			}
			total += cost
		}
		mean := total / float64(batchesPerEpoch)
		costs = append(costs, mean)
		if l.StatusFunc != nil {
			l.StatusFunc(epoch, mean)
		}
	}
	return costs, nil
}
