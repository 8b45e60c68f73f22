package train

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/dirkdupont/autorec"
	"github.com/dirkdupont/autorec/sample"
	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/essentials"
)

// A DegeneracyError indicates that a training step
// produced a non-finite cost, typically because of an
// unstable step size or poisoned inputs.
// The parameter update for the offending step is not
// applied.
type DegeneracyError struct {
	Cost float64
}

// Error returns a message describing the bad cost value.
func (d *DegeneracyError) Error() string {
	return fmt.Sprintf("degenerate training cost: %v", d.Cost)
}

// A Batch is a minibatch of rows packed into a single
// constant vector, ready for a forward pass.
type Batch struct {
	Inputs *anydiff.Const
	Num    int
}

// A Trainer computes costs, gradients, and parameter
// updates for one Autoencoder.
//
// The target of every row is the row itself, so batches
// carry no separate outputs.
type Trainer struct {
	Model  *autorec.Autoencoder
	Cost   autorec.Cost
	Params []*anydiff.Var

	// Transformer, if non-nil, is used to transform each
	// gradient before it is applied.
	Transformer Transformer

	// After every gradient computation, LastCost is set to
	// the mean cost from the batch.
	LastCost float64

	// MaxGos specifies the maximum goroutines to use
	// simultaneously for assembling batches.
	// If it is 0, GOMAXPROCS is used.
	MaxGos int
}

// Fetch packs a drawn list of rows into a *Batch.
// Each row must have the model's input dimension and the
// list may not be empty.
//
// Rows are gathered concurrently, but Fetch blocks until
// the batch is complete.
func (t *Trainer) Fetch(l sample.List) (*Batch, error) {
	if l.Len() == 0 {
		return nil, errors.New("fetch batch: empty batch")
	}

	rows := make([]anyvec.Vector, l.Len())

	idxChan := make(chan int, l.Len())
	for i := 0; i < l.Len(); i++ {
		idxChan <- i
	}
	close(idxChan)

	maxGos := t.MaxGos
	if maxGos == 0 {
		maxGos = runtime.GOMAXPROCS(0)
	}

	wg := sync.WaitGroup{}
	errChan := make(chan error, maxGos)
	for i := 0; i < maxGos; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxChan {
				row := l.At(i)
				if row.Len() != t.Model.InCount {
					err := &autorec.ShapeError{InCount: t.Model.InCount, Len: row.Len()}
					errChan <- essentials.AddCtx("fetch batch", err)
					return
				}
				rows[i] = row
			}
		}()
	}

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return nil, err
	}

	joined := rows[0].Creator().Concat(rows...)
	return &Batch{
		Inputs: anydiff.NewConst(joined),
		Num:    l.Len(),
	}, nil
}

// TotalCost computes the mean reconstruction cost over
// the rows of a *Batch.
func (t *Trainer) TotalCost(b *Batch) anydiff.Res {
	outRes := t.Model.Apply(b.Inputs, b.Num)
	cost := t.Cost.Cost(b.Inputs, outRes, b.Num)
	total := anydiff.Sum(cost)
	divisor := 1 / float64(b.Num)
	return anydiff.Scale(total, total.Output().Creator().MakeNumeric(divisor))
}

// Gradient computes the gradient for the batch's mean
// cost.
// It also sets t.LastCost to the numerical value of the
// mean cost.
func (t *Trainer) Gradient(b *Batch) anydiff.Grad {
	grad := anydiff.Grad{}
	for _, p := range t.Params {
		grad[p] = p.Vector.Creator().MakeVector(p.Vector.Len())
	}

	cost := t.TotalCost(b)
	upstream := cost.Output().Creator().MakeVector(cost.Output().Len())
	upstream.AddScalar(upstream.Creator().MakeNumeric(1))
	cost.Propagate(upstream, grad)

	t.LastCost = floatValue(cost.Output())
	return grad
}

// Step runs one training step: it computes the batch's
// gradient, transforms it, scales it by -rate, and adds
// it to the parameters in place.
// It returns the batch's mean cost as measured before
// the update.
//
// If the cost is not finite, Step returns a
// *DegeneracyError and leaves the parameters untouched,
// so a degenerate batch cannot corrupt the model.
//
// Step appears atomic to callers: no partial parameter
// update is ever observable.
func (t *Trainer) Step(b *Batch, rate float64) (float64, error) {
	grad := t.Gradient(b)
	if math.IsNaN(t.LastCost) || math.IsInf(t.LastCost, 0) {
		return t.LastCost, &DegeneracyError{Cost: t.LastCost}
	}
	if t.Transformer != nil {
		grad = t.Transformer.Transform(grad)
	}
	scaleGrad(grad, -rate)
	grad.AddToVars()
	return t.LastCost, nil
}

func floatValue(cost anyvec.Vector) float64 {
	switch data := cost.Data().(type) {
	case []float32:
		return float64(data[0])
	case []float64:
		return data[0]
	default:
		panic(fmt.Sprintf("unsupported numeric list: %T", data))
	}
}
