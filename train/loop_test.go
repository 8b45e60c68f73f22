package train

import (
	"math/rand"
	"testing"

	"github.com/dirkdupont/autorec/sample"
	"github.com/unixpickle/anyvec/anyvec32"
)

// constantRows builds a dataset of two distinct constant
// rows, each repeated count times.
func constantRows(dim, count int) sample.SliceList {
	rows := make([][]float64, 0, count*2)
	for i := 0; i < count; i++ {
		rows = append(rows, constantRow(dim, 0), constantRow(dim, 1))
	}
	return sample.NewSliceList(anyvec32.DefaultCreator{}, rows)
}

func constantRow(dim int, value float64) []float64 {
	row := make([]float64, dim)
	for i := range row {
		row[i] = value
	}
	return row
}

func TestLoopImprovement(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	trainer := newTestTrainer(16, 3, 6)

	var statusCalls int
	loop := &Loop{
		Trainer:   trainer,
		Samples:   constantRows(16, 32),
		Rater:     ConstRater(0.02),
		BatchSize: 16,
		Epochs:    300,
		Rand:      rng,
		StatusFunc: func(epoch int, meanCost float64) {
			statusCalls++
		},
	}
	costs, err := loop.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(costs) != 300 {
		t.Fatalf("expected 300 epoch costs but got %d", len(costs))
	}
	if statusCalls != 300 {
		t.Errorf("expected 300 status calls but got %d", statusCalls)
	}
	if costs[len(costs)-1] >= costs[0] {
		t.Errorf("training should improve: first=%f last=%f", costs[0], costs[len(costs)-1])
	}

	// A novel interpolated row must reconstruct worse than
	// either training row.
	c := anyvec32.DefaultCreator{}
	probes := sample.NewSliceList(c, [][]float64{
		constantRow(16, 0),
		constantRow(16, 1),
		constantRow(16, 0.5),
	})
	_, errs, err := trainer.Model.Score(sample.Pack(c, probes))
	if err != nil {
		t.Fatal(err)
	}
	if errs[2] <= errs[0] || errs[2] <= errs[1] {
		t.Errorf("interpolated row should score worst: %v", errs)
	}
}

func TestLoopCancel(t *testing.T) {
	cancel := make(chan struct{})
	close(cancel)

	loop := &Loop{
		Trainer:   newTestTrainer(4, 2, 1),
		Samples:   constantRows(4, 8),
		BatchSize: 4,
		Epochs:    10,
		Rand:      rand.New(rand.NewSource(1)),
		Cancel:    cancel,
	}
	costs, err := loop.Run()
	if err != nil {
		t.Fatal(err)
	}
	if len(costs) != 0 {
		t.Errorf("expected no completed epochs but got %d", len(costs))
	}
}

func TestLoopConfigErrors(t *testing.T) {
	trainer := newTestTrainer(4, 2, 1)
	dataset := constantRows(4, 4)

	loop := &Loop{Trainer: trainer, Samples: dataset, BatchSize: 0, Epochs: 1}
	if _, err := loop.Run(); err == nil {
		t.Error("expected error for non-positive batch size")
	}

	loop = &Loop{Trainer: trainer, Samples: sample.SliceList{}, BatchSize: 4, Epochs: 1}
	if _, err := loop.Run(); err == nil {
		t.Error("expected error for empty dataset")
	}

	loop = &Loop{Trainer: trainer, Samples: dataset, BatchSize: 100, Epochs: 1}
	if _, err := loop.Run(); err == nil {
		t.Error("expected error for batch size above dataset size")
	}
}
