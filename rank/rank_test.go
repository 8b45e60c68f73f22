package rank

import (
	"math"
	"math/rand"
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	order := Rank([]float64{3.0, 1.0, 2.0})
	if !reflect.DeepEqual(order, []int{1, 2, 0}) {
		t.Errorf("expected [1 2 0] but got %v", order)
	}
}

func TestRankSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	errs := make([]float64, 100)
	for i := range errs {
		errs[i] = rng.Float64()
	}
	order := Rank(errs)
	if len(order) != len(errs) {
		t.Fatalf("expected %d indices but got %d", len(errs), len(order))
	}
	for i := 1; i < len(order); i++ {
		if errs[order[i]] < errs[order[i-1]] {
			t.Fatalf("errors out of order at position %d", i)
		}
	}
}

func TestRankStable(t *testing.T) {
	order := Rank([]float64{2, 1, 2, 1, 0})
	if !reflect.DeepEqual(order, []int{4, 1, 3, 0, 2}) {
		t.Errorf("ties should keep index order: got %v", order)
	}
}

func TestViews(t *testing.T) {
	order := Rank([]float64{9, 8, 7, 6, 5, 4, 3, 2, 1, 0})

	if !reflect.DeepEqual(Best(order, 3), []int{9, 8, 7}) {
		t.Errorf("bad best view: %v", Best(order, 3))
	}
	if !reflect.DeepEqual(Worst(order, 3), []int{2, 1, 0}) {
		t.Errorf("bad worst view: %v", Worst(order, 3))
	}
	if !reflect.DeepEqual(Typical(order, 2), []int{5, 4}) {
		t.Errorf("bad typical view: %v", Typical(order, 2))
	}

	if len(Best(order, 100)) != len(order) {
		t.Error("best view should clamp to the ordering length")
	}
	if len(Worst(order, 100)) != len(order) {
		t.Error("worst view should clamp to the ordering length")
	}
	if len(Typical(order, 100)) != len(order) {
		t.Error("typical view should clamp to the ordering length")
	}
}

func TestSummarize(t *testing.T) {
	errs := []float64{1, 2, 3, 4}
	s := Summarize(errs, 0.5)
	if math.Abs(s.Mean-2.5) > 1e-9 {
		t.Errorf("expected mean 2.5 but got %f", s.Mean)
	}
	if math.Abs(s.StdDev-math.Sqrt(5.0/3)) > 1e-9 {
		t.Errorf("unexpected stddev: %f", s.StdDev)
	}
	if s.Cutoff < 1 || s.Cutoff > 4 {
		t.Errorf("cutoff should be within the error range: %f", s.Cutoff)
	}

	if !reflect.DeepEqual(Summarize(nil, 0.5), Summary{}) {
		t.Error("empty input should produce a zero summary")
	}
}
