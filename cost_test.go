package autorec

import (
	"math"
	"testing"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anydiff/anydifftest"
	"github.com/unixpickle/anyvec/anyvec32"
)

func TestMSE(t *testing.T) {
	desired := anydiff.NewConst(anyvec32.MakeVectorData([]float32{
		1, 0.5, 2,
		3, -1, 2,
	}))
	actual := anydiff.NewConst(anyvec32.MakeVectorData([]float32{
		-1, -2, -3,
		-2, -3, -1,
	}))
	expected := []float32{11 + 3.0/4, 12 + 2.0/3}

	out := MSE{}.Cost(desired, actual, 2).Output().Data().([]float32)
	if len(out) != len(expected) {
		t.Fatalf("expected %d costs but got %d", len(expected), len(out))
	}
	for i, x := range expected {
		a := out[i]
		if math.IsNaN(float64(a)) || math.Abs(float64(x-a)) > 1e-3 {
			t.Errorf("component %d: expected %f but got %f", i, x, a)
		}
	}
}

func TestMSEProp(t *testing.T) {
	v1 := anydiff.NewVar(anyvec32.MakeVectorData([]float32{1, 0.5, 2, 3, -1, 2}))
	v2 := anydiff.NewVar(anyvec32.MakeVectorData([]float32{-1, -2, -3, -2, -3, -1}))

	checker := &anydifftest.ResChecker{
		F: func() anydiff.Res {
			return MSE{}.Cost(v1, v2, 2)
		},
		V: []*anydiff.Var{v1, v2},
	}
	checker.FullCheck(t)
}
