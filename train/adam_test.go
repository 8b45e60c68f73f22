package train

import (
	"math"
	"testing"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec/anyvec32"
)

func TestAdamFirstStep(t *testing.T) {
	v := anydiff.NewVar(anyvec32.MakeVectorData([]float32{0, 0}))
	grad := anydiff.Grad{
		v: anyvec32.MakeVectorData([]float32{2, -3}),
	}

	// With zero-initialized moments, the bias-corrected
	// first step is approximately the sign of the
	// gradient.
	out := (&Adam{}).Transform(grad)
	expected := []float32{1, -1}
	for i, x := range out[v].Data().([]float32) {
		if math.Abs(float64(x-expected[i])) > 1e-2 {
			t.Errorf("component %d: expected %f but got %f", i, expected[i], x)
		}
	}
}

func TestAdamMomentDecay(t *testing.T) {
	v := anydiff.NewVar(anyvec32.MakeVectorData([]float32{0}))
	a := &Adam{}

	// Feed the same gradient twice; the direction must be
	// preserved and the magnitude must stay near 1.
	for i := 0; i < 2; i++ {
		grad := anydiff.Grad{
			v: anyvec32.MakeVectorData([]float32{0.5}),
		}
		out := a.Transform(grad)
		x := out[v].Data().([]float32)[0]
		if math.Abs(float64(x)-1) > 1e-2 {
			t.Errorf("step %d: expected magnitude 1 but got %f", i, x)
		}
	}
}
