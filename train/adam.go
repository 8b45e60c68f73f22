package train

import (
	"math"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
)

const (
	adamDefaultDecayRate1 = 0.9
	adamDefaultDecayRate2 = 0.999
	adamDefaultDamping    = 1e-8
)

// Adam implements the adaptive moments SGD technique
// described in https://arxiv.org/pdf/1412.6980.pdf.
type Adam struct {
	// These are decay rates for the first and second
	// moments of the gradient.
	// If these are 0, defaults as suggested in the
	// original Adam paper are used.
	DecayRate1, DecayRate2 float64

	// Damping is used to prevent divisions by zero.
	// This should be very small.
	// If it is 0, a default is used.
	Damping float64

	firstMoment  anydiff.Grad
	secondMoment anydiff.Grad
	iteration    float64
}

// Transform transforms the gradient using Adam.
//
// This is not thread-safe.
func (a *Adam) Transform(grad anydiff.Grad) anydiff.Grad {
	rate1 := valueOrDefault(a.DecayRate1, adamDefaultDecayRate1)
	rate2 := valueOrDefault(a.DecayRate2, adamDefaultDecayRate2)
	if a.firstMoment == nil {
		a.firstMoment = zeroGrad(grad)
		a.secondMoment = zeroGrad(grad)
	}

	for v, g := range grad {
		moment := a.firstMoment[v]
		moment.Scale(moment.Creator().MakeNumeric(rate1))
		update := g.Copy()
		update.Scale(update.Creator().MakeNumeric(1 - rate1))
		moment.Add(update)

		sqMoment := a.secondMoment[v]
		sqMoment.Scale(sqMoment.Creator().MakeNumeric(rate2))
		sq := g.Copy()
		sq.Mul(g)
		sq.Scale(sq.Creator().MakeNumeric(1 - rate2))
		sqMoment.Add(sq)
	}

	a.iteration++
	scaling := math.Sqrt(1-math.Pow(rate2, a.iteration)) /
		(1 - math.Pow(rate1, a.iteration))
	damping := valueOrDefault(a.Damping, adamDefaultDamping)
	for v, g := range grad {
		g.Set(a.firstMoment[v])
		g.Scale(g.Creator().MakeNumeric(scaling))

		divisor := a.secondMoment[v].Copy()
		anyvec.Pow(divisor, divisor.Creator().MakeNumeric(0.5))
		divisor.AddScalar(divisor.Creator().MakeNumeric(damping))
		g.Div(divisor)
	}

	return grad
}

func valueOrDefault(val, def float64) float64 {
	if val != 0 {
		return val
	}
	return def
}

func zeroGrad(g anydiff.Grad) anydiff.Grad {
	res := anydiff.Grad{}
	for v, vec := range g {
		res[v] = vec.Creator().MakeVector(vec.Len())
	}
	return res
}

func scaleGrad(g anydiff.Grad, s float64) {
	for _, v := range g {
		g.Scale(v.Creator().MakeNumeric(s))
		return
	}
}
