// Package autorec trains shallow autoencoders on
// fixed-length feature vectors and scores inputs by
// reconstruction error, so that poorly-reconstructed
// rows can be flagged as anomalies.
package autorec

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/unixpickle/anydiff"
	"github.com/unixpickle/anyvec"
	"github.com/unixpickle/anyvec/anyvecsave"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	var a Autoencoder
	serializer.RegisterTypedDeserializer(a.SerializerType(), DeserializeAutoencoder)
}

// An Autoencoder is a two-layer network which projects
// inputs down to a bottleneck and back up to the input
// dimension.
//
// The parameters are owned by the Autoencoder and are
// mutated in place by training steps.
type Autoencoder struct {
	InCount     int
	HiddenCount int

	EncWeights *anydiff.Var
	EncBiases  *anydiff.Var
	DecWeights *anydiff.Var
	DecBiases  *anydiff.Var

	HiddenAct Activation
	OutAct    Activation
}

// DeserializeAutoencoder attempts to deserialize an
// Autoencoder.
func DeserializeAutoencoder(d []byte) (*Autoencoder, error) {
	var encW, encB, decW, decB *anyvecsave.S
	var hiddenAct, outAct Activation
	err := serializer.DeserializeAny(d, &encW, &encB, &decW, &decB, &hiddenAct, &outAct)
	if err != nil {
		return nil, essentials.AddCtx("deserialize Autoencoder", err)
	}
	inCount := decB.Vector.Len()
	hiddenCount := encB.Vector.Len()
	if encW.Vector.Len() != inCount*hiddenCount || decW.Vector.Len() != inCount*hiddenCount {
		return nil, errors.New("deserialize Autoencoder: invalid matrix dimensions")
	}
	return &Autoencoder{
		InCount:     inCount,
		HiddenCount: hiddenCount,
		EncWeights:  anydiff.NewVar(encW.Vector),
		EncBiases:   anydiff.NewVar(encB.Vector),
		DecWeights:  anydiff.NewVar(decW.Vector),
		DecBiases:   anydiff.NewVar(decB.Vector),
		HiddenAct:   hiddenAct,
		OutAct:      outAct,
	}, nil
}

// NewAutoencoder creates a randomized Autoencoder with a
// tanh hidden layer and a sigmoid output layer.
//
// The hidden count should be smaller than the input
// count so that the hidden layer is a bottleneck.
//
// Weights are drawn from rng so that initialization is
// reproducible under a fixed seed.
// If rng is nil, the global random source is used.
func NewAutoencoder(c anyvec.Creator, in, hidden int, rng *rand.Rand) *Autoencoder {
	res := &Autoencoder{
		InCount:     in,
		HiddenCount: hidden,
		EncWeights:  anydiff.NewVar(c.MakeVector(in * hidden)),
		EncBiases:   anydiff.NewVar(c.MakeVector(hidden)),
		DecWeights:  anydiff.NewVar(c.MakeVector(in * hidden)),
		DecBiases:   anydiff.NewVar(c.MakeVector(in)),
		HiddenAct:   Tanh,
		OutAct:      Sigmoid,
	}
	anyvec.Rand(res.EncWeights.Vector, anyvec.Normal, rng)
	res.EncWeights.Vector.Scale(c.MakeNumeric(1 / math.Sqrt(float64(in))))
	anyvec.Rand(res.DecWeights.Vector, anyvec.Normal, rng)
	res.DecWeights.Vector.Scale(c.MakeNumeric(1 / math.Sqrt(float64(hidden))))
	return res
}

// Encode applies the encoder half to a packed batch of
// inputs, producing a packed batch of hidden vectors.
func (a *Autoencoder) Encode(in anydiff.Res, batch int) anydiff.Res {
	weightMat := &anydiff.Matrix{
		Data: a.EncWeights,
		Rows: a.HiddenCount,
		Cols: a.InCount,
	}
	inMat := &anydiff.Matrix{
		Data: in,
		Rows: batch,
		Cols: a.InCount,
	}
	weighted := anydiff.MatMul(false, true, inMat, weightMat)
	return a.HiddenAct.Apply(anydiff.AddRepeated(weighted.Data, a.EncBiases))
}

// Decode applies the decoder half to a packed batch of
// hidden vectors, producing reconstructions.
func (a *Autoencoder) Decode(hidden anydiff.Res, batch int) anydiff.Res {
	weightMat := &anydiff.Matrix{
		Data: a.DecWeights,
		Rows: a.InCount,
		Cols: a.HiddenCount,
	}
	hiddenMat := &anydiff.Matrix{
		Data: hidden,
		Rows: batch,
		Cols: a.HiddenCount,
	}
	weighted := anydiff.MatMul(false, true, hiddenMat, weightMat)
	return a.OutAct.Apply(anydiff.AddRepeated(weighted.Data, a.DecBiases))
}

// Apply reconstructs a packed batch of inputs.
// The input's length must be batch*InCount.
func (a *Autoencoder) Apply(in anydiff.Res, batch int) anydiff.Res {
	if batch*a.InCount != in.Output().Len() {
		panic(fmt.Sprintf("input length should be %d, but got %d",
			batch*a.InCount, in.Output().Len()))
	}
	return a.Decode(a.Encode(in, batch), batch)
}

// Parameters returns the encoder weights and biases
// followed by the decoder weights and biases.
func (a *Autoencoder) Parameters() []*anydiff.Var {
	return []*anydiff.Var{a.EncWeights, a.EncBiases, a.DecWeights, a.DecBiases}
}

// SerializerType returns the unique ID used to serialize
// an Autoencoder with the serializer package.
func (a *Autoencoder) SerializerType() string {
	return "github.com/dirkdupont/autorec.Autoencoder"
}

// Serialize serializes the Autoencoder.
func (a *Autoencoder) Serialize() ([]byte, error) {
	return serializer.SerializeAny(
		&anyvecsave.S{Vector: a.EncWeights.Vector},
		&anyvecsave.S{Vector: a.EncBiases.Vector},
		&anyvecsave.S{Vector: a.DecWeights.Vector},
		&anyvecsave.S{Vector: a.DecBiases.Vector},
		a.HiddenAct,
		a.OutAct,
	)
}
