// Package neural provides the feedforward network that flies a bird.
package neural

import (
	"math"
	"math/rand"
)

// Network dimensions (compile-time constants for array sizing).
const (
	NumInputs  = 3 // y, gap top distance, gap bottom distance
	NumHidden  = 6
	NumOutputs = 1 // flap
)

// FFNN is a simple two-layer feedforward neural network.
type FFNN struct {
	W1 [NumHidden][NumInputs]float32  // input -> hidden weights
	B1 [NumHidden]float32             // hidden biases
	W2 [NumOutputs][NumHidden]float32 // hidden -> output weights
	B2 [NumOutputs]float32            // output biases
}

// NewFFNN creates a randomly initialized network. The output bias starts
// slightly negative so a fresh network mostly glides.
func NewFFNN(rng *rand.Rand) *FFNN {
	nn := &FFNN{}
	// Xavier initialization
	scale1 := float32(math.Sqrt(2.0 / float64(NumInputs)))
	scale2 := float32(math.Sqrt(2.0 / float64(NumHidden)))

	for i := range nn.W1 {
		for j := range nn.W1[i] {
			nn.W1[i][j] = float32(rng.NormFloat64()) * scale1
		}
	}
	for i := range nn.W2 {
		for j := range nn.W2[i] {
			nn.W2[i][j] = float32(rng.NormFloat64()) * scale2
		}
	}
	nn.B2[0] = -0.2

	return nn
}

// Forward computes the flap signal in [0, 1].
func (nn *FFNN) Forward(inputs [NumInputs]float32) float32 {
	var hidden [NumHidden]float32
	for i := 0; i < NumHidden; i++ {
		sum := nn.B1[i]
		for j := 0; j < NumInputs; j++ {
			sum += nn.W1[i][j] * inputs[j]
		}
		hidden[i] = tanh(sum)
	}

	sum := nn.B2[0]
	for j := 0; j < NumHidden; j++ {
		sum += nn.W2[0][j] * hidden[j]
	}
	// raw=0 maps to 0.5, the default jump threshold
	return saturate01(sum*0.5 + 0.5)
}

// saturate01 clamps x to [0, 1].
func saturate01(x float32) float32 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	return x
}

// Activations holds captured intermediate layer values.
type Activations struct {
	Inputs  [NumInputs]float32
	Hidden  [NumHidden]float32
	Outputs [NumOutputs]float32 // after activation
}

// ForwardWithCapture computes the flap signal and captures every layer for
// visualization.
func (nn *FFNN) ForwardWithCapture(inputs [NumInputs]float32) (float32, Activations) {
	act := Activations{Inputs: inputs}
	for i := 0; i < NumHidden; i++ {
		sum := nn.B1[i]
		for j := 0; j < NumInputs; j++ {
			sum += nn.W1[i][j] * inputs[j]
		}
		act.Hidden[i] = tanh(sum)
	}

	sum := nn.B2[0]
	for j := 0; j < NumHidden; j++ {
		sum += nn.W2[0][j] * act.Hidden[j]
	}
	act.Outputs[0] = saturate01(sum*0.5 + 0.5)
	return act.Outputs[0], act
}

// MutateSparse applies sparse per-weight mutation.
// rate: probability each weight mutates (e.g., 0.2)
// sigma: standard deviation of normal perturbation (e.g., 0.3)
// bigRate: probability a mutation is large (e.g., 0.05)
// bigSigma: sigma for large mutations (e.g., 1.0)
// Returns the average absolute delta of all applied mutations.
func (nn *FFNN) MutateSparse(rng *rand.Rand, rate, sigma, bigRate, bigSigma float32) float32 {
	biasRate := rate * 0.5 // biases mutate at half the rate

	var totalDelta float32
	var count int
	perturb := func(w *float32, p float32) {
		if rng.Float32() >= p {
			return
		}
		s := sigma
		if rng.Float32() < bigRate {
			s = bigSigma
		}
		delta := float32(rng.NormFloat64()) * s
		*w += delta
		totalDelta += abs32(delta)
		count++
	}

	for i := range nn.W1 {
		for j := range nn.W1[i] {
			perturb(&nn.W1[i][j], rate)
		}
		perturb(&nn.B1[i], biasRate)
	}
	for i := range nn.W2 {
		for j := range nn.W2[i] {
			perturb(&nn.W2[i][j], rate)
		}
		perturb(&nn.B2[i], biasRate)
	}

	if count == 0 {
		return 0
	}
	return totalDelta / float32(count)
}

// abs32 returns the absolute value of x.
func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// Clone creates a deep copy of the network.
func (nn *FFNN) Clone() *FFNN {
	clone := *nn
	return &clone
}

// tanh uses a fast rational approximation avoiding float64 conversion.
func tanh(x float32) float32 {
	if x > 4 {
		return 1
	}
	if x < -4 {
		return -1
	}
	x2 := x * x
	return x * (27 + x2) / (27 + 9*x2)
}

// BrainWeights holds flattened network weights for serialization.
type BrainWeights struct {
	W1 []float32 `json:"w1"` // [NumHidden * NumInputs]
	B1 []float32 `json:"b1"` // [NumHidden]
	W2 []float32 `json:"w2"` // [NumOutputs * NumHidden]
	B2 []float32 `json:"b2"` // [NumOutputs]
}

// MarshalWeights flattens the network weights for JSON serialization.
func (nn *FFNN) MarshalWeights() BrainWeights {
	bw := BrainWeights{
		W1: make([]float32, 0, NumHidden*NumInputs),
		B1: append([]float32(nil), nn.B1[:]...),
		W2: make([]float32, 0, NumOutputs*NumHidden),
		B2: append([]float32(nil), nn.B2[:]...),
	}
	for i := range nn.W1 {
		bw.W1 = append(bw.W1, nn.W1[i][:]...)
	}
	for i := range nn.W2 {
		bw.W2 = append(bw.W2, nn.W2[i][:]...)
	}
	return bw
}

// UnmarshalWeights restores network weights from flattened form. Missing
// trailing values leave the current weights in place.
func (nn *FFNN) UnmarshalWeights(bw BrainWeights) {
	for i := 0; i < NumHidden; i++ {
		for j := 0; j < NumInputs; j++ {
			if k := i*NumInputs + j; k < len(bw.W1) {
				nn.W1[i][j] = bw.W1[k]
			}
		}
	}
	copy(nn.B1[:], bw.B1)
	for i := 0; i < NumOutputs; i++ {
		for j := 0; j < NumHidden; j++ {
			if k := i*NumHidden + j; k < len(bw.W2) {
				nn.W2[i][j] = bw.W2[k]
			}
		}
	}
	copy(nn.B2[:], bw.B2)
}
