package neural

import (
	"github.com/pthm-cable/flappy/game"
)

// Encode converts an observation to network inputs. Each distance is divided
// by the playfield height and clamped.
//
// Layout:
//
//	[0] y          [0,1]
//	[1] gap_top    [-1,1]
//	[2] gap_bottom [-1,1]
func Encode(obs game.Observation, playfieldHeight float64) [NumInputs]float32 {
	return [NumInputs]float32{
		clampf(float32(obs.Y/playfieldHeight), 0, 1),
		clampf(float32(obs.GapTop/playfieldHeight), -1, 1),
		clampf(float32(obs.GapBottom/playfieldHeight), -1, 1),
	}
}

// Controller flies a bird with a network.
type Controller struct {
	Net             *FFNN
	PlayfieldHeight float64
}

// NewController wraps nn as a game controller.
func NewController(nn *FFNN, playfieldHeight float64) *Controller {
	if playfieldHeight <= 0 {
		playfieldHeight = 1
	}
	return &Controller{Net: nn, PlayfieldHeight: playfieldHeight}
}

// Decide returns the flap signal for obs.
func (c *Controller) Decide(obs game.Observation) float64 {
	return float64(c.Net.Forward(Encode(obs, c.PlayfieldHeight)))
}

// Capture runs the network on obs and returns every layer.
func (c *Controller) Capture(obs game.Observation) Activations {
	_, act := c.Net.ForwardWithCapture(Encode(obs, c.PlayfieldHeight))
	return act
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
