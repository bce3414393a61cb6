// Package systems contains the per-tick game rules: bird flight, pipes, the
// scrolling ground and collision.
package systems

import (
	"fmt"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/config"
)

// FlightModel applies the bird's vertical motion and tilt rules.
type FlightModel struct {
	JumpVelocity     float64
	Gravity          float64
	MaxDrop          float64
	RiseBias         float64
	MaxRotation      float64
	MinRotation      float64
	RotationVelocity float64
	TiltThreshold    float64
	DiveTilt         float64
	AnimationTime    int
}

// NewFlightModel creates a flight model from the bird config.
func NewFlightModel(cfg *config.Config) FlightModel {
	b := cfg.Bird
	return FlightModel{
		JumpVelocity:     b.JumpVelocity,
		Gravity:          b.Gravity,
		MaxDrop:          b.MaxDrop,
		RiseBias:         b.RiseBias,
		MaxRotation:      b.MaxRotation,
		MinRotation:      b.MinRotation,
		RotationVelocity: b.RotationVelocity,
		TiltThreshold:    b.TiltThreshold,
		DiveTilt:         b.DiveTilt,
		AnimationTime:    b.AnimationTime,
	}
}

// Displacement returns the vertical step taken t ticks after a jump with the
// given velocity. Downward steps are capped at MaxDrop; upward steps are
// exaggerated by RiseBias.
func (m FlightModel) Displacement(velocity float64, t int) float64 {
	if t < 0 {
		panic(fmt.Sprintf("systems: negative tick count %d", t))
	}
	tf := float64(t)
	d := velocity*tf + m.Gravity*tf*tf
	if d >= m.MaxDrop {
		d = m.MaxDrop
	}
	if d < 0 {
		d -= m.RiseBias
	}
	return d
}

// Jump resets the bird's velocity to the jump impulse and records the current
// height as the tilt reference.
func (m FlightModel) Jump(pos *components.Position, fl *components.Flight) {
	fl.Velocity = m.JumpVelocity
	fl.Ticks = 0
	fl.Height = pos.Y
}

// Advance moves the bird one tick and updates its tilt. Returns the step taken.
func (m FlightModel) Advance(pos *components.Position, fl *components.Flight) float64 {
	fl.Ticks++
	d := m.Displacement(fl.Velocity, fl.Ticks)
	pos.Y += d

	// Nose up while rising or still near the jump height, then dive
	if d < 0 || pos.Y < fl.Height+m.TiltThreshold {
		if fl.Tilt < m.MaxRotation {
			fl.Tilt = m.MaxRotation
		}
	} else if fl.Tilt > m.MinRotation {
		fl.Tilt = max(fl.Tilt-m.RotationVelocity, m.MinRotation)
	}
	return d
}

// Animate steps the wing flap cycle (frames 0,1,2,1,0). A diving bird holds
// its wings level on frame 1.
func (m FlightModel) Animate(anim *components.Animation, fl *components.Flight) {
	t := m.AnimationTime
	anim.Count++

	switch {
	case anim.Count < t:
		anim.Frame = 0
	case anim.Count < t*2:
		anim.Frame = 1
	case anim.Count < t*3:
		anim.Frame = 2
	case anim.Count < t*4:
		anim.Frame = 1
	default:
		anim.Frame = 0
		anim.Count = 0
	}

	if fl.Tilt <= m.DiveTilt {
		anim.Frame = 1
		anim.Count = t * 2
	}
}
