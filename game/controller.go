// Package game runs episodes of the pipe game: it maps a population of
// controllers onto birds, steps the world tick by tick and turns game events
// into fitness.
package game

import (
	"context"

	"github.com/pthm-cable/flappy/systems"
)

// Observation is what a controller sees each tick. Distances are signed:
// GapTop is negative while the bird is above the top edge of the gap.
type Observation struct {
	Y         float64 // bird top edge
	GapTop    float64 // Y - gap top edge
	GapBottom float64 // Y - gap bottom edge
}

// NewObservation measures a bird at y against the pipe it is approaching.
func NewObservation(y float64, next *systems.Pipe) Observation {
	return Observation{
		Y:         y,
		GapTop:    y - next.Height,
		GapBottom: y - next.Bottom,
	}
}

// Controller decides whether a bird flaps. A signal above the jump threshold
// flaps; signals must be finite and in [0, 1].
type Controller interface {
	Decide(obs Observation) float64
}

// ControllerFunc adapts a function to Controller.
type ControllerFunc func(obs Observation) float64

// Decide calls f(obs).
func (f ControllerFunc) Decide(obs Observation) float64 { return f(obs) }

// Hook observes the episode once per tick, after all rules have run.
// The frame and its slices are reused; hooks must copy what they keep.
type Hook interface {
	Observe(f *Frame)
}

// HookFunc adapts a function to Hook.
type HookFunc func(f *Frame)

// Observe calls h(f).
func (h HookFunc) Observe(f *Frame) { h(f) }

// Gate is an optional Hook extension consulted between ticks. Wait returns
// when the next tick may run; a viewer holds it while paused.
type Gate interface {
	Wait(ctx context.Context)
}
