// Package components defines ECS components for the simulation.
package components

// Position represents an agent's position in playfield units.
// X stays fixed for an episode; the world scrolls past the agent instead.
type Position struct {
	X, Y float64
}

// Flight holds the vertical motion state between jumps.
type Flight struct {
	Velocity float64 // velocity set by the last jump
	Ticks    int     // ticks since the last jump
	Height   float64 // Y at the last jump, reference for tilt
	Tilt     float64 // degrees, positive is nose up
}

// Animation tracks the wing flap cycle. Frame selects both the drawn sprite
// and the collision mask.
type Animation struct {
	Count int
	Frame int
}

// Pilot links an agent to its controller by position in the episode's
// controller list.
type Pilot struct {
	Index int
}
