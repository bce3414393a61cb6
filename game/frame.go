package game

import (
	"github.com/pthm-cable/flappy/systems"
)

// AgentView is a read-only snapshot of one live bird.
type AgentView struct {
	Index   int // position in the episode's controller list
	X, Y    float64
	Tilt    float64
	Jump    float64 // velocity of the last jump
	Since   int     // ticks since the last jump
	Frame   int     // animation frame
	Fitness float64
	Ticks   int
}

// Frame is the per-tick snapshot handed to hooks.
type Frame struct {
	Agents     []AgentView    // live birds in population order
	Pipes      []systems.Pipe // copies, left to right
	Ground     systems.Ground
	Lookahead  int // index into Pipes the controllers looked at
	Score      int
	Generation int
	Tick       int
	Alive      int
}

// Leader returns the first live bird, if any.
func (f *Frame) Leader() (AgentView, bool) {
	if len(f.Agents) == 0 {
		return AgentView{}, false
	}
	return f.Agents[0], true
}
