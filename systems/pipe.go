package systems

import (
	"fmt"

	"github.com/pthm-cable/flappy/config"
)

// Rand is the random source used to place pipe gaps. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PipeGeometry holds the fixed shape and motion of every pipe.
type PipeGeometry struct {
	Gap          float64
	Velocity     float64
	MinHeight    int
	MaxHeight    int // exclusive
	Width        float64
	SpriteHeight float64
}

// NewPipeGeometry combines the pipe config with the pipe sprite size.
func NewPipeGeometry(cfg *config.Config, width, spriteHeight int) PipeGeometry {
	return PipeGeometry{
		Gap:          cfg.Pipe.Gap,
		Velocity:     cfg.Pipe.Velocity,
		MinHeight:    cfg.Pipe.MinHeight,
		MaxHeight:    cfg.Pipe.MaxHeight,
		Width:        float64(width),
		SpriteHeight: float64(spriteHeight),
	}
}

// Pipe is one top/bottom pipe pair with a gap between them.
type Pipe struct {
	X      float64
	Width  float64
	Height float64 // y of the gap's top edge
	Top    float64 // y of the top pipe sprite
	Bottom float64 // y of the bottom pipe sprite (the gap's bottom edge)
	Passed bool
}

// NewPipe creates a pipe at x with a gap height drawn from the geometry's range.
func NewPipe(x float64, rng Rand, g PipeGeometry) *Pipe {
	span := g.MaxHeight - g.MinHeight
	if span <= 0 {
		panic(fmt.Sprintf("systems: empty pipe height range [%d, %d)", g.MinHeight, g.MaxHeight))
	}
	h := float64(g.MinHeight + rng.Intn(span))
	return &Pipe{
		X:      x,
		Width:  g.Width,
		Height: h,
		Top:    h - g.SpriteHeight,
		Bottom: h + g.Gap,
	}
}

// Move scrolls the pipe left by velocity.
func (p *Pipe) Move(velocity float64) {
	p.X -= velocity
}

// Right returns the x of the pipe's trailing edge.
func (p *Pipe) Right() float64 {
	return p.X + p.Width
}

// OffScreen reports whether the pipe has scrolled fully past the left edge.
func (p *Pipe) OffScreen() bool {
	return p.Right() < 0
}
