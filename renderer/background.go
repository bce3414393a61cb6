// Package renderer draws the playfield with raylib: sky, pipes, ground and
// birds.
package renderer

import rl "github.com/gen2brain/raylib-go/raylib"

// Background paints a vertical sky gradient behind the playfield.
type Background struct {
	width, height int32
	top, bottom   rl.Color
}

// NewBackground creates a background filling width x height.
func NewBackground(width, height int32) *Background {
	return &Background{
		width:  width,
		height: height,
		top:    rl.Color{R: 78, G: 192, B: 202, A: 255},
		bottom: rl.Color{R: 222, G: 246, B: 232, A: 255},
	}
}

// Draw renders the gradient.
func (b *Background) Draw() {
	rl.DrawRectangleGradientV(0, 0, b.width, b.height, b.top, b.bottom)
}
