package systems

import (
	"math"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/sprite"
)

// Collider tests birds against pipes using the sprite masks.
type Collider struct {
	bird       [sprite.BirdFrameCount]*sprite.Mask
	top        *sprite.Mask
	bottom     *sprite.Mask
	birdHeight float64
}

// NewCollider creates a collider from the atlas masks.
func NewCollider(atlas *sprite.Atlas) *Collider {
	return &Collider{
		bird:       atlas.BirdMask,
		top:        atlas.TopMask,
		bottom:     atlas.BottomMask,
		birdHeight: float64(atlas.BirdHeight()),
	}
}

// BirdHeight returns the height of the bird sprite.
func (c *Collider) BirdHeight() float64 {
	return c.birdHeight
}

// Offsets returns where the top and bottom pipe masks sit relative to the
// bird's top-left corner. Positions are rounded half to even.
func Offsets(pos components.Position, p *Pipe) (dx, topDY, bottomDY int) {
	by := math.RoundToEven(pos.Y)
	dx = int(math.RoundToEven(p.X - pos.X))
	topDY = int(math.RoundToEven(p.Top - by))
	bottomDY = int(math.RoundToEven(p.Bottom - by))
	return dx, topDY, bottomDY
}

// Hit reports whether the bird drawn with the given animation frame overlaps
// either half of the pipe at pixel level.
func (c *Collider) Hit(frame int, pos components.Position, p *Pipe) bool {
	mask := c.bird[frame%len(c.bird)]
	dx, topDY, bottomDY := Offsets(pos, p)
	return mask.Overlaps(c.bottom, dx, bottomDY) || mask.Overlaps(c.top, dx, topDY)
}
