package systems

// Ground is the scrolling floor: two tiles laid end to end that leapfrog each
// other as they leave the screen.
type Ground struct {
	X1, X2   float64
	Y        float64
	Width    float64
	Velocity float64
}

// NewGround creates a ground strip at y from tiles of the given width.
func NewGround(y, width, velocity float64) *Ground {
	return &Ground{
		X1:       0,
		X2:       width,
		Y:        y,
		Width:    width,
		Velocity: velocity,
	}
}

// Move scrolls both tiles and wraps any tile that has left the screen to
// just behind the other.
func (g *Ground) Move() {
	g.X1 -= g.Velocity
	g.X2 -= g.Velocity

	if g.X1+g.Width < 0 {
		g.X1 = g.X2 + g.Width
	}
	if g.X2+g.Width < 0 {
		g.X2 = g.X1 + g.Width
	}
}

// Covers reports whether the two tiles span [0, view) without a gap.
func (g *Ground) Covers(view float64) bool {
	left, right := min(g.X1, g.X2), max(g.X1, g.X2)
	if right > left+g.Width {
		return false
	}
	return left <= 0 && right+g.Width >= view
}
