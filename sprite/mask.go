// Package sprite provides the game's sprite images and the bit masks used for
// pixel-accurate collision.
package sprite

import (
	"fmt"
	"image"
	"math/bits"
)

// DefaultThreshold is the alpha value a pixel must exceed to be solid.
const DefaultThreshold = 127

// Mask is a packed 1-bit-per-pixel occupancy grid. Bits past the width of a row
// are always zero.
type Mask struct {
	w, h   int
	stride int // words per row
	bits   []uint64
}

// NewMask creates an empty mask of the given size.
func NewMask(w, h int) *Mask {
	if w < 0 || h < 0 {
		panic(fmt.Sprintf("sprite: invalid mask size %dx%d", w, h))
	}
	stride := (w + 63) / 64
	return &Mask{w: w, h: h, stride: stride, bits: make([]uint64, stride*h)}
}

// FromImage builds a mask from every pixel whose alpha exceeds threshold.
func FromImage(img image.Image, threshold uint8) *Mask {
	b := img.Bounds()
	m := NewMask(b.Dx(), b.Dy())
	limit := uint32(threshold) * 0x101
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > limit {
				m.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return m
}

// Width returns the mask width in pixels.
func (m *Mask) Width() int { return m.w }

// Height returns the mask height in pixels.
func (m *Mask) Height() int { return m.h }

// Bounds returns the mask rectangle anchored at the origin.
func (m *Mask) Bounds() image.Rectangle { return image.Rect(0, 0, m.w, m.h) }

// Set marks the pixel at (x, y) as solid. Out-of-range coordinates are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
}

// Get reports whether the pixel at (x, y) is solid.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of solid pixels.
func (m *Mask) Count() int {
	n := 0
	for _, w := range m.bits {
		n += bits.OnesCount64(w)
	}
	return n
}

// FlipVertical returns a copy of the mask mirrored top to bottom.
func (m *Mask) FlipVertical() *Mask {
	out := NewMask(m.w, m.h)
	for y := 0; y < m.h; y++ {
		copy(out.bits[(m.h-1-y)*m.stride:(m.h-y)*m.stride], m.bits[y*m.stride:(y+1)*m.stride])
	}
	return out
}

// window returns up to 64 bits of row y starting at column x. Columns outside
// the mask read as zero.
func (m *Mask) window(y, x int) uint64 {
	if x >= m.w || x <= -64 {
		return 0
	}
	if x < 0 {
		return m.window(y, 0) << uint(-x)
	}
	row := m.bits[y*m.stride : (y+1)*m.stride]
	i, off := x/64, uint(x%64)
	v := row[i] >> off
	if off > 0 && i+1 < len(row) {
		v |= row[i+1] << (64 - off)
	}
	return v
}

// Overlap reports the first solid pixel shared by m and other when other's
// top-left corner sits at (dx, dy) in m's coordinates. The returned point is
// in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) (image.Point, bool) {
	x0, y0 := max(0, dx), max(0, dy)
	x1, y1 := min(m.w, dx+other.w), min(m.h, dy+other.h)
	if x0 >= x1 || y0 >= y1 {
		return image.Point{}, false
	}

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x += 64 {
			n := x1 - x
			keep := ^uint64(0)
			if n < 64 {
				keep = (1 << uint(n)) - 1
			}
			hit := m.window(y, x) & other.window(y-dy, x-dx) & keep
			if hit != 0 {
				return image.Pt(x+bits.TrailingZeros64(hit), y), true
			}
		}
	}
	return image.Point{}, false
}

// Overlaps is Overlap without the contact point.
func (m *Mask) Overlaps(other *Mask, dx, dy int) bool {
	_, ok := m.Overlap(other, dx, dy)
	return ok
}
