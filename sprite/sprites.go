package sprite

import (
	"image"
	"image/color"
	"math"
)

// Sprite dimensions, matching the classic assets drawn at 2x scale.
const (
	BirdWidth  = 68
	BirdHeight = 48
	PipeWidth  = 104
	PipeHeight = 640
	BaseWidth  = 672
	BaseHeight = 224

	// BirdFrameCount is the number of wing positions in the flap cycle.
	BirdFrameCount = 3

	pipeLip   = 48 // rows of the full-width lip
	pipeInset = 4  // columns the pipe body is narrower than the lip on each side
)

var (
	birdBody    = color.RGBA{R: 250, G: 200, B: 40, A: 255}
	birdWing    = color.RGBA{R: 255, G: 240, B: 200, A: 255}
	birdEye     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	birdBeak    = color.RGBA{R: 240, G: 110, B: 40, A: 255}
	pipeFill    = color.RGBA{R: 115, G: 190, B: 45, A: 255}
	pipeShade   = color.RGBA{R: 85, G: 140, B: 30, A: 255}
	baseGrass   = color.RGBA{R: 130, G: 200, B: 70, A: 255}
	baseDirt    = color.RGBA{R: 222, G: 216, B: 149, A: 255}
	baseStripe  = color.RGBA{R: 200, G: 190, B: 120, A: 255}
	transparent = color.RGBA{}
)

// wingOffsets are the vertical wing positions for each flap frame.
var wingOffsets = [BirdFrameCount]float64{-7, 0, 7}

// inEllipse reports whether pixel (x, y) lies inside the ellipse centred at
// (cx, cy) with radii rx, ry, sampling at the pixel centre.
func inEllipse(x, y int, cx, cy, rx, ry float64) bool {
	dx := (float64(x) + 0.5 - cx) / rx
	dy := (float64(y) + 0.5 - cy) / ry
	return dx*dx+dy*dy <= 1
}

// BirdFrame draws one frame of the flap cycle.
func BirdFrame(frame int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, BirdWidth, BirdHeight))
	wingY := 26 + wingOffsets[frame%BirdFrameCount]

	for y := 0; y < BirdHeight; y++ {
		for x := 0; x < BirdWidth; x++ {
			c := transparent
			switch {
			case inEllipse(x, y, 50, 16, 6, 6):
				c = birdEye
			case x >= 54 && x < 66 && y >= 24 && y < 32:
				c = birdBeak
			case inEllipse(x, y, 18, wingY, 12, 7):
				c = birdWing
			case inEllipse(x, y, 32, 24, 30, 21):
				c = birdBody
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Pipe draws the bottom pipe: lip at the top, body below.
func Pipe() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, PipeWidth, PipeHeight))
	for y := 0; y < PipeHeight; y++ {
		for x := 0; x < PipeWidth; x++ {
			c := transparent
			if y < pipeLip || (x >= pipeInset && x < PipeWidth-pipeInset) {
				c = pipeFill
				if x%26 < 6 {
					c = pipeShade
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Base draws one tile of the scrolling ground.
func Base() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, BaseWidth, BaseHeight))
	for y := 0; y < BaseHeight; y++ {
		for x := 0; x < BaseWidth; x++ {
			c := baseDirt
			switch {
			case y < 16:
				c = baseGrass
				if (x+y)%24 < 12 {
					c = pipeShade
				}
			case int(math.Mod(float64(x+y), 48)) < 4:
				c = baseStripe
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// FlipVertical returns a copy of img mirrored top to bottom.
func FlipVertical(img *image.RGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		srcY := b.Max.Y - 1 - (y - b.Min.Y)
		copy(out.Pix[out.PixOffset(b.Min.X, y):out.PixOffset(b.Max.X, y)],
			img.Pix[img.PixOffset(b.Min.X, srcY):img.PixOffset(b.Max.X, srcY)])
	}
	return out
}

// Atlas holds every sprite image together with its collision mask.
type Atlas struct {
	Bird       [BirdFrameCount]*image.RGBA
	BirdMask   [BirdFrameCount]*Mask
	PipeTop    *image.RGBA
	PipeBottom *image.RGBA
	TopMask    *Mask
	BottomMask *Mask
	Base       *image.RGBA
}

// NewAtlas draws all sprites and builds their masks.
func NewAtlas() *Atlas {
	a := &Atlas{}
	for i := range a.Bird {
		a.Bird[i] = BirdFrame(i)
		a.BirdMask[i] = FromImage(a.Bird[i], DefaultThreshold)
	}
	a.PipeBottom = Pipe()
	a.PipeTop = FlipVertical(a.PipeBottom)
	a.BottomMask = FromImage(a.PipeBottom, DefaultThreshold)
	a.TopMask = a.BottomMask.FlipVertical()
	a.Base = Base()
	return a
}

// PipeWidth returns the width of the pipe sprites.
func (a *Atlas) PipeWidth() int { return a.PipeBottom.Bounds().Dx() }

// PipeHeight returns the height of the pipe sprites.
func (a *Atlas) PipeHeight() int { return a.PipeTop.Bounds().Dy() }

// BirdHeight returns the height of the bird frames.
func (a *Atlas) BirdHeight() int { return a.Bird[0].Bounds().Dy() }

// BaseWidth returns the width of one ground tile.
func (a *Atlas) BaseWidth() int { return a.Base.Bounds().Dx() }
