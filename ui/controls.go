package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlPanel holds the viewer's playback state and draws the widgets that
// change it.
type ControlPanel struct {
	renderer    *Renderer
	paused      bool
	speed       float32 // ticks per drawn frame
	maxSpeed    float32
	showNetwork bool
}

// NewControlPanel creates a panel whose speed slider tops out at maxSpeed
// ticks per frame.
func NewControlPanel(maxSpeed int) *ControlPanel {
	return &ControlPanel{
		renderer:    NewRenderer(),
		speed:       1,
		maxSpeed:    float32(max(maxSpeed, 1)),
		showNetwork: true,
	}
}

// Paused reports whether playback is held.
func (c *ControlPanel) Paused() bool { return c.paused }

// Speed returns the number of ticks to run per drawn frame.
func (c *ControlPanel) Speed() int { return max(1, int(c.speed+0.5)) }

// ShowNetwork reports whether the leader's network is drawn.
func (c *ControlPanel) ShowNetwork() bool { return c.showNetwork }

// HandleKeys applies keyboard shortcuts: space pauses, up and down change
// speed, N toggles the network view.
func (c *ControlPanel) HandleKeys() {
	if rl.IsKeyPressed(rl.KeySpace) || rl.IsKeyPressed(rl.KeyP) {
		c.paused = !c.paused
	}
	if rl.IsKeyPressed(rl.KeyUp) {
		c.speed = min(c.maxSpeed, float32(c.Speed()*2))
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		c.speed = max(1, float32(c.Speed()/2))
	}
	if rl.IsKeyPressed(rl.KeyN) {
		c.showNetwork = !c.showNetwork
	}
}

// Draw renders the widgets at (x, y) and returns the Y below them.
func (c *ControlPanel) Draw(x, y, width int32) int32 {
	r := c.renderer
	y = r.DrawSectionHeader(x, y, "Controls")

	fx, fw := float32(x), float32(width)
	label := "Pause"
	if c.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: fx, Y: float32(y), Width: 100, Height: 26}, label) {
		c.paused = !c.paused
	}
	y += 34

	rl.DrawText(fmt.Sprintf("Speed: %dx", c.Speed()), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += r.Theme.LineHeight
	c.speed = gui.SliderBar(
		rl.Rectangle{X: fx + 20, Y: float32(y), Width: fw - 60, Height: 18},
		"1", fmt.Sprintf("%.0f", c.maxSpeed),
		c.speed, 1, c.maxSpeed,
	)
	y += 28

	c.showNetwork = gui.CheckBox(rl.Rectangle{X: fx, Y: float32(y), Width: 16, Height: 16}, "Show network", c.showNetwork)
	y += 26

	rl.DrawText("[Space] pause  [Up/Down] speed  [N] network", x, y, 10, rl.Gray)
	return y + r.Theme.LineHeight
}
