package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flappy/game"
)

// HUDData holds the numbers drawn over the playfield.
type HUDData struct {
	Generation  int
	Score       int
	Alive       int
	Population  int
	BestFitness float64 // best of the previous generation
	Paused      bool
}

// HUD draws the score and generation counters over the playfield.
type HUD struct {
	width int32 // playfield width
}

// NewHUD creates a HUD for a playfield of the given width.
func NewHUD(width int32) *HUD {
	return &HUD{width: width}
}

// Draw renders the HUD: score top right, generation and alive count top left.
func (h *HUD) Draw(data HUDData) {
	score := fmt.Sprintf("Score: %d", data.Score)
	DrawOutlined(score, h.width-rl.MeasureText(score, 30)-15, 10, 30, rl.White)

	DrawOutlined(fmt.Sprintf("Gen: %d", data.Generation), 10, 10, 30, rl.White)
	DrawOutlined(fmt.Sprintf("Alive: %d/%d", data.Alive, data.Population), 10, 45, 24, rl.White)
	if data.Generation > 0 {
		DrawOutlined(fmt.Sprintf("Last best: %.1f", data.BestFitness), 10, 75, 20, rl.White)
	}

	if data.Paused {
		text := "PAUSED"
		DrawOutlined(text, (h.width-rl.MeasureText(text, 40))/2, 300, 40, rl.Yellow)
	}
}

// PerfPanel draws the per-phase tick timing breakdown.
type PerfPanel struct {
	renderer *Renderer
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel() *PerfPanel {
	return &PerfPanel{renderer: NewRenderer()}
}

// Draw renders the panel at (x, y) and returns the Y below it.
func (p *PerfPanel) Draw(x, y, width int32, perf *game.PerfStats) int32 {
	r := p.renderer
	y = r.DrawSectionHeader(x, y, "Tick timing")

	total := perf.Total()
	y = r.DrawLabelValue(x, y, "Tick", total.Round(time.Microsecond).String())
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", rl.GetFPS()))

	for _, phase := range perf.Phases() {
		var frac float32
		if total > 0 {
			frac = float32(perf.Avg(phase)) / float32(total)
		}
		y = r.DrawBar(x, y, phase, frac, fmt.Sprintf("%.0f%%", frac*100), width)
	}
	return y
}
