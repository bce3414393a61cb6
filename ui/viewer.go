package ui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/evolve"
	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/neural"
	"github.com/pthm-cable/flappy/renderer"
	"github.com/pthm-cable/flappy/sprite"
)

// Viewer draws episodes as they run. It is a game.Hook and game.Gate: the
// harness hands it every tick and it draws once every Speed ticks, holding
// the harness between ticks while paused. All raylib calls happen inside
// Wait, on the goroutine running the episode, which must be the one that
// opened the window.
type Viewer struct {
	playW, playH int32
	panelW       int32

	background *renderer.Background
	scene      *renderer.Scene
	hud        *HUD
	controls   *ControlPanel
	perfPanel  *PerfPanel
	leader     *LeaderPanel
	renderer   *Renderer
	perf       *game.PerfStats

	cancel      context.CancelFunc
	frame       *game.Frame // latest tick, valid until the next one
	controllers []game.Controller
	pending     int
	lastBest    float64
}

// NewViewer creates a viewer for an open window. cancel is called when the
// window is closed.
func NewViewer(cfg *config.Config, atlas *sprite.Atlas, cancel context.CancelFunc) *Viewer {
	playW, playH := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	return &Viewer{
		playW:      playW,
		playH:      playH,
		panelW:     int32(cfg.Screen.PanelWidth),
		background: renderer.NewBackground(playW, playH),
		scene:      renderer.NewScene(atlas),
		hud:        NewHUD(playW),
		controls:   NewControlPanel(64),
		perfPanel:  NewPerfPanel(),
		leader:     NewLeaderPanel(),
		renderer:   NewRenderer(),
		cancel:     cancel,
	}
}

// SetPerf attaches the harness timings shown in the sidebar.
func (v *Viewer) SetPerf(p *game.PerfStats) { v.perf = p }

// Watch wraps eval so the viewer knows which controllers fly each episode.
func (v *Viewer) Watch(eval evolve.Evaluator) evolve.Evaluator {
	return evolve.EvaluatorFunc(func(ctx context.Context, generation int, ctrls []game.Controller) game.Result {
		v.controllers = ctrls
		v.pending = 0
		return eval.RunEpisode(ctx, generation, ctrls)
	})
}

// Record notes a finished generation for the HUD.
func (v *Viewer) Record(g evolve.Generation) {
	v.lastBest = g.BestFitness
}

// Observe keeps the latest frame.
func (v *Viewer) Observe(f *game.Frame) {
	v.frame = f
}

// Wait draws a frame once every Speed ticks and blocks while paused. Closing
// the window cancels the run.
func (v *Viewer) Wait(ctx context.Context) {
	v.pending++
	if v.pending < v.controls.Speed() && !v.controls.Paused() {
		return
	}
	v.pending = 0

	for {
		v.controls.HandleKeys()
		v.Draw()
		if rl.WindowShouldClose() {
			v.cancel()
			return
		}
		if ctx.Err() != nil || !v.controls.Paused() {
			return
		}
	}
}

// Draw renders one window frame. raylib paces it to the target FPS.
func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.background.Draw()
	if f := v.frame; f != nil {
		v.scene.Draw(f)
		v.hud.Draw(HUDData{
			Generation:  f.Generation,
			Score:       f.Score,
			Alive:       f.Alive,
			Population:  len(v.controllers),
			BestFitness: v.lastBest,
			Paused:      v.controls.Paused(),
		})
	}
	v.drawSidebar()

	rl.EndDrawing()
}

func (v *Viewer) drawSidebar() {
	if v.panelW <= 0 {
		return
	}
	r := v.renderer
	pad := r.Theme.Padding
	r.DrawPanel(v.playW, 0, v.panelW, v.playH)

	x, w := v.playW+pad, v.panelW-2*pad
	y := v.controls.Draw(x, pad, w)

	if v.perf != nil {
		y = v.perfPanel.Draw(x, y+pad, w, v.perf)
	}
	if v.frame != nil {
		if a, ok := v.frame.Leader(); ok {
			y = v.leader.Draw(x, y+pad, w, a)
		}
	}

	v.scene.ShowLeader = v.controls.ShowNetwork()
	if v.controls.ShowNetwork() {
		y = r.DrawSectionHeader(x, y+pad, "Leader network")
		nn, act := v.leaderActivations()
		DrawNetworkDiagram(x, y, w, 220, nn, act)
	}
}

// leaderActivations replays the leader's view of the next pipe through its
// network. Non-network controllers have nothing to show.
func (v *Viewer) leaderActivations() (*neural.FFNN, *neural.Activations) {
	f := v.frame
	if f == nil || len(f.Pipes) == 0 {
		return nil, nil
	}
	leader, ok := f.Leader()
	if !ok || leader.Index >= len(v.controllers) {
		return nil, nil
	}
	ctrl, ok := v.controllers[leader.Index].(*neural.Controller)
	if !ok {
		return nil, nil
	}
	next := &f.Pipes[min(f.Lookahead, len(f.Pipes)-1)]
	act := ctrl.Capture(game.NewObservation(leader.Y, next))
	return ctrl.Net, &act
}

// Unload frees GPU resources.
func (v *Viewer) Unload() {
	v.scene.Unload()
}
