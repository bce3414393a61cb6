package game

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/config"
)

// fixedHeight always places the gap top edge at height.
type fixedHeight struct {
	height, min int
}

func (f fixedHeight) Intn(n int) int { return f.height - f.min }

func testHarness(t testing.TB, height int, opts Options) *Harness {
	t.Helper()
	cfg := config.Default()
	if opts.Rand == nil {
		opts.Rand = fixedHeight{height: height, min: cfg.Pipe.MinHeight}
	}
	return NewHarness(cfg, opts)
}

// hover flaps whenever the bird sinks below y=420, holding it roughly
// between 325 and 436.
var hover = ControllerFunc(func(obs Observation) float64 {
	if obs.Y > 420 {
		return 1
	}
	return 0
})

var noJump = ControllerFunc(func(Observation) float64 { return 0 })

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRunEpisodeHoverPassesPipe(t *testing.T) {
	var passTick int
	hook := HookFunc(func(f *Frame) {
		if f.Score == 1 && passTick == 0 {
			passTick = f.Tick
		}
	})
	h := testHarness(t, 300, Options{Hook: hook, MaxTicks: 80})

	res := h.RunEpisode(context.Background(), 1, []Controller{hover})

	if passTick != 76 {
		t.Errorf("pass at tick %d, want 76", passTick)
	}
	if res.Score != 1 {
		t.Errorf("Score = %d, want 1", res.Score)
	}
	if res.Ticks != 80 {
		t.Errorf("Ticks = %d, want 80", res.Ticks)
	}
	if !res.Truncated || res.Aborted {
		t.Errorf("Truncated=%v Aborted=%v, want true false", res.Truncated, res.Aborted)
	}
	if !approx(res.Fitness[0], 80*0.1+5) {
		t.Errorf("Fitness = %v, want 13", res.Fitness[0])
	}
	if res.Causes[0] != components.CauseAlive {
		t.Errorf("Cause = %v, want alive", res.Causes[0])
	}
	if res.Lifetimes[0] != 80 {
		t.Errorf("Lifetime = %d, want 80", res.Lifetimes[0])
	}
}

func TestRunEpisodeNoJumpHitsGround(t *testing.T) {
	h := testHarness(t, 300, Options{})

	res := h.RunEpisode(context.Background(), 1, []Controller{noJump})

	if res.Ticks != 23 {
		t.Errorf("Ticks = %d, want 23", res.Ticks)
	}
	if res.Causes[0] != components.CauseGround {
		t.Errorf("Cause = %v, want ground", res.Causes[0])
	}
	if !approx(res.Fitness[0], 2.3) {
		t.Errorf("Fitness = %v, want 2.3", res.Fitness[0])
	}
	if res.Score != 0 || res.Aborted || res.Truncated {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestRunEpisodeResultsAlignWithControllers(t *testing.T) {
	h := testHarness(t, 300, Options{MaxTicks: 80})

	res := h.RunEpisode(context.Background(), 1, []Controller{hover, noJump, hover})

	want := []components.DeathCause{components.CauseAlive, components.CauseGround, components.CauseAlive}
	for i, c := range want {
		if res.Causes[i] != c {
			t.Errorf("controller %d: Cause = %v, want %v", i, res.Causes[i], c)
		}
	}
	// Only birds alive at the pass get the bonus
	if !approx(res.Fitness[0], 13) || !approx(res.Fitness[2], 13) {
		t.Errorf("hover fitness = %v, %v, want 13", res.Fitness[0], res.Fitness[2])
	}
	if !approx(res.Fitness[1], 2.3) {
		t.Errorf("no-jump fitness = %v, want 2.3", res.Fitness[1])
	}
}

func TestRunEpisodeCollisionPenalty(t *testing.T) {
	// Gap spans [60, 260); the hovering bird sits in the bottom pipe's path
	h := testHarness(t, 60, Options{})

	res := h.RunEpisode(context.Background(), 1, []Controller{hover})

	if res.Causes[0] != components.CauseCollision {
		t.Fatalf("Cause = %v, want collision", res.Causes[0])
	}
	if res.Lifetimes[0] < 60 || res.Lifetimes[0] > 70 {
		t.Errorf("collided at tick %d, want the pipe's arrival around 62", res.Lifetimes[0])
	}
	want := float64(res.Lifetimes[0])*0.1 - 1
	if !approx(res.Fitness[0], want) {
		t.Errorf("Fitness = %v, want %v", res.Fitness[0], want)
	}
	if res.Score != 0 {
		t.Errorf("Score = %d, want 0", res.Score)
	}
}

func TestRunEpisodeInvalidSignals(t *testing.T) {
	signals := []struct {
		name  string
		value float64
	}{
		{"NaN", math.NaN()},
		{"+Inf", math.Inf(1)},
		{"-Inf", math.Inf(-1)},
		{"above one", 2},
		{"negative", -0.5},
	}
	for _, s := range signals {
		t.Run(s.name, func(t *testing.T) {
			h := testHarness(t, 300, Options{})
			ctrl := ControllerFunc(func(Observation) float64 { return s.value })

			res := h.RunEpisode(context.Background(), 1, []Controller{ctrl})

			// Treated as no jump every tick
			if res.Ticks != 23 || res.Causes[0] != components.CauseGround {
				t.Errorf("Ticks=%d Cause=%v, want 23 ground", res.Ticks, res.Causes[0])
			}
			if res.Faults[0] != 23 {
				t.Errorf("Faults = %d, want 23", res.Faults[0])
			}
		})
	}
}

func TestRunEpisodeObservation(t *testing.T) {
	var first Observation
	calls := 0
	ctrl := ControllerFunc(func(obs Observation) float64 {
		if calls == 0 {
			first = obs
		}
		calls++
		return 0
	})
	h := testHarness(t, 300, Options{})
	h.RunEpisode(context.Background(), 1, []Controller{ctrl})

	// One tick of falling from rest: 350 + 1.5
	want := Observation{Y: 351.5, GapTop: 51.5, GapBottom: -148.5}
	if first != want {
		t.Errorf("first observation = %+v, want %+v", first, want)
	}
	if calls != 23 {
		t.Errorf("Decide called %d times, want 23", calls)
	}
}

func TestRunEpisodeContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hook := HookFunc(func(f *Frame) {
		if f.Tick == 10 {
			cancel()
		}
	})
	h := testHarness(t, 300, Options{Hook: hook})

	res := h.RunEpisode(ctx, 1, []Controller{hover, hover})

	if !res.Aborted {
		t.Error("Aborted = false, want true")
	}
	if res.Ticks != 10 {
		t.Errorf("Ticks = %d, want 10", res.Ticks)
	}
	for i := range res.Causes {
		if res.Causes[i] != components.CauseAlive {
			t.Errorf("controller %d: Cause = %v, want alive", i, res.Causes[i])
		}
		if !approx(res.Fitness[i], 1) {
			t.Errorf("controller %d: Fitness = %v, want 1", i, res.Fitness[i])
		}
	}
}

func TestRunEpisodeCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h := testHarness(t, 300, Options{})
	res := h.RunEpisode(ctx, 1, []Controller{hover})

	if !res.Aborted || res.Ticks != 0 {
		t.Errorf("Aborted=%v Ticks=%d, want true 0", res.Aborted, res.Ticks)
	}
	if len(res.Fitness) != 1 || res.Fitness[0] != 0 {
		t.Errorf("Fitness = %v, want [0]", res.Fitness)
	}
}

func TestRunEpisodeEmptyPopulation(t *testing.T) {
	observed := 0
	h := testHarness(t, 300, Options{Hook: HookFunc(func(*Frame) { observed++ })})

	res := h.RunEpisode(context.Background(), 1, nil)

	if res.Ticks != 0 || res.Score != 0 {
		t.Errorf("Ticks=%d Score=%d, want 0 0", res.Ticks, res.Score)
	}
	if len(res.Fitness) != 0 {
		t.Errorf("Fitness = %v, want empty", res.Fitness)
	}
	if observed != 0 {
		t.Errorf("hook called %d times for an empty episode", observed)
	}
}

func TestRunEpisodeDeterministic(t *testing.T) {
	run := func() Result {
		h := testHarness(t, 0, Options{Rand: rand.New(rand.NewSource(7)), MaxTicks: 400})
		ctrls := []Controller{hover, noJump, ControllerFunc(func(obs Observation) float64 {
			if obs.GapBottom > -60 {
				return 1
			}
			return 0
		})}
		return h.RunEpisode(context.Background(), 1, ctrls)
	}
	a, b := run(), run()
	if a.Ticks != b.Ticks || a.Score != b.Score {
		t.Fatalf("runs differ: %+v vs %+v", a, b)
	}
	for i := range a.Fitness {
		if a.Fitness[i] != b.Fitness[i] || a.Causes[i] != b.Causes[i] {
			t.Errorf("controller %d differs: %v/%v vs %v/%v", i, a.Fitness[i], a.Causes[i], b.Fitness[i], b.Causes[i])
		}
	}
}

func TestFrameSnapshot(t *testing.T) {
	var frames []Frame
	hook := HookFunc(func(f *Frame) {
		cp := *f
		cp.Agents = append([]AgentView(nil), f.Agents...)
		frames = append(frames, cp)
	})
	h := testHarness(t, 300, Options{Hook: hook, MaxTicks: 30})

	h.RunEpisode(context.Background(), 4, []Controller{noJump, hover})

	if len(frames) != 30 {
		t.Fatalf("got %d frames, want 30", len(frames))
	}
	for i, f := range frames {
		if f.Tick != i+1 || f.Generation != 4 {
			t.Fatalf("frame %d: Tick=%d Generation=%d", i, f.Tick, f.Generation)
		}
		if f.Alive != len(f.Agents) {
			t.Fatalf("frame %d: Alive=%d but %d agents", i, f.Alive, len(f.Agents))
		}
	}
	if frames[21].Alive != 2 || frames[22].Alive != 1 {
		t.Errorf("alive at ticks 22/23 = %d/%d, want 2/1", frames[21].Alive, frames[22].Alive)
	}
	leader, ok := frames[29].Leader()
	if !ok || leader.Index != 1 {
		t.Errorf("leader = %+v, %v; want the hovering bird", leader, ok)
	}
	if got := frames[0].Pipes[0].X; got != 595 {
		t.Errorf("pipe X after first tick = %v, want 595", got)
	}
}

// countingGate counts waits between ticks.
type countingGate struct {
	waits int
}

func (g *countingGate) Observe(*Frame)           {}
func (g *countingGate) Wait(ctx context.Context) { g.waits++ }

func TestRunEpisodeGateBetweenTicks(t *testing.T) {
	gate := &countingGate{}
	h := testHarness(t, 300, Options{Hook: gate})

	res := h.RunEpisode(context.Background(), 1, []Controller{noJump})

	// No wait after the final tick
	if gate.waits != res.Ticks-1 {
		t.Errorf("waits = %d, want %d", gate.waits, res.Ticks-1)
	}
}

func TestEpisodeStepAfterComplete(t *testing.T) {
	h := testHarness(t, 300, Options{})
	e := h.NewEpisode(1, []Controller{noJump})

	for e.Step() == Running {
	}
	if e.Tick() != 23 || e.Alive() != 0 {
		t.Fatalf("Tick=%d Alive=%d, want 23 0", e.Tick(), e.Alive())
	}
	if e.Step() != Complete || e.Tick() != 23 {
		t.Error("Step after completion should do nothing")
	}
	if e.State().String() != "complete" {
		t.Errorf("State = %q", e.State())
	}
}

func BenchmarkEpisodeStep(b *testing.B) {
	h := testHarness(b, 0, Options{Rand: rand.New(rand.NewSource(1))})
	ctrls := make([]Controller, 100)
	for i := range ctrls {
		ctrls[i] = hover
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := h.NewEpisode(1, ctrls)
		for j := 0; j < 60 && e.Step() == Running; j++ {
		}
	}
}
