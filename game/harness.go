package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/sprite"
	"github.com/pthm-cable/flappy/systems"
)

// Options configures a Harness.
type Options struct {
	Rand     systems.Rand  // pipe heights; nil seeds from the clock
	Atlas    *sprite.Atlas // sprites and masks; nil builds the default atlas
	Hook     Hook          // called once per tick; may be nil
	TickRate int           // ticks per second, 0 = unpaced
	MaxTicks int           // per episode, 0 = unlimited
}

// Harness runs episodes with a fixed configuration.
type Harness struct {
	cfg      *config.Config
	opts     Options
	flight   systems.FlightModel
	collider *systems.Collider
	geom     systems.PipeGeometry
	perf     *PerfStats
}

// NewHarness creates a harness. Constants are read from cfg once.
func NewHarness(cfg *config.Config, opts Options) *Harness {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Atlas == nil {
		opts.Atlas = sprite.NewAtlas()
	}
	return &Harness{
		cfg:      cfg,
		opts:     opts,
		flight:   systems.NewFlightModel(cfg),
		collider: systems.NewCollider(opts.Atlas),
		geom:     systems.NewPipeGeometry(cfg, opts.Atlas.PipeWidth(), opts.Atlas.PipeHeight()),
		perf:     NewPerfStats(),
	}
}

// Perf returns per-phase tick timings.
func (h *Harness) Perf() *PerfStats {
	return h.perf
}

// NewEpisode spawns one bird per controller at the start position. The
// generation is only a label passed through to hooks.
func (h *Harness) NewEpisode(generation int, controllers []Controller) *Episode {
	world := ecs.NewWorld()
	e := &Episode{
		world: world,
		agents: ecs.NewMap5[
			components.Position,
			components.Flight,
			components.Animation,
			components.Fitness,
			components.Pilot,
		](world),
		agentFilter: ecs.NewFilter5[
			components.Position,
			components.Flight,
			components.Animation,
			components.Fitness,
			components.Pilot,
		](world),
		population:  make([]ecs.Entity, 0, len(controllers)),
		controllers: controllers,
		result:      newResult(len(controllers)),
		flight:      h.flight,
		collider:    h.collider,
		pipes:       systems.NewPipeField(h.cfg.Pipe.FirstX, h.cfg.Pipe.SpawnX, h.geom, h.opts.Rand),
		ground:      systems.NewGround(h.cfg.World.GroundY, float64(h.opts.Atlas.BaseWidth()), h.cfg.Ground.Velocity),
		fitness:     h.cfg.Fitness,
		threshold:   h.cfg.Controller.JumpThreshold,
		groundLine:  h.cfg.World.GroundY,
		hook:        h.opts.Hook,
		perf:        h.perf,
		generation:  generation,
	}

	bird := h.cfg.Bird
	for i := range controllers {
		pos := components.Position{X: bird.StartX, Y: bird.StartY}
		fl := components.Flight{Height: bird.StartY}
		anim := components.Animation{}
		fit := components.Fitness{}
		pilot := components.Pilot{Index: i}
		e.population = append(e.population, e.agents.NewEntity(&pos, &fl, &anim, &fit, &pilot))
	}
	return e
}

// RunEpisode plays one episode to completion and returns the outcome of
// every controller. It stops early when ctx is done or the tick limit is
// reached; birds still flying then keep the fitness they had.
func (h *Harness) RunEpisode(ctx context.Context, generation int, controllers []Controller) Result {
	e := h.NewEpisode(generation, controllers)

	var pace <-chan time.Time
	if h.opts.TickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(h.opts.TickRate))
		defer ticker.Stop()
		pace = ticker.C
	}
	gate, _ := h.opts.Hook.(Gate)

	for {
		if ctx.Err() != nil {
			e.result.Aborted = true
			break
		}
		if h.opts.MaxTicks > 0 && e.Tick() >= h.opts.MaxTicks {
			e.result.Truncated = e.State() == Running
			break
		}
		if e.Step() == Complete {
			break
		}

		// Waits happen between ticks, never inside one
		if gate != nil {
			gate.Wait(ctx)
		}
		if pace != nil {
			select {
			case <-ctx.Done():
			case <-pace:
			}
		}
	}
	return e.Result()
}
