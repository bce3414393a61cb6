package game

import (
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/systems"
)

// State is the lifecycle of an episode.
type State uint8

const (
	Running State = iota
	Complete
)

// String returns the display name for a State.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// Result holds per-controller outcomes, index-aligned with the controllers an
// episode was started with. Birds still flying when the episode stopped have
// cause CauseAlive.
type Result struct {
	Fitness   []float64
	Lifetimes []int // ticks each bird survived
	Causes    []components.DeathCause
	Faults    []int // invalid controller signals
	Score     int   // pipes passed
	Ticks     int   // ticks run
	Aborted   bool  // stopped by context cancellation
	Truncated bool  // stopped by the tick limit
}

func newResult(n int) Result {
	return Result{
		Fitness:   make([]float64, n),
		Lifetimes: make([]int, n),
		Causes:    make([]components.DeathCause, n),
		Faults:    make([]int, n),
	}
}

// Episode is one playthrough: every controller flies its own bird through a
// shared pipe course until all birds are gone.
type Episode struct {
	world  *ecs.World
	agents *ecs.Map5[
		components.Position,
		components.Flight,
		components.Animation,
		components.Fitness,
		components.Pilot,
	]
	agentFilter *ecs.Filter5[
		components.Position,
		components.Flight,
		components.Animation,
		components.Fitness,
		components.Pilot,
	]

	// Live birds in spawn order. The first is the leader for lookahead.
	population  []ecs.Entity
	controllers []Controller
	result      Result

	flight     systems.FlightModel
	collider   *systems.Collider
	pipes      *systems.PipeField
	ground     *systems.Ground
	fitness    config.FitnessConfig
	threshold  float64
	groundLine float64
	hook       Hook
	perf       *PerfStats

	generation int
	tick       int
	score      int
	state      State

	// Scratch buffers reused across ticks
	xs    []float64
	hit   []bool
	dead  []bool
	frame Frame
}

// Step runs one tick of the game rules and returns the resulting state.
func (e *Episode) Step() State {
	if e.state == Complete {
		return Complete
	}
	if len(e.population) == 0 {
		e.finish()
		return Complete
	}
	e.tick++

	start := time.Now()
	e.updateAgents()
	e.perf.Record(PhaseAgents, time.Since(start))

	start = time.Now()
	e.updatePipes()
	e.perf.Record(PhasePipes, time.Since(start))

	start = time.Now()
	e.checkBounds()
	e.ground.Move()
	e.animate()
	e.perf.Record(PhaseBounds, time.Since(start))

	if e.hook != nil {
		start = time.Now()
		e.hook.Observe(e.snapshot())
		e.perf.Record(PhaseHook, time.Since(start))
	}

	if len(e.population) == 0 {
		e.finish()
	}
	return e.state
}

// updateAgents moves every bird, credits survival and asks its controller
// whether to flap.
func (e *Episode) updateAgents() {
	leader, _, _, _, _ := e.agents.Get(e.population[0])
	// A live bird always has a pipe ahead or inside it: passing one spawns
	// the next.
	next := e.pipes.Next(leader.X)

	for _, entity := range e.population {
		pos, fl, _, fit, pilot := e.agents.Get(entity)

		e.flight.Advance(pos, fl)
		fit.Value += e.fitness.Survival
		fit.Ticks++

		signal := e.controllers[pilot.Index].Decide(NewObservation(pos.Y, next))
		if !validSignal(signal) {
			fit.Faults++
			continue
		}
		if signal > e.threshold {
			e.flight.Jump(pos, fl)
		}
	}
}

// validSignal reports whether a controller output is finite and in [0, 1].
// NaN fails both comparisons.
func validSignal(s float64) bool {
	return s >= 0 && s <= 1
}

// updatePipes runs the pipe rules, removes birds that hit a pipe and pays
// the pass bonus to everyone still flying.
func (e *Episode) updatePipes() {
	e.xs = e.xs[:0]
	e.hit = e.hit[:0]
	for _, entity := range e.population {
		pos, _, _, _, _ := e.agents.Get(entity)
		e.xs = append(e.xs, pos.X)
		e.hit = append(e.hit, false)
	}

	passed := e.pipes.Tick(e.xs, e.hit, func(i int, p *systems.Pipe) bool {
		pos, _, anim, _, _ := e.agents.Get(e.population[i])
		return e.collider.Hit(anim.Frame, *pos, p)
	})

	e.resetDead()
	for i, hit := range e.hit {
		if !hit {
			continue
		}
		_, _, _, fit, _ := e.agents.Get(e.population[i])
		fit.Value += e.fitness.Collision
		e.markDead(i, components.CauseCollision)
	}
	e.removeDead()

	if passed {
		e.score++
		for _, entity := range e.population {
			_, _, _, fit, _ := e.agents.Get(entity)
			fit.Value += e.fitness.Pass
		}
	}
}

// checkBounds removes birds below the ground line or above the playfield.
func (e *Episode) checkBounds() {
	e.resetDead()
	height := e.collider.BirdHeight()
	for i, entity := range e.population {
		pos, _, _, _, _ := e.agents.Get(entity)
		switch {
		case pos.Y+height > e.groundLine:
			e.markDead(i, components.CauseGround)
		case pos.Y < 0:
			e.markDead(i, components.CauseCeiling)
		}
	}
	e.removeDead()
}

func (e *Episode) animate() {
	for _, entity := range e.population {
		_, fl, anim, _, _ := e.agents.Get(entity)
		e.flight.Animate(anim, fl)
	}
}

func (e *Episode) resetDead() {
	e.dead = e.dead[:0]
	for range e.population {
		e.dead = append(e.dead, false)
	}
}

// markDead records the final outcome for the bird at population index i.
// The entity stays in the world until removeDead.
func (e *Episode) markDead(i int, cause components.DeathCause) {
	_, _, _, fit, pilot := e.agents.Get(e.population[i])
	fit.Cause = cause
	e.record(fit, pilot)
	e.dead[i] = true
}

// removeDead compacts the population in place and removes marked entities
// from the world.
func (e *Episode) removeDead() {
	kept := e.population[:0]
	for i, entity := range e.population {
		if e.dead[i] {
			e.world.RemoveEntity(entity)
			continue
		}
		kept = append(kept, entity)
	}
	e.population = kept
}

func (e *Episode) record(fit *components.Fitness, pilot *components.Pilot) {
	i := pilot.Index
	e.result.Fitness[i] = fit.Value
	e.result.Lifetimes[i] = fit.Ticks
	e.result.Causes[i] = fit.Cause
	e.result.Faults[i] = fit.Faults
}

// finish records the birds still flying and completes the episode.
func (e *Episode) finish() {
	if e.state == Complete {
		return
	}
	query := e.agentFilter.Query()
	for query.Next() {
		_, _, _, fit, pilot := query.Get()
		e.record(fit, pilot)
	}
	e.result.Score = e.score
	e.result.Ticks = e.tick
	e.state = Complete
}

// snapshot fills the reusable frame for hooks.
func (e *Episode) snapshot() *Frame {
	f := &e.frame
	f.Agents = f.Agents[:0]
	for _, entity := range e.population {
		pos, fl, anim, fit, pilot := e.agents.Get(entity)
		f.Agents = append(f.Agents, AgentView{
			Index:   pilot.Index,
			X:       pos.X,
			Y:       pos.Y,
			Tilt:    fl.Tilt,
			Jump:    fl.Velocity,
			Since:   fl.Ticks,
			Frame:   anim.Frame,
			Fitness: fit.Value,
			Ticks:   fit.Ticks,
		})
	}

	f.Pipes = f.Pipes[:0]
	for _, p := range e.pipes.Pipes() {
		f.Pipes = append(f.Pipes, *p)
	}
	f.Lookahead = 0
	if len(f.Agents) > 0 {
		f.Lookahead = e.pipes.Lookahead(f.Agents[0].X)
	}

	f.Ground = *e.ground
	f.Score = e.score
	f.Generation = e.generation
	f.Tick = e.tick
	f.Alive = len(e.population)
	return f
}

// State returns the current state.
func (e *Episode) State() State { return e.state }

// Tick returns the number of ticks run.
func (e *Episode) Tick() int { return e.tick }

// Score returns the number of pipes passed.
func (e *Episode) Score() int { return e.score }

// Alive returns the number of birds still flying.
func (e *Episode) Alive() int { return len(e.population) }

// Generation returns the generation label the episode was started with.
func (e *Episode) Generation() int { return e.generation }

// Result completes the episode if it is still running and returns the
// outcomes.
func (e *Episode) Result() Result {
	e.finish()
	return e.result
}
