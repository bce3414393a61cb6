package main

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/evolve"
	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/sprite"
	"github.com/pthm-cable/flappy/telemetry"
)

// FitnessEvaluator trains populations headless and scores a parameter
// vector by the best bird each run produces.
type FitnessEvaluator struct {
	params     *ParamVector
	seeds      []int64
	baseConfig *config.Config
	atlas      *sprite.Atlas
	ctx        context.Context

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastSolved     int // seeds that hit the fitness threshold in the latest Evaluate
}

// NewFitnessEvaluator creates a new evaluator. Every run uses the base
// config's generation budget and tick limit.
func NewFitnessEvaluator(ctx context.Context, params *ParamVector, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		seeds:       seeds,
		baseConfig:  baseCfg,
		atlas:       sprite.NewAtlas(),
		ctx:         ctx,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastSolved returns how many seeds reached the threshold in the most recent
// evaluation.
func (fe *FitnessEvaluator) LastSolved() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSolved
}

// seedResult holds the outcome of one training run.
type seedResult struct {
	fitness    float64 // negated best fitness, lower is better
	solved     bool
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes the objective for a raw parameter vector (lower =
// better): the negated best fitness, averaged over seeds. Runs that reach
// the threshold early earn a bonus for every generation they saved.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runTraining(x, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	var solved int
	best := seedResult{fitness: math.Inf(1)}
	for _, r := range results {
		total += r.fitness
		if r.solved {
			solved++
		}
		if r.fitness < best.fitness {
			best = r
		}
	}
	avg := total / float64(len(fe.seeds))

	fe.mu.Lock()
	if avg < fe.bestFitness {
		fe.bestFitness = avg
		fe.bestHallOfFame = best.hallOfFame
	}
	fe.lastSolved = solved
	fe.mu.Unlock()

	return avg
}

// runTraining trains one population from scratch with the given seed.
func (fe *FitnessEvaluator) runTraining(x []float64, seed int64) seedResult {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	harness := game.NewHarness(cfg, game.Options{
		Rand:     rand.New(rand.NewSource(seed)),
		Atlas:    fe.atlas,
		MaxTicks: cfg.Simulation.MaxTicks,
	})
	trainer := evolve.NewTrainer(cfg, harness, rand.New(rand.NewSource(seed+1)))
	hof := telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize)

	summary, _ := trainer.Run(fe.ctx, func(g evolve.Generation) error {
		hof.Consider(g.Number, g.Result.Score, g.BestFitness, g.Best)
		return nil
	})

	fitness := -summary.BestFitness
	if summary.Solved {
		saved := cfg.Evolution.Generations - summary.Generations
		fitness -= float64(saved) * cfg.Fitness.Pass
	}
	return seedResult{fitness: fitness, solved: summary.Solved, hallOfFame: hof}
}
