// Package evolve drives generational training of bird networks.
package evolve

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/neural"
)

// Evaluator plays one episode with the given controllers. *game.Harness
// satisfies it.
type Evaluator interface {
	RunEpisode(ctx context.Context, generation int, controllers []game.Controller) game.Result
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, generation int, controllers []game.Controller) game.Result

// RunEpisode calls f.
func (f EvaluatorFunc) RunEpisode(ctx context.Context, generation int, controllers []game.Controller) game.Result {
	return f(ctx, generation, controllers)
}

// Generation is the outcome of evaluating one population.
type Generation struct {
	Number      int
	Result      game.Result
	Ranking     []int        // population indices, best first
	Best        *neural.FFNN // copy of the best network
	BestFitness float64
	MutationAvg float32 // mean absolute weight change applied to this population
}

// Summary describes a finished run.
type Summary struct {
	Generations int
	Best        *neural.FFNN // best network seen in any generation
	BestFitness float64
	Solved      bool // stopped on reaching the fitness threshold
	Aborted     bool // stopped by context cancellation
}

// Trainer evolves a fixed-size population of networks with elitism,
// truncation selection and sparse mutation.
type Trainer struct {
	cfg             config.EvolutionConfig
	playfieldHeight float64
	eval            Evaluator
	rng             *rand.Rand

	population  []*neural.FFNN
	mutationAvg float32
	generation  int
}

// NewTrainer creates a trainer with a random initial population.
func NewTrainer(cfg *config.Config, eval Evaluator, rng *rand.Rand) *Trainer {
	t := &Trainer{
		cfg:             cfg.Evolution,
		playfieldHeight: float64(cfg.Screen.Height),
		eval:            eval,
		rng:             rng,
		population:      make([]*neural.FFNN, cfg.Evolution.Population),
	}
	for i := range t.population {
		t.population[i] = neural.NewFFNN(rng)
	}
	return t
}

// Population returns the current networks. The slice must not be modified.
func (t *Trainer) Population() []*neural.FFNN {
	return t.population
}

// Controllers wraps the current population for the harness.
func (t *Trainer) Controllers() []game.Controller {
	ctrls := make([]game.Controller, len(t.population))
	for i, nn := range t.population {
		ctrls[i] = neural.NewController(nn, t.playfieldHeight)
	}
	return ctrls
}

// Run evaluates up to cfg.Generations populations. observe is called after
// each complete generation; an error from it stops the run and is returned.
func (t *Trainer) Run(ctx context.Context, observe func(Generation) error) (Summary, error) {
	var sum Summary
	for t.generation < t.cfg.Generations {
		gen, ok := t.Step(ctx)
		if !ok {
			sum.Aborted = true
			break
		}
		sum.Generations = gen.Number
		if sum.Best == nil || gen.BestFitness > sum.BestFitness {
			sum.Best = gen.Best
			sum.BestFitness = gen.BestFitness
		}

		if observe != nil {
			if err := observe(gen); err != nil {
				return sum, fmt.Errorf("generation %d: %w", gen.Number, err)
			}
		}
		if gen.BestFitness >= t.cfg.FitnessThreshold {
			sum.Solved = true
			break
		}
		t.breed(gen.Ranking)
	}
	return sum, nil
}

// Step evaluates the current population once. It reports false when the
// episode was cancelled; the population is then left unchanged.
func (t *Trainer) Step(ctx context.Context) (Generation, bool) {
	t.generation++
	res := t.eval.RunEpisode(ctx, t.generation, t.Controllers())
	if res.Aborted {
		t.generation--
		return Generation{}, false
	}

	ranking := Rank(res.Fitness)
	gen := Generation{
		Number:      t.generation,
		Result:      res,
		Ranking:     ranking,
		BestFitness: math.Inf(-1),
		MutationAvg: t.mutationAvg,
	}
	if len(ranking) > 0 {
		gen.Best = t.population[ranking[0]].Clone()
		gen.BestFitness = res.Fitness[ranking[0]]
	}
	return gen, true
}

// Rank returns indices of fitness ordered best first. Ties keep the lower
// index first.
func Rank(fitness []float64) []int {
	n := len(fitness)
	// Argsort is ascending and unstable: negate, then order ties by index
	neg := make([]float64, n)
	for i, f := range fitness {
		neg[i] = -f
	}
	idx := make([]int, n)
	floats.Argsort(neg, idx)
	for i := 1; i < n; i++ {
		for j := i; j > 0 && neg[j] == neg[j-1] && idx[j] < idx[j-1]; j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}

// breed replaces the population: the top Elitism networks carry over
// unchanged, the rest are mutated copies of parents drawn from the top
// SurvivalThreshold fraction.
func (t *Trainer) breed(ranking []int) {
	n := len(t.population)
	if n == 0 {
		return
	}
	survivors := int(math.Ceil(t.cfg.SurvivalThreshold * float64(n)))
	survivors = max(1, min(survivors, n))
	elites := max(0, min(t.cfg.Elitism, n))

	m := t.cfg.Mutation
	next := make([]*neural.FFNN, 0, n)
	for _, i := range ranking[:elites] {
		next = append(next, t.population[i].Clone())
	}

	var total float32
	children := 0
	for len(next) < n {
		parent := t.population[ranking[t.rng.Intn(survivors)]]
		child := parent.Clone()
		total += child.MutateSparse(t.rng, float32(m.Rate), float32(m.Sigma), float32(m.BigRate), float32(m.BigSigma))
		children++
		next = append(next, child)
	}

	t.mutationAvg = 0
	if children > 0 {
		t.mutationAvg = total / float32(children)
	}
	t.population = next
}
