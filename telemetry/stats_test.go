package telemetry

import (
	"math"
	"testing"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/game"
)

func sampleResult() game.Result {
	return game.Result{
		Fitness:   []float64{4, 1, 3, 2},
		Lifetimes: []int{40, 10, 30, 20},
		Causes: []components.DeathCause{
			components.CauseAlive,
			components.CauseCollision,
			components.CauseGround,
			components.CauseCeiling,
		},
		Faults: []int{0, 2, 0, 1},
		Score:  3,
		Ticks:  40,
	}
}

func TestComputeGenerationStats(t *testing.T) {
	res := sampleResult()
	s := ComputeGenerationStats(7, res, 0.25)

	ints := []struct {
		name string
		got  int
		want int
	}{
		{"generation", s.Generation, 7},
		{"population", s.Population, 4},
		{"score", s.Score, 3},
		{"ticks", s.Ticks, 40},
		{"lifetime_max", s.LifetimeMax, 40},
		{"deaths_collision", s.DeathsCollision, 1},
		{"deaths_ground", s.DeathsGround, 1},
		{"deaths_ceiling", s.DeathsCeiling, 1},
		{"survivors", s.Survivors, 1},
		{"faults", s.Faults, 3},
	}
	for _, tt := range ints {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
			}
		})
	}

	floatsWant := []struct {
		name string
		got  float64
		want float64
	}{
		{"fitness_max", s.FitnessMax, 4},
		{"fitness_mean", s.FitnessMean, 2.5},
		{"fitness_std", s.FitnessStd, math.Sqrt(1.25)},
		{"lifetime_mean", s.LifetimeMean, 25},
		{"mutation_avg", s.MutationAvg, 0.25},
	}
	for _, tt := range floatsWant {
		t.Run(tt.name, func(t *testing.T) {
			if math.Abs(tt.got-tt.want) > 1e-9 {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}

	if s.Aborted {
		t.Error("aborted should be false")
	}
	// The caller's slice is left in controller order.
	if res.Fitness[0] != 4 || res.Fitness[1] != 1 {
		t.Errorf("input fitness reordered: %v", res.Fitness)
	}
}

func TestGenerationStatsPercentiles(t *testing.T) {
	res := game.Result{
		Fitness:   make([]float64, 10),
		Lifetimes: make([]int, 10),
		Causes:    make([]components.DeathCause, 10),
		Faults:    make([]int, 10),
	}
	for i := range res.Fitness {
		// Reverse order so sorting is exercised
		res.Fitness[i] = float64(10 - i)
	}

	s := ComputeGenerationStats(0, res, 0)
	if !(1 <= s.FitnessP10 && s.FitnessP10 <= s.FitnessP50 && s.FitnessP50 <= s.FitnessP90 && s.FitnessP90 <= s.FitnessMax) {
		t.Errorf("percentiles out of order: p10=%v p50=%v p90=%v max=%v",
			s.FitnessP10, s.FitnessP50, s.FitnessP90, s.FitnessMax)
	}
	if s.FitnessP10 >= 5 || s.FitnessP90 <= 5 {
		t.Errorf("p10=%v p90=%v should straddle the median", s.FitnessP10, s.FitnessP90)
	}
}

func TestComputeGenerationStatsEmpty(t *testing.T) {
	s := ComputeGenerationStats(3, game.Result{Aborted: true}, 0)
	want := GenerationStats{Generation: 3, Aborted: true}
	if s != want {
		t.Errorf("stats = %+v, want %+v", s, want)
	}
}
