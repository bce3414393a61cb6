// Package telemetry computes, logs and writes per-generation training
// statistics.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/game"
)

// GenerationStats summarizes one evaluated population.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Population int `csv:"population"`
	Score      int `csv:"score"` // pipes passed by the best bird
	Ticks      int `csv:"ticks"`

	// Fitness distribution
	FitnessMax  float64 `csv:"fitness_max"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Survival in ticks
	LifetimeMean float64 `csv:"lifetime_mean"`
	LifetimeMax  int     `csv:"lifetime_max"`

	// How birds left the episode
	DeathsCollision int `csv:"deaths_collision"`
	DeathsGround    int `csv:"deaths_ground"`
	DeathsCeiling   int `csv:"deaths_ceiling"`
	Survivors       int `csv:"survivors"`

	Faults      int     `csv:"faults"`       // invalid controller signals
	MutationAvg float64 `csv:"mutation_avg"` // mean weight change that produced this population
	Aborted     bool    `csv:"aborted"`
}

// ComputeGenerationStats summarizes an episode result.
func ComputeGenerationStats(generation int, res game.Result, mutationAvg float32) GenerationStats {
	s := GenerationStats{
		Generation:  generation,
		Population:  len(res.Fitness),
		Score:       res.Score,
		Ticks:       res.Ticks,
		MutationAvg: float64(mutationAvg),
		Aborted:     res.Aborted,
	}
	if len(res.Fitness) == 0 {
		return s
	}

	sorted := append([]float64(nil), res.Fitness...)
	sort.Float64s(sorted)
	s.FitnessMax = floats.Max(sorted)
	s.FitnessMean, s.FitnessStd = stat.PopMeanStdDev(sorted, nil)
	s.FitnessP10 = stat.Quantile(0.10, stat.LinInterp, sorted, nil)
	s.FitnessP50 = stat.Quantile(0.50, stat.LinInterp, sorted, nil)
	s.FitnessP90 = stat.Quantile(0.90, stat.LinInterp, sorted, nil)

	lifetimes := make([]float64, len(res.Lifetimes))
	for i, l := range res.Lifetimes {
		lifetimes[i] = float64(l)
		s.LifetimeMax = max(s.LifetimeMax, l)
	}
	s.LifetimeMean = stat.Mean(lifetimes, nil)

	for i, c := range res.Causes {
		switch c {
		case components.CauseCollision:
			s.DeathsCollision++
		case components.CauseGround:
			s.DeathsGround++
		case components.CauseCeiling:
			s.DeathsCeiling++
		case components.CauseAlive:
			s.Survivors++
		}
		s.Faults += res.Faults[i]
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("score", s.Score),
		slog.Int("ticks", s.Ticks),
		slog.Float64("fitness_max", s.FitnessMax),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p10", s.FitnessP10),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Float64("lifetime_mean", s.LifetimeMean),
		slog.Int("lifetime_max", s.LifetimeMax),
		slog.Int("deaths_collision", s.DeathsCollision),
		slog.Int("deaths_ground", s.DeathsGround),
		slog.Int("deaths_ceiling", s.DeathsCeiling),
		slog.Int("survivors", s.Survivors),
		slog.Int("faults", s.Faults),
		slog.Float64("mutation_avg", s.MutationAvg),
		slog.Bool("aborted", s.Aborted),
	)
}

// LogStats logs the headline numbers at info level.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"gen", s.Generation,
		"score", s.Score,
		"ticks", s.Ticks,
		"fitness_max", s.FitnessMax,
		"fitness_mean", s.FitnessMean,
		"fitness_p50", s.FitnessP50,
		"deaths_collision", s.DeathsCollision,
		"deaths_ground", s.DeathsGround,
		"deaths_ceiling", s.DeathsCeiling,
		"survivors", s.Survivors,
	)
}
