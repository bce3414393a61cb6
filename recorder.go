package main

import (
	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/evolve"
	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/telemetry"
)

// recorder turns finished generations into logs, bookmarks and output files.
type recorder struct {
	out       *telemetry.OutputManager
	bookmarks *telemetry.BookmarkDetector
	hof       *telemetry.HallOfFame
	perf      *game.PerfStats
}

func newRecorder(cfg *config.Config, out *telemetry.OutputManager, perf *game.PerfStats) *recorder {
	return &recorder{
		out:       out,
		bookmarks: telemetry.NewBookmarkDetector(cfg.Telemetry.StagnationWindow),
		hof:       telemetry.NewHallOfFame(cfg.Telemetry.HallOfFameSize),
		perf:      perf,
	}
}

func (r *recorder) observe(g evolve.Generation) error {
	stats := telemetry.ComputeGenerationStats(g.Number, g.Result, g.MutationAvg)
	stats.LogStats()
	if err := r.out.WriteGeneration(stats); err != nil {
		return err
	}

	for _, b := range r.bookmarks.Check(stats) {
		b.LogBookmark()
		if err := r.out.WriteBookmark(b); err != nil {
			return err
		}
	}

	perf := telemetry.NewPerfRecord(g.Number, r.perf)
	perf.LogStats()
	if err := r.out.WritePerf(perf); err != nil {
		return err
	}

	// Rewritten on every change so an interrupted run keeps its champions
	if r.hof.Consider(g.Number, g.Result.Score, g.BestFitness, g.Best) {
		if err := r.out.WriteHallOfFame(r.hof); err != nil {
			return err
		}
	}
	return nil
}
