package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/flappy/game"
)

// PerfRecord is a flat per-generation snapshot of tick timings for CSV
// export.
type PerfRecord struct {
	Generation  int     `csv:"generation"`
	AvgTickUS   float64 `csv:"avg_tick_us"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	AgentsPct   float64 `csv:"agents_pct"`
	PipesPct    float64 `csv:"pipes_pct"`
	BoundsPct   float64 `csv:"bounds_pct"`
	HookPct     float64 `csv:"hook_pct"`
}

// NewPerfRecord reads the rolling averages out of p. A nil or empty tracker
// yields a zero record.
func NewPerfRecord(generation int, p *game.PerfStats) PerfRecord {
	r := PerfRecord{Generation: generation}
	if p == nil {
		return r
	}
	total := p.Total()
	if total <= 0 {
		return r
	}

	r.AvgTickUS = micros(total)
	r.TicksPerSec = float64(time.Second) / float64(total)

	pct := func(phase string) float64 {
		return float64(p.Avg(phase)) / float64(total) * 100
	}
	r.AgentsPct = pct(game.PhaseAgents)
	r.PipesPct = pct(game.PhasePipes)
	r.BoundsPct = pct(game.PhaseBounds)
	r.HookPct = pct(game.PhaseHook)
	return r
}

func micros(d time.Duration) float64 {
	return float64(d) / float64(time.Microsecond)
}

// LogValue implements slog.LogValuer for structured logging.
func (r PerfRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", r.Generation),
		slog.Float64("avg_tick_us", r.AvgTickUS),
		slog.Float64("ticks_per_sec", r.TicksPerSec),
		slog.Float64("agents_pct", r.AgentsPct),
		slog.Float64("pipes_pct", r.PipesPct),
		slog.Float64("bounds_pct", r.BoundsPct),
		slog.Float64("hook_pct", r.HookPct),
	)
}

// LogStats logs the record at debug level.
func (r PerfRecord) LogStats() {
	slog.Debug("perf", "stats", r)
}
