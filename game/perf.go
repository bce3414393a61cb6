package game

import (
	"sort"
	"time"
)

// Tick phases recorded by Episode.Step.
const (
	PhaseAgents = "agents"
	PhasePipes  = "pipes"
	PhaseBounds = "bounds"
	PhaseHook   = "hook"
)

// PerfStats keeps a rolling window of tick phase timings.
type PerfStats struct {
	samples    map[string][]time.Duration
	maxSamples int
}

// NewPerfStats creates a tracker holding the last 90 samples per phase,
// three seconds of play at 30 ticks per second.
func NewPerfStats() *PerfStats {
	return &PerfStats{
		samples:    make(map[string][]time.Duration),
		maxSamples: 90,
	}
}

// Record adds a sample for the named phase.
func (p *PerfStats) Record(phase string, d time.Duration) {
	s := append(p.samples[phase], d)
	if len(s) > p.maxSamples {
		s = s[1:]
	}
	p.samples[phase] = s
}

// Avg returns the mean duration of the named phase.
func (p *PerfStats) Avg(phase string) time.Duration {
	s := p.samples[phase]
	if len(s) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s {
		total += d
	}
	return total / time.Duration(len(s))
}

// Total returns the sum of all phase averages, the mean cost of a tick.
func (p *PerfStats) Total() time.Duration {
	var total time.Duration
	for phase := range p.samples {
		total += p.Avg(phase)
	}
	return total
}

// Phases returns phase names, slowest first.
func (p *PerfStats) Phases() []string {
	names := make([]string, 0, len(p.samples))
	for name := range p.samples {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return p.Avg(names[i]) > p.Avg(names[j])
	})
	return names
}
