package telemetry

import (
	"encoding/json"
	"sort"

	"github.com/pthm-cable/flappy/neural"
)

// HallEntry is a network that topped its generation.
type HallEntry struct {
	Generation int                 `json:"generation"`
	Fitness    float64             `json:"fitness"`
	Score      int                 `json:"score"`
	Weights    neural.BrainWeights `json:"brain"`
}

// HallOfFame keeps the best networks seen across a run, highest fitness
// first.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall holding at most maxSize entries.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers a generation's best network. Returns true if it was added.
func (hof *HallOfFame) Consider(generation, score int, fitness float64, nn *neural.FFNN) bool {
	if nn == nil {
		return false
	}
	// Sorted descending; equal fitness keeps the earlier generation first
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].Fitness < fitness
	})
	if idx >= hof.maxSize {
		return false
	}

	entry := HallEntry{
		Generation: generation,
		Fitness:    fitness,
		Score:      score,
		Weights:    nn.MarshalWeights(),
	}
	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}
	return true
}

// Entries returns the hall, best first. The slice must not be modified.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// Best returns a network rebuilt from the top entry.
func (hof *HallOfFame) Best() (*neural.FFNN, HallEntry, bool) {
	if len(hof.entries) == 0 {
		return nil, HallEntry{}, false
	}
	nn := &neural.FFNN{}
	nn.UnmarshalWeights(hof.entries[0].Weights)
	return nn, hof.entries[0], true
}

// TopFitness returns the highest fitness in the hall, or 0 if it is empty.
func (hof *HallOfFame) TopFitness() float64 {
	if len(hof.entries) == 0 {
		return 0
	}
	return hof.entries[0].Fitness
}

// MarshalJSON serializes the hall as an array, best first.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}
