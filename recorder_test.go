package main

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/config"
	"github.com/pthm-cable/flappy/evolve"
	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/neural"
	"github.com/pthm-cable/flappy/telemetry"
)

func generation(n int, best float64, score int) evolve.Generation {
	return evolve.Generation{
		Number: n,
		Result: game.Result{
			Fitness:   []float64{best, best / 2},
			Lifetimes: []int{100, 50},
			Causes:    []components.DeathCause{components.CauseCollision, components.CauseGround},
			Faults:    []int{0, 0},
			Score:     score,
			Ticks:     100,
		},
		Ranking:     []int{0, 1},
		Best:        neural.NewFFNN(rand.New(rand.NewSource(int64(n)))),
		BestFitness: best,
	}
}

func TestRecorderWritesRun(t *testing.T) {
	dir := t.TempDir()
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Telemetry.HallOfFameSize = 2

	rec := newRecorder(cfg, out, game.NewPerfStats())
	for n, best := range []float64{5, 30, 12} {
		score := 0
		if best > 10 {
			score = 1
		}
		if err := rec.observe(generation(n+1, best, score)); err != nil {
			t.Fatalf("observe gen %d: %v", n+1, err)
		}
	}
	if err := out.Close(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		file string
		rows int // excluding header
		want string
	}{
		{telemetry.GenerationsFile, 3, "fitness_max"},
		{telemetry.PerfFile, 3, "avg_tick_us"},
		{telemetry.BookmarksFile, 2, "first_pass"}, // first pass and record at gen 2
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(dir, tt.file))
			if err != nil {
				t.Fatal(err)
			}
			lines := strings.Split(strings.TrimSpace(string(data)), "\n")
			if len(lines)-1 != tt.rows {
				t.Errorf("%s has %d rows, want %d:\n%s", tt.file, len(lines)-1, tt.rows, data)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("%s missing %q", tt.file, tt.want)
			}
		})
	}

	entries := rec.hof.Entries()
	if len(entries) != 2 || entries[0].Generation != 2 || entries[1].Generation != 3 {
		t.Errorf("hall of fame = %+v", entries)
	}
	if _, err := os.Stat(filepath.Join(dir, telemetry.HallOfFameFile)); err != nil {
		t.Errorf("hall of fame not written: %v", err)
	}
}

func TestRecorderWithoutOutput(t *testing.T) {
	rec := newRecorder(config.Default(), nil, nil)
	if err := rec.observe(generation(1, 3, 0)); err != nil {
		t.Fatalf("observe: %v", err)
	}
	if rec.hof.TopFitness() != 3 {
		t.Errorf("top fitness = %v, want 3", rec.hof.TopFitness())
	}
}
