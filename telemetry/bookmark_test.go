package telemetry

import "testing"

func types(bms []Bookmark) []BookmarkType {
	out := make([]BookmarkType, len(bms))
	for i, b := range bms {
		out[i] = b.Type
	}
	return out
}

func hasType(bms []Bookmark, want BookmarkType) bool {
	for _, b := range bms {
		if b.Type == want {
			return true
		}
	}
	return false
}

func TestBookmarkDetectorSequence(t *testing.T) {
	bd := NewBookmarkDetector(3)

	steps := []struct {
		name    string
		stats   GenerationStats
		want    BookmarkType // empty = no bookmark
		wantAny bool
	}{
		{"first generation sets baseline", GenerationStats{Generation: 0, FitnessMax: 10, Population: 10}, "", false},
		{"large jump is a record", GenerationStats{Generation: 1, FitnessMax: 20, Population: 10}, BookmarkRecord, true},
		{"small gain is not", GenerationStats{Generation: 2, FitnessMax: 21, Population: 10}, "", false},
		{"flat 1", GenerationStats{Generation: 3, FitnessMax: 21, Population: 10}, "", false},
		{"flat 2", GenerationStats{Generation: 4, FitnessMax: 18, Population: 10}, "", false},
		{"flat 3 is stagnation", GenerationStats{Generation: 5, FitnessMax: 21, Population: 10}, BookmarkStagnation, true},
		{"stagnation fires once", GenerationStats{Generation: 6, FitnessMax: 21, Population: 10}, "", false},
	}
	for _, st := range steps {
		got := bd.Check(st.stats)
		if !st.wantAny {
			if len(got) != 0 {
				t.Errorf("%s: got %v, want none", st.name, types(got))
			}
			continue
		}
		if len(got) != 1 || got[0].Type != st.want {
			t.Errorf("%s: got %v, want [%s]", st.name, types(got), st.want)
			continue
		}
		if got[0].Generation != st.stats.Generation {
			t.Errorf("%s: generation = %d, want %d", st.name, got[0].Generation, st.stats.Generation)
		}
	}
}

func TestBookmarkFirstPass(t *testing.T) {
	bd := NewBookmarkDetector(10)
	if got := bd.Check(GenerationStats{Generation: 0, Score: 0, FitnessMax: 2}); hasType(got, BookmarkFirstPass) {
		t.Error("first pass before any pipe was passed")
	}
	if got := bd.Check(GenerationStats{Generation: 1, Score: 1, FitnessMax: 2}); !hasType(got, BookmarkFirstPass) {
		t.Errorf("got %v, want first_pass", types(got))
	}
	if got := bd.Check(GenerationStats{Generation: 2, Score: 4, FitnessMax: 2}); hasType(got, BookmarkFirstPass) {
		t.Error("first pass reported twice")
	}
}

func TestBookmarkCeilingRush(t *testing.T) {
	tests := []struct {
		name    string
		ceiling int
		want    bool
	}{
		{"majority", 6, true},
		{"exactly half", 5, false},
		{"few", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bd := NewBookmarkDetector(10)
			got := bd.Check(GenerationStats{Population: 10, DeathsCeiling: tt.ceiling})
			if hasType(got, BookmarkCeilingRush) != tt.want {
				t.Errorf("ceiling rush with %d/10 = %v, want %v", tt.ceiling, !tt.want, tt.want)
			}
		})
	}
}

func TestBookmarkWindowFloor(t *testing.T) {
	bd := NewBookmarkDetector(0)
	bd.Check(GenerationStats{FitnessMax: 5})
	var fired int
	for gen := 1; gen <= 5; gen++ {
		if hasType(bd.Check(GenerationStats{Generation: gen, FitnessMax: 5}), BookmarkStagnation) {
			fired = gen
		}
	}
	if fired != 3 {
		t.Errorf("stagnation at generation %d, want 3", fired)
	}
}
