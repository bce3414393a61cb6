package systems

import (
	"testing"
)

func newTestField(heights ...int) *PipeField {
	g := testGeometry()
	f := NewPipeField(600, 600, g, fixedHeight{height: 300, min: g.MinHeight})
	for _, h := range heights {
		f.pipes = append(f.pipes, NewPipe(f.pipes[len(f.pipes)-1].X+300, fixedHeight{height: h, min: g.MinHeight}, g))
	}
	return f
}

func noCollision(int, *Pipe) bool { return false }

func TestLookahead(t *testing.T) {
	f := newTestField(200)
	first := f.pipes[0]

	tests := []struct {
		name  string
		leadX float64
		want  int
	}{
		{"before first pipe", first.X - 10, 0},
		{"inside first pipe", first.X + 10, 0},
		{"on trailing edge", first.Right(), 0},
		{"past trailing edge", first.Right() + 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Lookahead(tt.leadX); got != tt.want {
				t.Errorf("Lookahead(%v) = %d, want %d", tt.leadX, got, tt.want)
			}
		})
	}

	single := newTestField()
	if got := single.Lookahead(10000); got != 0 {
		t.Errorf("single pipe Lookahead = %d, want 0", got)
	}
	if single.Next(10000) != single.pipes[0] {
		t.Error("Next should return the only pipe")
	}
}

func TestTickSpawnsOncePerPass(t *testing.T) {
	f := newTestField()
	f.pipes[0].X = 231

	xs := []float64{230, 230, 230, 230}
	hit := make([]bool, len(xs))

	// Pipe at 231 is not yet passed; it moves to 226
	if f.Tick(xs, hit, noCollision) {
		t.Fatal("pass reported before leading edge crossed")
	}
	if len(f.pipes) != 1 || f.pipes[0].X != 226 {
		t.Fatalf("after first tick: %d pipes, X=%v", len(f.pipes), f.pipes[0].X)
	}

	if !f.Tick(xs, hit, noCollision) {
		t.Fatal("pass not reported")
	}
	if len(f.pipes) != 2 {
		t.Fatalf("four birds passing spawned %d pipes, want 1 new", len(f.pipes)-1)
	}
	if f.pipes[1].X != 600 {
		t.Errorf("spawned pipe X = %v, want 600", f.pipes[1].X)
	}
	if !f.pipes[0].Passed {
		t.Error("first pipe not marked passed")
	}

	// Already passed pipes do not trigger again
	if f.Tick(xs, hit, noCollision) {
		t.Error("passed pipe triggered a second pass")
	}
	if len(f.pipes) != 2 {
		t.Errorf("pipe count = %d, want 2", len(f.pipes))
	}
}

func TestTickSkipsHitBirds(t *testing.T) {
	f := newTestField()
	f.pipes[0].X = 100

	xs := []float64{230, 230}
	hit := make([]bool, len(xs))
	calls := make([]int, len(xs))

	collide := func(i int, p *Pipe) bool {
		calls[i]++
		return true
	}
	if f.Tick(xs, hit, collide) {
		t.Error("colliding birds should not pass the pipe")
	}
	for i := range hit {
		if !hit[i] {
			t.Errorf("bird %d not marked hit", i)
		}
	}
	if f.pipes[0].Passed {
		t.Error("pipe marked passed by a colliding bird")
	}

	f.Tick(xs, hit, collide)
	for i, n := range calls {
		if n != 1 {
			t.Errorf("bird %d checked %d times, want 1", i, n)
		}
	}
}

func TestTickPassByOneSurvivor(t *testing.T) {
	f := newTestField()
	f.pipes[0].X = 100

	xs := []float64{230, 230}
	hit := make([]bool, len(xs))
	collide := func(i int, p *Pipe) bool { return i == 0 }

	if !f.Tick(xs, hit, collide) {
		t.Error("surviving bird should pass the pipe")
	}
	if !hit[0] || hit[1] {
		t.Errorf("hit = %v, want [true false]", hit)
	}
}

func TestTickPrunesOffScreen(t *testing.T) {
	f := newTestField(250)
	f.pipes[0].X = -f.pipes[0].Width - 1
	f.pipes[0].Passed = true
	second := f.pipes[1]

	f.Tick([]float64{230}, []bool{false}, noCollision)

	if len(f.pipes) != 1 {
		t.Fatalf("pipe count = %d, want 1", len(f.pipes))
	}
	if f.pipes[0] != second {
		t.Error("wrong pipe pruned")
	}
	if second.X != 900-5 {
		t.Errorf("remaining pipe X = %v, want %v", second.X, 900-5)
	}
}

// A pipe whose right edge is exactly at 0 before moving is kept even though it
// ends the tick off screen.
func TestTickPruneUsesPreMovePosition(t *testing.T) {
	f := newTestField()
	f.pipes[0].X = -f.pipes[0].Width
	f.pipes[0].Passed = true

	f.Tick([]float64{230}, []bool{false}, noCollision)
	if len(f.pipes) != 1 {
		t.Fatalf("pipe count = %d, want 1", len(f.pipes))
	}

	f.Tick([]float64{230}, []bool{false}, noCollision)
	if len(f.pipes) != 0 {
		t.Errorf("pipe count = %d, want 0", len(f.pipes))
	}
}
