package components

import "testing"

func TestDeathCauseString(t *testing.T) {
	tests := []struct {
		cause DeathCause
		want  string
	}{
		{CauseAlive, "alive"},
		{CauseCollision, "collision"},
		{CauseGround, "ground"},
		{CauseCeiling, "ceiling"},
		{DeathCause(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.cause.String(); got != tt.want {
			t.Errorf("DeathCause(%d).String() = %q, want %q", tt.cause, got, tt.want)
		}
	}
}

func TestGetAgentValue(t *testing.T) {
	pos := &Position{X: 230, Y: 412}
	fl := &Flight{Velocity: -10.5, Ticks: 3, Tilt: 25}
	fit := &Fitness{Value: 7.5}

	for _, d := range AgentFieldDescriptors() {
		t.Run(d.ID, func(t *testing.T) {
			var want float32
			switch d.ID {
			case "y":
				want = 412
			case "velocity":
				want = -10.5
			case "ticks":
				want = 3
			case "tilt":
				want = 25
			case "fitness":
				want = 7.5
			}
			if got := GetAgentValue(pos, fl, fit, d.ID); got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}

	if got := GetAgentValue(pos, fl, fit, "nope"); got != 0 {
		t.Errorf("unknown field = %v, want 0", got)
	}
}
