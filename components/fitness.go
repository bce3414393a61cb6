package components

// DeathCause records why an agent left the population.
type DeathCause uint8

const (
	CauseAlive     DeathCause = iota // Still flying when the episode ended
	CauseCollision                   // Hit a pipe
	CauseGround                      // Fell below the ground line
	CauseCeiling                     // Flew above the top of the playfield
)

// String returns the display name for a DeathCause.
func (c DeathCause) String() string {
	names := DeathCauseNames()
	if int(c) < len(names) {
		return names[c]
	}
	return "unknown"
}

// DeathCauseNames returns the display names for all causes.
// The order matches the DeathCause constants.
func DeathCauseNames() []string {
	return []string{"alive", "collision", "ground", "ceiling"}
}

// Fitness accumulates an agent's score for the episode.
type Fitness struct {
	Value  float64
	Ticks  int // ticks survived
	Faults int // invalid controller signals
	Cause  DeathCause
}
