package systems

// PipeField owns the live pipes in left-to-right order. New pipes are only
// appended; any pipe may be pruned.
type PipeField struct {
	pipes  []*Pipe
	geom   PipeGeometry
	spawnX float64
	rng    Rand

	// Scratch buffer reused across ticks
	gone []bool
}

// NewPipeField creates a field holding a single pipe at firstX. Later pipes
// spawn at spawnX.
func NewPipeField(firstX, spawnX float64, geom PipeGeometry, rng Rand) *PipeField {
	f := &PipeField{
		geom:   geom,
		spawnX: spawnX,
		rng:    rng,
	}
	f.pipes = append(f.pipes, NewPipe(firstX, rng, geom))
	return f
}

// Pipes returns the live pipes. The slice must not be modified.
func (f *PipeField) Pipes() []*Pipe {
	return f.pipes
}

// Geometry returns the shared pipe geometry.
func (f *PipeField) Geometry() PipeGeometry {
	return f.geom
}

// Lookahead returns the index of the pipe controllers should look at: the
// first pipe, or the second once the leading bird has cleared the first
// pipe's trailing edge.
func (f *PipeField) Lookahead(leadX float64) int {
	if len(f.pipes) > 1 && leadX > f.pipes[0].Right() {
		return 1
	}
	return 0
}

// Next returns the pipe at the lookahead index for leadX.
func (f *PipeField) Next(leadX float64) *Pipe {
	return f.pipes[f.Lookahead(leadX)]
}

// Tick runs one step of the pipe rules for the birds at xs.
//
// For each pipe in order, collide is asked about every bird not yet marked in
// hit; birds it reports are marked and skipped for the rest of the scan. A
// surviving bird whose x is past a pipe's leading edge marks the pipe passed.
// Each pipe then moves. After the scan a single new pipe is spawned if any
// pipe was passed, and pipes that have left the screen are dropped.
//
// hit must have the same length as xs. Returns whether a pass occurred.
func (f *PipeField) Tick(xs []float64, hit []bool, collide func(i int, p *Pipe) bool) bool {
	passed := false
	f.gone = f.gone[:0]

	for _, p := range f.pipes {
		for i, x := range xs {
			if hit[i] {
				continue
			}
			if collide(i, p) {
				hit[i] = true
				continue
			}
			if !p.Passed && p.X < x {
				p.Passed = true
				passed = true
			}
		}

		f.gone = append(f.gone, p.OffScreen())
		p.Move(f.geom.Velocity)
	}

	// Prune before spawning so gone stays aligned with the scanned pipes
	kept := f.pipes[:0]
	for i, p := range f.pipes {
		if !f.gone[i] {
			kept = append(kept, p)
		}
	}
	clear(f.pipes[len(kept):])
	f.pipes = kept

	if passed {
		f.pipes = append(f.pipes, NewPipe(f.spawnX, f.rng, f.geom))
	}
	return passed
}
