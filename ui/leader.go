package ui

import (
	"fmt"

	"github.com/pthm-cable/flappy/components"
	"github.com/pthm-cable/flappy/game"
)

// LeaderPanel shows the leading bird's flight state.
type LeaderPanel struct {
	renderer *Renderer
	fields   []components.FieldDescriptor
}

// NewLeaderPanel creates a panel listing the agent field descriptors.
func NewLeaderPanel() *LeaderPanel {
	return &LeaderPanel{
		renderer: NewRenderer(),
		fields:   components.AgentFieldDescriptors(),
	}
}

// Draw renders the panel at (x, y) and returns the Y below it.
func (p *LeaderPanel) Draw(x, y, width int32, a game.AgentView) int32 {
	r := p.renderer
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Leader #%d", a.Index))

	pos := components.Position{X: a.X, Y: a.Y}
	fl := components.Flight{Velocity: a.Jump, Ticks: a.Since, Tilt: a.Tilt}
	fit := components.Fitness{Value: a.Fitness, Ticks: a.Ticks}

	for _, fd := range p.fields {
		v := components.GetAgentValue(&pos, &fl, &fit, fd.ID)
		text := fmt.Sprintf(fd.Format, v)
		if (fd.IsBar || fd.IsCentered) && fd.Max > fd.Min {
			y = r.DrawBar(x, y, fd.Label, (v-fd.Min)/(fd.Max-fd.Min), text, width)
			continue
		}
		y = r.DrawLabelValue(x, y, fd.Label, text)
	}
	return y
}
