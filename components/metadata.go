package components

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Format     string  // Printf format (e.g., "%.2f")
	Min        float32 // Minimum value (for bars)
	Max        float32 // Maximum value (for bars)
	IsCentered bool    // True for centered bar display
	IsBar      bool    // True to render as progress bar
}

// AgentFieldDescriptors returns metadata for the fields shown for the
// leading agent.
func AgentFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "y", Label: "Height", Format: "%.0f", Min: 0, Max: 730, IsBar: true},
		{ID: "velocity", Label: "Jump Vel", Format: "%+.1f", Min: -11, Max: 11, IsCentered: true},
		{ID: "ticks", Label: "Since Jump", Format: "%.0f"},
		{ID: "tilt", Label: "Tilt", Format: "%+.0f", Min: -90, Max: 25, IsCentered: true, IsBar: true},
		{ID: "fitness", Label: "Fitness", Format: "%.1f"},
	}
}

// GetAgentValue extracts an agent field value by ID.
func GetAgentValue(pos *Position, fl *Flight, fit *Fitness, fieldID string) float32 {
	switch fieldID {
	case "y":
		return float32(pos.Y)
	case "velocity":
		return float32(fl.Velocity)
	case "ticks":
		return float32(fl.Ticks)
	case "tilt":
		return float32(fl.Tilt)
	case "fitness":
		return float32(fit.Value)
	default:
		return 0
	}
}
