package neural

// IODescriptor describes a network input or output for UI display.
type IODescriptor struct {
	ID          string  // Unique identifier
	Label       string  // Display name
	Description string  // Tooltip/extended description
	Min         float32 // Minimum value
	Max         float32 // Maximum value
	IsCentered  bool    // True for centered bar display (e.g., -1 to +1)
}

// InputDescriptors returns metadata for all network inputs.
// Order matches Encode.
func InputDescriptors() []IODescriptor {
	return []IODescriptor{
		{ID: "y", Label: "Y", Description: "Bird height / playfield height", Min: 0, Max: 1},
		{ID: "gap_top", Label: "Gap Top", Description: "Distance below the gap's top edge", Min: -1, Max: 1, IsCentered: true},
		{ID: "gap_bottom", Label: "Gap Bot", Description: "Distance below the gap's bottom edge", Min: -1, Max: 1, IsCentered: true},
	}
}

// OutputDescriptors returns metadata for all network outputs.
func OutputDescriptors() []IODescriptor {
	return []IODescriptor{
		{ID: "flap", Label: "Flap", Description: "Flap gate (>0.5 = jump)", Min: 0, Max: 1},
	}
}

// InputLabels returns the display labels of the inputs in order.
func InputLabels() []string {
	return labels(InputDescriptors())
}

// OutputLabels returns the display labels of the outputs in order.
func OutputLabels() []string {
	return labels(OutputDescriptors())
}

func labels(descs []IODescriptor) []string {
	out := make([]string, len(descs))
	for i, d := range descs {
		out[i] = d.Label
	}
	return out
}
