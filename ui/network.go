package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flappy/neural"
)

// Network colors for activation visualization.
var (
	ColorNodePositive = rl.Color{R: 255, G: 100, B: 100, A: 255}
	ColorNodeNegative = rl.Color{R: 100, G: 100, B: 255, A: 255}
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
)

// DrawNetworkDiagram renders the network's layers with the activations of
// its last decision. Inputs are labelled on the left, the output on the
// right.
func DrawNetworkDiagram(x, y, width, height int32, nn *neural.FFNN, act *neural.Activations) {
	if nn == nil || act == nil {
		rl.DrawText("No network", x+10, y+10, 14, ColorLabelDim)
		return
	}

	// Leave room for labels on both sides
	labelRoom := int32(70)
	colWidth := (width - 2*labelRoom) / 2
	radius := float32(7)

	inputs := column(float32(x+labelRoom), y, height, neural.NumInputs)
	hidden := column(float32(x+labelRoom+colWidth), y, height, neural.NumHidden)
	outputs := column(float32(x+labelRoom+2*colWidth), y, height, neural.NumOutputs)

	for h := range hidden {
		for i := range inputs {
			drawEdge(inputs[i], hidden[h], nn.W1[h][i])
		}
	}
	for o := range outputs {
		for h := range hidden {
			drawEdge(hidden[h], outputs[o], nn.W2[o][h])
		}
	}

	inLabels := neural.InputLabels()
	for i, pos := range inputs {
		drawNode(pos, radius, act.Inputs[i])
		w := rl.MeasureText(inLabels[i], 10)
		rl.DrawText(inLabels[i], int32(pos.X-radius)-w-4, int32(pos.Y)-5, 10, ColorLabelDim)
	}
	for i, pos := range hidden {
		drawNode(pos, radius, act.Hidden[i])
	}
	outLabels := neural.OutputLabels()
	for i, pos := range outputs {
		// Output is in [0, 1]; recentre so 0.5 reads as neutral
		drawNode(pos, radius+2, act.Outputs[i]*2-1)
		rl.DrawText(outLabels[i], int32(pos.X+radius)+6, int32(pos.Y)-5, 10, ColorLabelDim)
	}
}

// column spaces n nodes evenly down a column at x.
func column(x float32, y, height int32, n int) []rl.Vector2 {
	nodes := make([]rl.Vector2, n)
	spacing := float32(height) / float32(n)
	for i := range nodes {
		nodes[i] = rl.Vector2{X: x, Y: float32(y) + spacing*(float32(i)+0.5)}
	}
	return nodes
}

func drawNode(pos rl.Vector2, radius, activation float32) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge skips near-zero weights; thickness and alpha follow magnitude.
func drawEdge(from, to rl.Vector2, weight float32) {
	mag := weight
	if mag < 0 {
		mag = -mag
	}
	if mag < 0.1 {
		return
	}

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(150, 40+int(mag*40)))
	rl.DrawLineEx(from, to, max(0.5, min(3, mag*1.5)), color)
}

// activationColor maps negative activations to blue and positive to red,
// saturating at magnitude 1.
func activationColor(activation float32) rl.Color {
	t := max(-1, min(1, activation))
	if t >= 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	t = -t
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}
