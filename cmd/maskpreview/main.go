// Mask preview tool - drag a bird sprite over a pipe and inspect the
// collision masks and their first contact point.
//
// Usage: go run ./cmd/maskpreview
package main

import (
	"fmt"
	"image"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flappy/sprite"
)

const (
	windowWidth  = 900
	windowHeight = 720
	viewWidth    = 520
	panelWidth   = windowWidth - viewWidth - 30

	// Where the pipe's top-left corner sits in the view
	pipeX = 200
	pipeY = 260
)

// maskImage paints the solid pixels of m in c.
func maskImage(m *sprite.Mask, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(m.Bounds())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.Get(x, y) {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

func texture(img image.Image) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	return tex
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Mask Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	atlas := sprite.NewAtlas()

	birdColor := color.RGBA{R: 255, G: 200, B: 0, A: 140}
	pipeColor := color.RGBA{R: 0, G: 160, B: 255, A: 140}

	var birdTex, birdMaskTex [sprite.BirdFrameCount]rl.Texture2D
	for i := range atlas.Bird {
		birdTex[i] = texture(atlas.Bird[i])
		birdMaskTex[i] = texture(maskImage(atlas.BirdMask[i], birdColor))
	}
	pipeTex := [2]rl.Texture2D{texture(atlas.PipeBottom), texture(atlas.PipeTop)}
	pipeMaskTex := [2]rl.Texture2D{
		texture(maskImage(atlas.BottomMask, pipeColor)),
		texture(maskImage(atlas.TopMask, pipeColor)),
	}
	pipeMasks := [2]*sprite.Mask{atlas.BottomMask, atlas.TopMask}
	defer func() {
		for i := range birdTex {
			rl.UnloadTexture(birdTex[i])
			rl.UnloadTexture(birdMaskTex[i])
		}
		for i := range pipeTex {
			rl.UnloadTexture(pipeTex[i])
			rl.UnloadTexture(pipeMaskTex[i])
		}
	}()

	// GUI state
	var frame float32
	top := false
	showSprites := true
	dx, dy := float32(-40), float32(-30) // bird offset from the pipe corner

	for !rl.WindowShouldClose() {
		// Drag the bird with the left mouse button inside the view
		mouse := rl.GetMousePosition()
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) && mouse.X < viewWidth {
			dx = mouse.X - pipeX - sprite.BirdWidth/2
			dy = mouse.Y - pipeY - sprite.BirdHeight/2
		}

		f := int(frame+0.5) % sprite.BirdFrameCount
		side := 0
		if top {
			side = 1
		}
		ox, oy := int(dx), int(dy)
		contact, hit := pipeMasks[side].Overlap(atlas.BirdMask[f], ox, oy)

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		// View
		rl.DrawRectangleLines(10, 10, viewWidth, windowHeight-20, rl.DarkGray)
		bx, by := int32(pipeX+ox), int32(pipeY+oy)
		if showSprites {
			rl.DrawTexture(pipeTex[side], pipeX, pipeY, rl.White)
			rl.DrawTexture(birdTex[f], bx, by, rl.White)
		}
		rl.DrawTexture(pipeMaskTex[side], pipeX, pipeY, rl.White)
		rl.DrawTexture(birdMaskTex[f], bx, by, rl.White)
		if hit {
			rl.DrawCircle(int32(pipeX+contact.X), int32(pipeY+contact.Y), 5, rl.Red)
		}

		// Control panel
		panelX := float32(viewWidth + 20)
		panelY := float32(10)
		rl.DrawText("Collision masks", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Bird frame", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		frame = gui.SliderBar(
			rl.Rectangle{X: panelX + 10, Y: panelY, Width: panelWidth - 60, Height: 20},
			"0", fmt.Sprint(sprite.BirdFrameCount-1),
			frame, 0, sprite.BirdFrameCount-1,
		)
		panelY += 35

		rl.DrawText("Offset x", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		dx = gui.SliderBar(
			rl.Rectangle{X: panelX + 10, Y: panelY, Width: panelWidth - 60, Height: 20},
			"", "", dx, -sprite.BirdWidth, sprite.PipeWidth,
		)
		panelY += 35

		rl.DrawText("Offset y", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		dy = gui.SliderBar(
			rl.Rectangle{X: panelX + 10, Y: panelY, Width: panelWidth - 60, Height: 20},
			"", "", dy, -sprite.BirdHeight-40, 200,
		)
		panelY += 35

		top = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 16, Height: 16}, "Top pipe", top)
		panelY += 26
		showSprites = gui.CheckBox(rl.Rectangle{X: panelX, Y: panelY, Width: 16, Height: 16}, "Show sprites", showSprites)
		panelY += 30

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset") {
			dx, dy, frame = -40, -30, 0
		}
		panelY += 50

		// Readout
		lines := []string{
			fmt.Sprintf("offset: (%d, %d)", ox, oy),
			fmt.Sprintf("bird pixels: %d", atlas.BirdMask[f].Count()),
			fmt.Sprintf("pipe pixels: %d", pipeMasks[side].Count()),
		}
		if hit {
			lines = append(lines, fmt.Sprintf("contact at (%d, %d)", contact.X, contact.Y))
		} else {
			lines = append(lines, "no contact")
		}
		for _, line := range lines {
			rl.DrawText(line, int32(panelX), int32(panelY), 16, rl.DarkGray)
			panelY += 20
		}

		rl.DrawText("Drag in the view to move the bird", int32(panelX), windowHeight-30, 12, rl.LightGray)
		rl.EndDrawing()
	}
}
