package renderer

import (
	"image"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flappy/game"
	"github.com/pthm-cable/flappy/sprite"
	"github.com/pthm-cable/flappy/systems"
)

// Scene draws episode frames from the sprite atlas. Textures live on the GPU,
// so a Scene must be created after the raylib window.
type Scene struct {
	bird       [sprite.BirdFrameCount]rl.Texture2D
	pipeTop    rl.Texture2D
	pipeBottom rl.Texture2D
	base       rl.Texture2D

	// Highlight the bird the network panel is showing
	ShowLeader bool
}

// NewScene uploads the atlas images as textures.
func NewScene(atlas *sprite.Atlas) *Scene {
	s := &Scene{ShowLeader: true}
	for i, img := range atlas.Bird {
		s.bird[i] = upload(img)
	}
	s.pipeTop = upload(atlas.PipeTop)
	s.pipeBottom = upload(atlas.PipeBottom)
	s.base = upload(atlas.Base)
	return s
}

func upload(img image.Image) rl.Texture2D {
	rimg := rl.NewImageFromImage(img)
	tex := rl.LoadTextureFromImage(rimg)
	rl.UnloadImage(rimg)
	return tex
}

// Draw renders pipes, ground and birds in that order.
func (s *Scene) Draw(f *game.Frame) {
	for i := range f.Pipes {
		s.drawPipe(&f.Pipes[i])
	}
	s.drawGround(&f.Ground)
	for i := len(f.Agents) - 1; i >= 0; i-- {
		// Back to front so the leader ends up on top
		s.drawBird(f.Agents[i])
	}
	if leader, ok := f.Leader(); ok && s.ShowLeader {
		w, h := float32(sprite.BirdWidth), float32(sprite.BirdHeight)
		rl.DrawRectangleLinesEx(
			rl.Rectangle{X: float32(leader.X) - 2, Y: float32(leader.Y) - 2, Width: w + 4, Height: h + 4},
			2, rl.Color{R: 255, G: 80, B: 80, A: 200},
		)
	}
}

func (s *Scene) drawPipe(p *systems.Pipe) {
	x := int32(p.X)
	rl.DrawTexture(s.pipeTop, x, int32(p.Top), rl.White)
	rl.DrawTexture(s.pipeBottom, x, int32(p.Bottom), rl.White)
}

func (s *Scene) drawGround(g *systems.Ground) {
	y := int32(g.Y)
	rl.DrawTexture(s.base, int32(g.X1), y, rl.White)
	rl.DrawTexture(s.base, int32(g.X2), y, rl.White)
}

// drawBird rotates the sprite about its centre. Tilt is nose-up positive;
// raylib rotates clockwise on screen, hence the sign flip.
func (s *Scene) drawBird(a game.AgentView) {
	tex := s.bird[a.Frame%sprite.BirdFrameCount]
	w, h := float32(tex.Width), float32(tex.Height)
	rl.DrawTexturePro(
		tex,
		rl.Rectangle{X: 0, Y: 0, Width: w, Height: h},
		rl.Rectangle{X: float32(a.X) + w/2, Y: float32(a.Y) + h/2, Width: w, Height: h},
		rl.Vector2{X: w / 2, Y: h / 2},
		float32(-a.Tilt),
		rl.White,
	)
}

// Unload frees the textures.
func (s *Scene) Unload() {
	for _, t := range s.bird {
		rl.UnloadTexture(t)
	}
	rl.UnloadTexture(s.pipeTop)
	rl.UnloadTexture(s.pipeBottom)
	rl.UnloadTexture(s.base)
}
