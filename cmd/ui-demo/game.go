package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/ooui/debugui"
	debugui_ebiten "github.com/plus3/ooui/debugui/ebiten"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/render/ebitenbackend"
	"github.com/plus3/ooui/widget"
)

var clearColor = color.RGBA{R: 0x12, G: 0x12, B: 0x16, A: 0xff}

// Game implements ebiten.Game over a widget manager.
type Game struct {
	manager *widget.Manager
	backend *ebitenbackend.Backend
	input   *controller

	// imgui and inspector are nil unless the inspector is enabled.
	imgui     *debugui_ebiten.ImguiBackend
	inspector *debugui.Inspector
}

func readPointer() pointer {
	x, y := ebiten.CursorPosition()
	return pointer{
		X:        float64(x),
		Y:        float64(y),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	p := readPointer()
	if state := ecs.SingletonOf[debugui.ImguiInputState](g.manager.Storage()); state != nil && state.WantCaptureMouse {
		p = pointer{}
	}
	if err := g.input.Apply(p); err != nil {
		return err
	}

	dt := 1.0 / float64(ebiten.TPS())
	if g.imgui == nil {
		return g.frame(dt)
	}
	g.inspector.DeltaTime = dt
	return g.imgui.Frame(func() error { return g.frame(dt) })
}

func (g *Game) frame(dt float64) error {
	if err := g.manager.Run(dt); err != nil {
		return err
	}
	g.input.Drain()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(clearColor)
	if err := g.backend.DrawTo(screen); err != nil {
		g.input.log.WithError(err).Error("draw failed")
	}
	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
