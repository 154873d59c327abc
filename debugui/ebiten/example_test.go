package ebiten_test

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooui/debugui"
	debugui_ebiten "github.com/plus3/ooui/debugui/ebiten"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/widget"
	"github.com/plus3/ooui/widgets"
)

// Game runs a widget manager with the inspector drawn over it.
type Game struct {
	manager   *widget.Manager
	imgui     *debugui_ebiten.ImguiBackend
	inspector *debugui.Inspector
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	g.inspector.DeltaTime = dt
	return g.imgui.Frame(func() error {
		return g.manager.Run(dt)
	})
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.imgui.Overlay(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.imgui.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.New("ooui inspector", 1280, 720)

	manager := widget.NewManager(&render.Recorder{}, nil, nil)
	if err := manager.Root(&widgets.Container{Child: &widgets.Text{Text: "inspect me"}}); err != nil {
		panic(err)
	}

	game := &Game{
		manager:   manager,
		imgui:     backend,
		inspector: debugui.Spawn(manager.Storage(), manager.Tree(), manager.Scheduler()),
	}

	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
