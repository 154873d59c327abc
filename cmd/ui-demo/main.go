// Command ui-demo opens a window with a padded row holding a caption, a
// reset button and a volume slider. Drag the thumb or press reset; Q quits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ooui/config"
	"github.com/plus3/ooui/debugserver"
	"github.com/plus3/ooui/debugui"
	debugui_ebiten "github.com/plus3/ooui/debugui/ebiten"
	"github.com/plus3/ooui/logger"
	"github.com/plus3/ooui/render/ebitenbackend"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

func main() {
	dir := flag.String("dir", ".", "Directory holding ooui.yaml.")
	inspector := flag.Bool("inspector", false, "Show the imgui inspector (overrides debug.inspector).")
	flag.Parse()

	if err := run(*dir, *inspector); err != nil {
		fmt.Fprintf(os.Stderr, "ui-demo: %v\n", err)
		os.Exit(1)
	}
}

func run(dir string, forceInspector bool) error {
	cfg, err := config.Resolve(dir)
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log)

	themePath := cfg.Theme.Path
	if themePath != "" && !filepath.IsAbs(themePath) {
		themePath = filepath.Join(dir, themePath)
	}
	th, err := theme.Load(themePath)
	if err != nil {
		return err
	}

	backend := ebitenbackend.New()
	m := widget.NewManager(backend, th, cfg)
	m.SetLogger(log)

	d := buildDemo()
	if err := m.Root(d.Root); err != nil {
		return err
	}

	if cfg.Debug.Addr != "" {
		srv := debugserver.New(log)
		if _, err := srv.Start(cfg.Debug.Addr); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Stop(ctx)
		}()
		m.AfterFrame(srv.Observe(m.Storage(), m.Tree()))
	}

	game := &Game{
		manager: m,
		backend: backend,
		input:   &controller{manager: m, demo: d, log: log},
	}

	if cfg.Debug.Inspector || forceInspector {
		game.imgui = debugui_ebiten.New(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		game.inspector = debugui.Spawn(m.Storage(), m.Tree(), m.Scheduler())
	} else {
		ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
		ebiten.SetWindowTitle(cfg.Window.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.WithField("title", cfg.Window.Title).Info("starting demo")
	return ebiten.RunGame(game)
}
