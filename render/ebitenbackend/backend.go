// Package ebitenbackend draws render calls onto an ebiten image.
package ebitenbackend

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/ooui/render"
)

// ErrNoTarget is returned by DrawTo without a screen.
var ErrNoTarget = errors.New("ebitenbackend: no target image")

var (
	defaultBackground = color.RGBA{R: 0x2b, G: 0x2b, B: 0x33, A: 0xff}
	defaultBorder     = color.RGBA{R: 0x55, G: 0x55, B: 0x66, A: 0xff}
)

// Backend records a frame's calls during the scheduler update and replays
// them onto the screen in ebiten's Draw callback.
type Backend struct {
	queue []render.DrawCall
	frame []render.DrawCall
}

// New returns an empty backend.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Begin() error {
	b.queue = b.queue[:0]
	return nil
}

func (b *Backend) Draw(call render.DrawCall) error {
	b.queue = append(b.queue, call)
	return nil
}

func (b *Backend) End() error {
	b.frame = append(b.frame[:0], b.queue...)
	return nil
}

// DrawTo paints the last completed frame onto screen.
func (b *Backend) DrawTo(screen *ebiten.Image) error {
	if screen == nil {
		return ErrNoTarget
	}
	for _, call := range b.frame {
		paint(screen, call)
	}
	return nil
}

func paint(screen *ebiten.Image, call render.DrawCall) {
	x, y := float32(call.Bounds.X), float32(call.Bounds.Y)
	w, h := float32(call.Bounds.Width), float32(call.Bounds.Height)

	var bg color.Color = defaultBackground
	if !call.Style.Background.IsZero() {
		bg = call.Style.Background
	}
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)

	if call.Style.BorderWidth > 0 {
		var border color.Color = defaultBorder
		if !call.Style.Border.IsZero() {
			border = call.Style.Border
		}
		vector.StrokeRect(screen, x, y, w, h, float32(call.Style.BorderWidth), border, false)
	}

	if call.Label != "" {
		ebitenutil.DebugPrintAt(screen, call.Label, int(x)+2, int(y)+2)
	}
}

// Len returns the number of calls in the last completed frame.
func (b *Backend) Len() int {
	return len(b.frame)
}
