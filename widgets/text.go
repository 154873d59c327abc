package widgets

import (
	"strings"

	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Text is a leaf sized to its measured string.
type Text struct {
	ID   string
	Text string
	// Face defaults to basicfont.Face7x13.
	Face font.Face
}

func (t *Text) Template() widget.Template {
	return widget.Leaf()
}

func (t *Text) Properties() []widget.Property {
	return []widget.Property{widget.Prop(render.Label{Text: t.Text})}
}

func (t *Text) Layout() layout.Func {
	size := Measure(t.face(), t.Text)
	return func(ctx layout.Context) layout.Result {
		return layout.Sized(ctx.Constraints.Constrain(size))
	}
}

func (t *Text) Selector() theme.Selector {
	return theme.Selector{Element: "text", ID: t.ID}
}

func (t *Text) face() font.Face {
	if t.Face != nil {
		return t.Face
	}
	return basicfont.Face7x13
}

// Measure returns the natural size of s set in face, one line per '\n'.
func Measure(face font.Face, s string) layout.Size {
	lines := strings.Split(s, "\n")
	var width int
	for _, line := range lines {
		width = max(width, font.MeasureString(face, line).Ceil())
	}
	lineHeight := face.Metrics().Height.Ceil()
	return layout.Size{
		Width:  float64(width),
		Height: float64(lineHeight * len(lines)),
	}
}
