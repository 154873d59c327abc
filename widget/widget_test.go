package widget_test

import (
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// box is a configurable widget for tests.
type box struct {
	id       string
	children []widget.Widget
	props    []widget.Property
	fn       layout.Func
	state    widget.State
	hidden   bool
}

func (b *box) Template() widget.Template {
	switch len(b.children) {
	case 0:
		return widget.Leaf()
	case 1:
		return widget.Single(b.children[0])
	}
	return widget.Multi(b.children...)
}

func (b *box) Properties() []widget.Property { return b.props }
func (b *box) Layout() layout.Func { return b.fn }
func (b *box) State() widget.State { return b.state }
func (b *box) Visible() bool { return !b.hidden }
func (b *box) Selector() theme.Selector { return theme.Selector{Element: "box", ID: b.id} }

func fixed(w, h float64) layout.Func {
	return func(ctx layout.Context) layout.Result {
		return layout.Sized(ctx.Constraints.Constrain(layout.Size{Width: w, Height: h}))
	}
}

type pinged struct {
	entity ecs.Entity
	frame  uint64
}

func (p pinged) Source() ecs.Entity { return p.entity }

// probe records its callbacks.
type probe struct {
	inits   int
	frames  []uint64
	lookup  string
	found   ecs.Entity
	initErr error
}

func (p *probe) Init(ctx *widget.Context) error {
	p.inits++
	if p.initErr != nil {
		return p.initErr
	}
	if p.lookup != "" {
		found, err := ctx.EntityOfChild(p.lookup)
		if err != nil {
			return err
		}
		p.found = found
	}
	return nil
}

func (p *probe) UpdatePostLayout(ctx *widget.Context) error {
	g, err := ecs.Get[layout.Geometry](ctx.Storage, ctx.Entity)
	if err != nil {
		return err
	}
	p.frames = append(p.frames, g.Frame)
	ctx.Push(pinged{entity: ctx.Entity, frame: g.Frame})
	return nil
}
