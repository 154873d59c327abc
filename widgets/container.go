package widgets

import (
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// Container wraps at most one child, optionally padded.
type Container struct {
	ID      string
	Classes []string
	Padding layout.EdgeInsets
	Child   widget.Widget
}

func (c *Container) Template() widget.Template {
	if c.Child == nil {
		return widget.Leaf()
	}
	return widget.Single(c.Child)
}

func (c *Container) Properties() []widget.Property {
	return nil
}

func (c *Container) Layout() layout.Func {
	if c.Padding == (layout.EdgeInsets{}) {
		return nil
	}
	return layout.Padding(c.Padding)
}

func (c *Container) Selector() theme.Selector {
	return theme.Selector{Element: "container", ID: c.ID, Classes: c.Classes}
}

// Row lays its children out horizontally.
type Row struct {
	ID       string
	Spacing  float64
	Children []widget.Widget
}

func (r *Row) Template() widget.Template {
	return widget.Multi(r.Children...)
}

func (r *Row) Properties() []widget.Property {
	return nil
}

func (r *Row) Layout() layout.Func {
	return layout.Row(r.Spacing)
}

func (r *Row) Selector() theme.Selector {
	return theme.Selector{Element: "row", ID: r.ID}
}
