package widgets

import (
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
)

// Pressed is set while a pointer holds the widget down.
type Pressed struct {
	Value bool
}

// SetPressed updates the Pressed component of id.
func SetPressed(storage *ecs.Storage, id ecs.Entity, pressed bool) error {
	p, err := ecs.GetMut[Pressed](storage, id)
	if err != nil {
		return err
	}
	p.Value = pressed
	return nil
}

// Button is a padded label.
type Button struct {
	ID      string
	Classes []string
	Label   string
}

func (b *Button) Template() widget.Template {
	if b.Label == "" {
		return widget.Leaf()
	}
	return widget.Single(&Text{Text: b.Label})
}

func (b *Button) Properties() []widget.Property {
	return []widget.Property{widget.Prop(Pressed{})}
}

func (b *Button) Layout() layout.Func {
	return layout.Padding(layout.EdgeInsetsSymmetric(8, 4))
}

func (b *Button) Selector() theme.Selector {
	return theme.Selector{Element: "button", ID: b.ID, Classes: b.Classes}
}
