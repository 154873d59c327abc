package main

import (
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/widget"
	"github.com/plus3/ooui/widgets"
	"github.com/sirupsen/logrus"
)

// pointer is one frame of mouse input in window coordinates.
type pointer struct {
	X, Y     float64
	Down     bool
	Pressed  bool
	Released bool
}

// demo holds the widget handles the input controller drives.
type demo struct {
	Root   widget.Widget
	Volume *widgets.Slider
}

func buildDemo() *demo {
	volume := widgets.NewSlider("volume", 0, 100, 50)
	return &demo{
		Volume: volume,
		Root: &widgets.Container{
			ID:      "root",
			Padding: layout.EdgeInsetsAll(12),
			Child: &widgets.Row{ID: "controls", Spacing: 8, Children: []widget.Widget{
				&widgets.Text{ID: "caption", Text: "Volume"},
				&widgets.Button{ID: "reset", Label: "Reset"},
				// Last, since a slider takes all the width it is offered.
				volume,
			}},
		},
	}
}

// controller turns pointer input into thumb presses and slider moves.
type controller struct {
	manager *widget.Manager
	demo    *demo
	log     logrus.FieldLogger

	dragging bool
	// resetting releases the thumb on the frame after a reset.
	resetting bool
}

func (c *controller) bounds(id ecs.Entity) (layout.Rect, bool) {
	g := ecs.ReadComponent[layout.Geometry](c.manager.Storage(), id)
	if g == nil {
		return layout.Rect{}, false
	}
	return g.Bounds(), true
}

func (c *controller) hit(id ecs.Entity, p pointer) bool {
	r, ok := c.bounds(id)
	return ok && r.Contains(layout.Point{X: p.X, Y: p.Y})
}

// Apply queues the effects of p for the next frame.
func (c *controller) Apply(p pointer) error {
	storage := c.manager.Storage()
	slider := c.demo.Volume.Handle()
	thumb := slider.Thumb()

	if c.resetting && !c.dragging {
		c.resetting = false
		if err := widgets.SetPressed(storage, thumb, false); err != nil {
			return err
		}
	}

	reset, _ := c.manager.Entity("reset")

	switch {
	case p.Pressed && c.hit(thumb, p):
		c.dragging = true
		if err := widgets.SetPressed(storage, thumb, true); err != nil {
			return err
		}

	case p.Pressed && reset != ecs.NoEntity && c.hit(reset, p):
		c.log.Info("reset pressed")
		if err := widgets.SetPressed(storage, reset, true); err != nil {
			return err
		}
		// Dragging to the far left lands on the minimum.
		if err := widgets.SetPressed(storage, thumb, true); err != nil {
			return err
		}
		slider.Move(0)
		c.resetting = true

	case p.Released:
		if reset != ecs.NoEntity {
			if err := widgets.SetPressed(storage, reset, false); err != nil {
				return err
			}
		}
		if c.dragging {
			c.dragging = false
			if err := widgets.SetPressed(storage, thumb, false); err != nil {
				return err
			}
		}
	}

	if c.dragging && p.Down {
		slider.Move(p.X)
	}
	return nil
}

// Drain logs slider changes and returns the last value seen.
func (c *controller) Drain() (float64, bool) {
	var (
		value float64
		seen  bool
	)
	for _, ev := range c.manager.Events() {
		if changed, ok := ev.(widgets.ChangedEvent); ok {
			value, seen = changed.Value, true
		}
	}
	if seen {
		c.log.WithField("value", value).Debug("volume changed")
	}
	return value, seen
}
