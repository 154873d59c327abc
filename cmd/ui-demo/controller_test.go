package main

import (
	"testing"

	"github.com/plus3/ooui/config"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/logger"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/widget"
	"github.com/plus3/ooui/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newController(t *testing.T) *controller {
	t.Helper()
	m := widget.NewManager(&render.Recorder{}, nil, config.Default())
	m.SetLogger(logger.Discard())
	d := buildDemo()
	require.NoError(t, m.Root(d.Root))
	require.NoError(t, m.Run(0))
	return &controller{manager: m, demo: d, log: logger.Discard()}
}

func (c *controller) step(t *testing.T, p pointer) {
	t.Helper()
	require.NoError(t, c.Apply(p))
	require.NoError(t, c.manager.Run(1.0/60))
}

func (c *controller) value(t *testing.T) float64 {
	t.Helper()
	id, ok := c.manager.Entity("volume")
	require.True(t, ok)
	r, err := ecs.Get[widgets.Range](c.manager.Storage(), id)
	require.NoError(t, err)
	return r.Value
}

func (c *controller) pressed(t *testing.T, id ecs.Entity) bool {
	t.Helper()
	p, err := ecs.Get[widgets.Pressed](c.manager.Storage(), id)
	require.NoError(t, err)
	return p.Value
}

func TestDemoLayout(t *testing.T) {
	c := newController(t)

	reset, ok := c.manager.Entity("reset")
	require.True(t, ok)
	r, ok := c.bounds(reset)
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 62, Y: 12, Width: 51, Height: 21}, r)

	thumb, ok := c.bounds(c.demo.Volume.Handle().Thumb())
	require.True(t, ok)
	assert.Equal(t, layout.Rect{X: 129, Y: 14, Width: 28, Height: 28}, thumb)
}

func TestDragThumb(t *testing.T) {
	c := newController(t)
	thumb := c.demo.Volume.Handle().Thumb()

	t.Run("press outside the thumb does nothing", func(t *testing.T) {
		c.step(t, pointer{X: 400, Y: 100, Down: true, Pressed: true})
		assert.False(t, c.dragging)
		assert.Equal(t, 50.0, c.value(t))
	})

	c.step(t, pointer{X: 400, Y: 100, Released: true})

	c.step(t, pointer{X: 135, Y: 20, Down: true, Pressed: true})
	assert.True(t, c.dragging)
	assert.True(t, c.pressed(t, thumb))
	_, seen := c.Drain()
	assert.True(t, seen)

	c.step(t, pointer{X: 2000, Y: 20, Down: true})
	assert.Equal(t, 100.0, c.value(t))
	value, seen := c.Drain()
	assert.True(t, seen)
	assert.Equal(t, 100.0, value)

	c.step(t, pointer{X: 2000, Y: 20, Released: true})
	assert.False(t, c.dragging)
	assert.False(t, c.pressed(t, thumb))

	c.step(t, pointer{X: 10, Y: 20, Down: true})
	assert.Equal(t, 100.0, c.value(t))
}

func TestResetButton(t *testing.T) {
	c := newController(t)
	thumb := c.demo.Volume.Handle().Thumb()
	reset, _ := c.manager.Entity("reset")

	c.step(t, pointer{X: 80, Y: 20, Down: true, Pressed: true})
	assert.InDelta(t, 0, c.value(t), 1e-9)
	assert.True(t, c.pressed(t, reset))

	c.step(t, pointer{X: 80, Y: 20, Released: true})
	assert.False(t, c.pressed(t, thumb))
	assert.False(t, c.pressed(t, reset))
	assert.False(t, c.resetting)
}
