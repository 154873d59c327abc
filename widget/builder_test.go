package widget_test

import (
	"testing"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tag struct {
	Name string
}

func newBuilder() *widget.Builder {
	return widget.NewBuilder(ecs.NewStorage(nil), ecs.NewTree())
}

func TestBuildOrder(t *testing.T) {
	b := newBuilder()
	root, err := b.Build(&box{id: "root", children: []widget.Widget{
		&box{id: "a", children: []widget.Widget{&box{id: "a1"}}},
		&box{id: "b"},
	}})
	require.NoError(t, err)

	assert.Equal(t, 4, b.Storage.Len())
	assert.Equal(t, root, b.Tree.Root())

	children := b.Tree.Children(root)
	require.Len(t, children, 2)
	a, bb := children[0], children[1]
	a1 := b.Tree.Children(a)[0]

	order := func(id ecs.Entity) render.CreationOrder {
		o, err := ecs.Get[render.CreationOrder](b.Storage, id)
		require.NoError(t, err)
		return o
	}
	assert.Equal(t, []render.CreationOrder{0, 1, 2, 3}, []render.CreationOrder{order(root), order(a), order(a1), order(bb)})

	parent, ok := b.Tree.Parent(a1)
	require.True(t, ok)
	assert.Equal(t, a, parent)

	sel, err := ecs.Get[theme.Selector](b.Storage, bb)
	require.NoError(t, err)
	assert.Equal(t, "b", sel.ID)
}

func TestBuildDefaults(t *testing.T) {
	b := newBuilder()
	id, err := b.Build(&box{props: []widget.Property{
		widget.Prop(tag{Name: "hello"}),
		widget.Prop(render.Label{Text: "hi"}),
	}})
	require.NoError(t, err)

	g, err := ecs.Get[layout.Geometry](b.Storage, id)
	require.NoError(t, err)
	assert.Equal(t, layout.Rect{X: 10, Y: 10, Width: 200, Height: 50}, layout.Rect{
		X: g.Position.X, Y: g.Position.Y, Width: g.Size.Width, Height: g.Size.Height,
	})

	l, err := ecs.Get[layout.Layout](b.Storage, id)
	require.NoError(t, err)
	assert.NotNil(t, l.Func)

	assert.True(t, ecs.Has[render.Drawable](b.Storage, id))
	assert.Equal(t, "hello", ecs.MustGet[tag](b.Storage, id).Name)
	assert.Equal(t, "hi", ecs.MustGet[render.Label](b.Storage, id).Text)

	t.Run("hidden widgets are not drawable", func(t *testing.T) {
		id, err := b.Build(&box{hidden: true})
		require.NoError(t, err)
		assert.False(t, ecs.Has[render.Drawable](b.Storage, id))
	})
}

func TestBuildTheme(t *testing.T) {
	b := newBuilder()
	b.Theme = theme.New(map[string]theme.Style{
		"box":    {BorderWidth: 1},
		"box#ok": {BorderWidth: 3},
	})

	root, err := b.Build(&box{children: []widget.Widget{&box{id: "ok"}}})
	require.NoError(t, err)

	assert.Equal(t, 1.0, ecs.MustGet[theme.Style](b.Storage, root).BorderWidth)
	ok := b.Tree.Children(root)[0]
	assert.Equal(t, 3.0, ecs.MustGet[theme.Style](b.Storage, ok).BorderWidth)
}

func TestBuildTooDeep(t *testing.T) {
	b := newBuilder()
	b.MaxDepth = 3

	var w widget.Widget = &box{}
	for i := 0; i < 5; i++ {
		w = &box{children: []widget.Widget{w}}
	}

	_, err := b.Build(w)
	require.ErrorIs(t, err, widget.ErrTemplateTooDeep)
	assert.Equal(t, 3, b.Storage.Len())
}
