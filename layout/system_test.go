package layout_test

import (
	"errors"
	"testing"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	storage *ecs.Storage
	tree    *ecs.Tree
	system  *layout.System
	sched   *ecs.Scheduler
}

func newFixture(constraints layout.BoxConstraints) *fixture {
	storage := ecs.NewStorage(nil)
	tree := ecs.NewTree()
	system := layout.NewSystem(constraints)
	sched := ecs.NewScheduler(storage, tree)
	sched.Register(system)
	return &fixture{storage: storage, tree: tree, system: system, sched: sched}
}

func (f *fixture) add(t *testing.T, parent ecs.Entity, fn layout.Func) ecs.Entity {
	t.Helper()
	id := f.storage.Create()
	require.NoError(t, ecs.Attach(f.storage, id, layout.DefaultGeometry()))
	if fn != nil {
		require.NoError(t, ecs.Attach(f.storage, id, layout.Layout{Func: fn}))
	}
	require.NoError(t, f.tree.RegisterNode(id))
	if parent != ecs.NoEntity {
		require.NoError(t, f.tree.AppendChild(parent, id))
	}
	return id
}

func (f *fixture) geometry(t *testing.T, id ecs.Entity) layout.Geometry {
	t.Helper()
	g, err := ecs.Get[layout.Geometry](f.storage, id)
	require.NoError(t, err)
	return g
}

func fixed(w, h float64) layout.Func {
	return func(ctx layout.Context) layout.Result {
		return layout.Sized(ctx.Constraints.Constrain(layout.Size{Width: w, Height: h}))
	}
}

var bounded = layout.BoxConstraints{MaxWidth: 200, MaxHeight: 50}

func TestDefaultPassThrough(t *testing.T) {
	f := newFixture(bounded)
	root := f.add(t, ecs.NoEntity, nil)
	child := f.add(t, root, fixed(120, 30))

	require.NoError(t, f.sched.Once(0))

	rg := f.geometry(t, root)
	cg := f.geometry(t, child)
	assert.Equal(t, layout.Size{Width: 120, Height: 30}, rg.Size)
	assert.Equal(t, rg.Size, cg.Size)
	assert.Equal(t, bounded, cg.Constraints)
	assert.Equal(t, layout.Point{}, cg.Position)
	assert.Equal(t, uint64(1), cg.Frame)
}

func TestDefaultLeafTakesMinimum(t *testing.T) {
	f := newFixture(layout.BoxConstraints{MinWidth: 15, MaxWidth: 200, MinHeight: 5, MaxHeight: 50})
	root := f.add(t, ecs.NoEntity, nil)

	require.NoError(t, f.sched.Once(0))
	assert.Equal(t, layout.Size{Width: 15, Height: 5}, f.geometry(t, root).Size)
}

func TestDefaultOverlaysSeveralChildren(t *testing.T) {
	f := newFixture(bounded)
	root := f.add(t, ecs.NoEntity, nil)
	f.add(t, root, fixed(30, 10))
	f.add(t, root, fixed(10, 40))

	require.NoError(t, f.sched.Once(0))
	assert.Equal(t, layout.Size{Width: 30, Height: 40}, f.geometry(t, root).Size)
}

func TestCycleDetection(t *testing.T) {
	t.Run("self request", func(t *testing.T) {
		f := newFixture(bounded)
		var root ecs.Entity
		root = f.add(t, ecs.NoEntity, func(ctx layout.Context) layout.Result {
			return layout.RequestChild(root, ctx.Constraints)
		})

		err := f.sched.Once(0)
		require.ErrorIs(t, err, layout.ErrLayoutCycle)

		var cycle *layout.CycleError
		require.ErrorAs(t, err, &cycle)
		assert.Equal(t, root, cycle.Entity)
		assert.Equal(t, []ecs.Entity{root, root}, cycle.Chain)
	})

	t.Run("ancestor request", func(t *testing.T) {
		f := newFixture(bounded)
		root := f.add(t, ecs.NoEntity, nil)
		mid := f.add(t, root, nil)
		f.add(t, mid, func(ctx layout.Context) layout.Result {
			return layout.RequestChild(root, ctx.Constraints)
		})

		err := f.sched.Once(0)
		var cycle *layout.CycleError
		require.ErrorAs(t, err, &cycle)
		assert.Len(t, cycle.Chain, 4)
		assert.Equal(t, root, cycle.Chain[0])
		assert.Equal(t, root, cycle.Chain[3])
	})
}

func TestNegotiationErrors(t *testing.T) {
	t.Run("non-child", func(t *testing.T) {
		f := newFixture(bounded)
		root := f.add(t, ecs.NoEntity, nil)
		a := f.add(t, root, nil)
		b := f.add(t, root, nil)
		f.add(t, a, nil)
		require.NoError(t, ecs.Attach(f.storage, a, layout.Layout{Func: func(ctx layout.Context) layout.Result {
			return layout.RequestChild(b, ctx.Constraints)
		}}))

		err := f.sched.Once(0)
		var negotiation *layout.NegotiationError
		require.ErrorAs(t, err, &negotiation)
		assert.Equal(t, a, negotiation.Entity)
		assert.Equal(t, b, negotiation.Child)
	})

	t.Run("repeated request", func(t *testing.T) {
		f := newFixture(bounded)
		var root ecs.Entity
		root = f.add(t, ecs.NoEntity, func(ctx layout.Context) layout.Result {
			return layout.RequestChild(ctx.Children[0], ctx.Constraints)
		})
		f.add(t, root, nil)
		f.add(t, root, nil)

		err := f.sched.Once(0)
		var negotiation *layout.NegotiationError
		require.ErrorAs(t, err, &negotiation)
		assert.Equal(t, "already requested", negotiation.Reason)
	})
}

func TestEveryEntityResolvedOnce(t *testing.T) {
	f := newFixture(bounded)
	answers := map[ecs.Entity]int{}
	counting := func(fn layout.Func) layout.Func {
		return func(ctx layout.Context) layout.Result {
			r := fn(ctx)
			if _, ok := r.Size(); ok {
				answers[ctx.Entity]++
			}
			return r
		}
	}

	root := f.add(t, ecs.NoEntity, counting(layout.Default))
	for i := 0; i < 3; i++ {
		branch := f.add(t, root, counting(layout.Default))
		for j := 0; j < 2; j++ {
			leaf := f.add(t, branch, counting(fixed(float64(10*(j+1)), 5)))
			f.add(t, leaf, counting(fixed(1, 1)))
		}
	}
	// A parent that answers without asking its children.
	lazy := f.add(t, root, counting(fixed(40, 40)))
	ignored := f.add(t, lazy, counting(fixed(500, 500)))

	require.NoError(t, f.sched.Once(0))

	assert.Len(t, answers, f.tree.Len())
	for id, n := range answers {
		assert.Equal(t, 1, n, "entity %d", id)
		assert.Equal(t, uint64(1), f.geometry(t, id).Frame)
	}

	g := f.geometry(t, ignored)
	assert.Equal(t, layout.Loose(layout.Size{Width: 40, Height: 40}), g.Constraints)
	assert.Equal(t, layout.Size{Width: 40, Height: 40}, g.Size)

	// A second frame resolves everything again, still once each.
	clear(answers)
	require.NoError(t, f.sched.Once(0))
	for _, n := range answers {
		assert.Equal(t, 1, n)
	}
	assert.Equal(t, uint64(2), f.geometry(t, root).Frame)
}

func TestMaxDepth(t *testing.T) {
	f := newFixture(bounded)
	f.system.MaxDepth = 5

	parent := f.add(t, ecs.NoEntity, nil)
	for i := 0; i < 10; i++ {
		parent = f.add(t, parent, nil)
	}

	err := f.sched.Once(0)
	require.ErrorIs(t, err, layout.ErrLayoutTooDeep)

	var sysErr *ecs.SystemError
	require.ErrorAs(t, err, &sysErr)
	assert.Equal(t, "System", sysErr.System)
}

func TestMissingGeometry(t *testing.T) {
	f := newFixture(bounded)
	root := f.add(t, ecs.NoEntity, nil)
	orphan := f.storage.Create()
	require.NoError(t, f.tree.RegisterNode(orphan))
	require.NoError(t, f.tree.AppendChild(root, orphan))

	err := f.sched.Once(0)
	require.ErrorIs(t, err, ecs.ErrMissingComponent)

	var missing *ecs.MissingComponentError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, orphan, missing.Entity)
}

func TestPositions(t *testing.T) {
	t.Run("padding offsets nest", func(t *testing.T) {
		f := newFixture(bounded)
		root := f.add(t, ecs.NoEntity, layout.Padding(layout.EdgeInsetsAll(5)))
		inner := f.add(t, root, layout.Padding(layout.EdgeInsets{Left: 3, Top: 2}))
		leaf := f.add(t, inner, fixed(20, 10))

		require.NoError(t, f.sched.Once(0))

		assert.Equal(t, layout.Size{Width: 33, Height: 22}, f.geometry(t, root).Size)
		assert.Equal(t, layout.Point{X: 5, Y: 5}, f.geometry(t, inner).Absolute)
		lg := f.geometry(t, leaf)
		assert.Equal(t, layout.Point{X: 3, Y: 2}, lg.Position)
		assert.Equal(t, layout.Point{X: 8, Y: 7}, lg.Absolute)
		assert.Equal(t, layout.Rect{X: 8, Y: 7, Width: 20, Height: 10}, lg.Bounds())
	})

	t.Run("row", func(t *testing.T) {
		f := newFixture(bounded)
		root := f.add(t, ecs.NoEntity, layout.Row(5))
		a := f.add(t, root, fixed(10, 8))
		b := f.add(t, root, fixed(20, 12))
		c := f.add(t, root, fixed(30, 4))

		require.NoError(t, f.sched.Once(0))

		assert.Equal(t, layout.Size{Width: 70, Height: 12}, f.geometry(t, root).Size)
		assert.Equal(t, 0.0, f.geometry(t, a).Position.X)
		assert.Equal(t, 15.0, f.geometry(t, b).Position.X)
		assert.Equal(t, 40.0, f.geometry(t, c).Position.X)
		assert.Equal(t, 160.0, f.geometry(t, c).Constraints.MaxWidth)
	})
}

func TestEmptyTree(t *testing.T) {
	f := newFixture(bounded)
	assert.NoError(t, f.sched.Once(0))
}

func TestErrorsMatch(t *testing.T) {
	cycle := &layout.CycleError{Entity: 2, Chain: []ecs.Entity{1, 2}}
	assert.True(t, errors.Is(cycle, layout.ErrLayoutCycle))
	assert.Equal(t, "layout cycle at entity 2: 1 -> 2", cycle.Error())
}
