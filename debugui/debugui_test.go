package debugui_test

import (
	"reflect"
	"testing"

	"github.com/plus3/ooui/debugui"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/logger"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/widget"
	"github.com/plus3/ooui/widgets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type marker struct{}

type tuning struct {
	Small   int8
	Count   uint
	Ratio   float32
	Enabled bool
	Name    string
	Tags    []string
	Next    *tuning
	hidden  int
}

func TestImguiSystem(t *testing.T) {
	storage := ecs.NewStorage(nil)
	sched := ecs.NewScheduler(storage, ecs.NewTree())

	var order []string
	for _, name := range []string{"first", "second"} {
		id := storage.Create()
		require.NoError(t, ecs.Attach(storage, id, debugui.ImguiItem{Render: func() { order = append(order, name) }}))
	}
	require.NoError(t, ecs.Attach(storage, storage.Create(), debugui.ImguiItem{}))

	sys := &debugui.ImguiSystem{Capture: func() (bool, bool) { return true, false }}
	sys.Register(sched)

	require.NoError(t, sched.Once(0))
	assert.Equal(t, []string{"first", "second"}, order)

	state := ecs.SingletonOf[debugui.ImguiInputState](storage)
	require.NotNil(t, state)
	assert.True(t, state.WantCaptureMouse)
	assert.False(t, state.WantCaptureKeyboard)

	stats := sched.GetStats()
	require.Len(t, stats.Systems, 1)
	assert.Equal(t, "imgui", stats.Systems[0].Name)
	assert.Equal(t, 3, stats.Systems[0].ViewSize)
}

func TestCollectNodes(t *testing.T) {
	m := widget.NewManager(&render.Recorder{}, nil, nil)
	m.SetLogger(logger.Discard())
	require.NoError(t, m.Root(&widgets.Container{
		ID:      "panel",
		Padding: layout.EdgeInsetsAll(4),
		Child:   &widgets.Text{ID: "title", Text: "Hello"},
	}))

	t.Run("before layout", func(t *testing.T) {
		nodes := debugui.CollectNodes(m.Storage(), m.Tree(), "")
		require.Len(t, nodes, 2)
		assert.False(t, nodes[0].Sized)
	})

	require.NoError(t, m.Run(0))

	t.Run("all nodes in pre-order", func(t *testing.T) {
		nodes := debugui.CollectNodes(m.Storage(), m.Tree(), "")
		require.Len(t, nodes, 2)

		assert.Equal(t, "1 container#panel", nodes[0].Label)
		assert.Equal(t, 0, nodes[0].Depth)
		assert.True(t, nodes[0].Sized)
		assert.Equal(t, 43.0, nodes[0].Bounds.Width)
		assert.Equal(t, 21.0, nodes[0].Bounds.Height)

		assert.Equal(t, "2 text#title", nodes[1].Label)
		assert.Equal(t, 1, nodes[1].Depth)
		assert.Equal(t, nodes[0].Bounds.X+4, nodes[1].Bounds.X)
	})

	t.Run("filter is case-insensitive", func(t *testing.T) {
		nodes := debugui.CollectNodes(m.Storage(), m.Tree(), "TITLE")
		require.Len(t, nodes, 1)
		assert.Equal(t, ecs.Entity(2), nodes[0].Entity)
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, debugui.CollectNodes(m.Storage(), m.Tree(), "slider"))
	})

	t.Run("empty tree", func(t *testing.T) {
		assert.Empty(t, debugui.CollectNodes(ecs.NewStorage(nil), ecs.NewTree(), ""))
	})
}

func TestSetField(t *testing.T) {
	v := tuning{}
	field := func(name string) reflect.Value {
		return reflect.ValueOf(&v).Elem().FieldByName(name)
	}

	require.NoError(t, debugui.SetField(field("Small"), int64(-12)))
	require.NoError(t, debugui.SetField(field("Count"), int64(7)))
	require.NoError(t, debugui.SetField(field("Ratio"), 0.5))
	require.NoError(t, debugui.SetField(field("Enabled"), true))
	require.NoError(t, debugui.SetField(field("Name"), "thumb"))
	assert.Equal(t, tuning{Small: -12, Count: 7, Ratio: 0.5, Enabled: true, Name: "thumb"}, v)

	assert.Error(t, debugui.SetField(field("Small"), int64(300)))
	assert.Error(t, debugui.SetField(field("Count"), int64(-1)))
	assert.Error(t, debugui.SetField(field("Name"), 3))
	assert.Error(t, debugui.SetField(field("Tags"), "a"))
	assert.Error(t, debugui.SetField(field("hidden"), int64(1)))
	assert.Equal(t, int8(-12), v.Small)
}

func TestReflectionCache(t *testing.T) {
	rc := debugui.NewReflectionCache()
	fields := rc.Fields(reflect.TypeFor[tuning]())

	editors := make(map[string]debugui.Editor, len(fields))
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
		editors[f.Name] = f.Editor
	}
	assert.Equal(t, []string{"Small", "Count", "Ratio", "Enabled", "Name", "Tags", "Next"}, names)
	assert.Equal(t, map[string]debugui.Editor{
		"Small":   debugui.IntEditor,
		"Count":   debugui.UintEditor,
		"Ratio":   debugui.FloatEditor,
		"Enabled": debugui.BoolEditor,
		"Name":    debugui.StringEditor,
		"Tags":    debugui.ReadOnly,
		"Next":    debugui.StructEditor,
	}, editors)

	next := fields[6]
	assert.True(t, next.Nullable)
	assert.Equal(t, 6, next.Index)
	assert.False(t, fields[0].Nullable)

	assert.Empty(t, rc.Fields(reflect.TypeFor[int]()))
	assert.Equal(t, debugui.UintEditor, debugui.EditorFor(reflect.TypeFor[render.CreationOrder]()))
}

func TestSetFieldRejectsPointers(t *testing.T) {
	v := tuning{}
	err := debugui.SetField(reflect.ValueOf(&v).Elem().FieldByName("Next"), int64(1))
	assert.Error(t, err)
}

func TestFrameHistory(t *testing.T) {
	h := debugui.NewFrameHistory(3)
	assert.Equal(t, float32(0), h.Average())

	h.Record(0.010)
	h.Record(0.020)
	assert.InDelta(t, 15, h.Average(), 1e-4)

	h.Record(0.030)
	h.Record(0.040)
	assert.InDelta(t, 30, h.Average(), 1e-4)
}

func TestSortColumns(t *testing.T) {
	columns := []ecs.ColumnStats{
		{Type: "b", EntityCount: 2},
		{Type: "a", EntityCount: 5},
		{Type: "c", EntityCount: 2},
	}

	debugui.SortColumns(columns, 1, false)
	assert.Equal(t, []string{"a", "c", "b"}, columnTypes(columns))

	debugui.SortColumns(columns, 1, true)
	assert.Equal(t, []string{"b", "c", "a"}, columnTypes(columns))

	debugui.SortColumns(columns, 0, true)
	assert.Equal(t, []string{"a", "b", "c"}, columnTypes(columns))
}

func columnTypes(columns []ecs.ColumnStats) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = c.Type
	}
	return out
}

func TestMatching(t *testing.T) {
	storage := ecs.NewStorage(nil)

	both := storage.Create()
	require.NoError(t, ecs.Attach(storage, both, marker{}))
	require.NoError(t, ecs.Attach(storage, both, tuning{}))

	onlyMarker := storage.Create()
	require.NoError(t, ecs.Attach(storage, onlyMarker, marker{}))
	storage.Create()

	types := debugui.ComponentTypes(storage)
	assert.Equal(t, []reflect.Type{reflect.TypeFor[marker](), reflect.TypeFor[tuning]()}, types)

	assert.Equal(t, []ecs.Entity{both, onlyMarker}, debugui.Matching(storage, types[:1]))
	assert.Equal(t, []ecs.Entity{both}, debugui.Matching(storage, types))
	assert.Nil(t, debugui.Matching(storage, nil))
}

func TestInspectorSelection(t *testing.T) {
	in := debugui.NewInspector(10)
	assert.Equal(t, ecs.NoEntity, in.Browser.Selected())

	in.Browser.Select(4)
	assert.Equal(t, ecs.Entity(4), in.Browser.Selected())
}
