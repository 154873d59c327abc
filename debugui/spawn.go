package debugui

import (
	"github.com/plus3/ooui/ecs"
)

// Inspector is the set of debug windows sharing one entity selection.
type Inspector struct {
	Browser     *TreeBrowser
	Components  *ComponentInspector
	Columns     *ColumnViewer
	Performance *PerformanceStats
	Queries     *QueryDebugger

	// DeltaTime feeds the frame graph; the host sets it each frame.
	DeltaTime float64
}

// NewInspector returns an inspector keeping historyFrames of frame timing.
func NewInspector(historyFrames int) *Inspector {
	return &Inspector{
		Browser:     &TreeBrowser{},
		Components:  NewComponentInspector(),
		Columns:     NewColumnViewer(),
		Performance: NewPerformanceStats(historyFrames),
		Queries:     NewQueryDebugger(),
	}
}

// Spawn creates one ImguiItem entity per window over storage, tree and
// sched, and registers an ImguiSystem to draw them. The entities are never
// added to the tree, so layout and render ignore them.
func Spawn(storage *ecs.Storage, tree *ecs.Tree, sched *ecs.Scheduler) *Inspector {
	in := NewInspector(120)

	items := []ImguiItem{
		{Render: func() { in.Browser.Render(storage, tree) }},
		{Render: func() { in.Components.Render(storage, in.Browser.Selected()) }},
		{Render: func() { in.Columns.Render(storage) }},
		{Render: func() { in.Performance.Render(storage, sched, in.DeltaTime) }},
		{Render: func() { in.Queries.Render(storage, sched, in.Browser) }},
	}
	ecs.RegisterComponent[ImguiItem](storage.Registry())
	for _, item := range items {
		storage.Spawn(item)
	}

	NewImguiSystem().Register(sched)
	return in
}
