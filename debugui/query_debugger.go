package debugui

import (
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
)

// ComponentTypes returns every component type attached to some entity,
// sorted by name.
func ComponentTypes(storage *ecs.Storage) []reflect.Type {
	seen := make(map[reflect.Type]bool)
	var types []reflect.Type
	for _, id := range storage.Entities() {
		for _, t := range storage.Types(id) {
			if !seen[t] {
				seen[t] = true
				types = append(types, t)
			}
		}
	}
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// Matching returns the entities, in creation order, that carry every type
// in required. An empty required set matches nothing.
func Matching(storage *ecs.Storage, required []reflect.Type) []ecs.Entity {
	if len(required) == 0 {
		return nil
	}
	var out []ecs.Entity
	for _, id := range storage.Entities() {
		set := storage.Set(id)
		if !slices.ContainsFunc(required, func(t reflect.Type) bool { return !set.Has(t) }) {
			out = append(out, id)
		}
	}
	return out
}

// QueryDebugger tries component filters against live storage and shows each
// system's current view. Clicking an entity selects it in the browser.
type QueryDebugger struct {
	selectedTypes  map[string]bool
	selectedSystem string
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{selectedTypes: make(map[string]bool)}
}

func (qd *QueryDebugger) Render(storage *ecs.Storage, sched *ecs.Scheduler, browser *TreeBrowser) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		clear(qd.selectedTypes)
	}

	var required []reflect.Type
	for _, t := range ComponentTypes(storage) {
		name := t.String()
		selected := qd.selectedTypes[name]
		if imgui.Checkbox(name, &selected) {
			qd.selectedTypes[name] = selected
		}
		if selected {
			required = append(required, t)
		}
	}

	imgui.Separator()
	if len(required) == 0 {
		imgui.Text("No component types selected")
	} else {
		matches := Matching(storage, required)
		imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))
		qd.renderEntities("QueryMatches", matches, browser)
	}

	if imgui.TreeNodeStr("System Views") {
		for _, sys := range sched.GetStats().Systems {
			if imgui.SelectableBool(fmt.Sprintf("%s (%d)", sys.Name, sys.ViewSize)) {
				qd.selectedSystem = sys.Name
			}
		}
		if qd.selectedSystem != "" {
			imgui.Separator()
			imgui.Text(qd.selectedSystem)
			qd.renderEntities("SystemView", sched.View(qd.selectedSystem), browser)
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebugger) renderEntities(id string, entities []ecs.Entity, browser *TreeBrowser) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV(id, 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Position")
		imgui.TableSetupColumn("Entity")
		imgui.TableHeadersRow()

		for i, e := range entities {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", i))
			imgui.TableNextColumn()
			label := fmt.Sprintf("%d##%s", e, id)
			if imgui.SelectableBoolV(label, browser.Selected() == e, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				browser.Select(e)
			}
		}

		imgui.EndTable()
	}
}
