package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
)

// NodeInfo is one row of the tree browser.
type NodeInfo struct {
	Entity ecs.Entity
	Depth  int
	Label  string
	Bounds layout.Rect
	// Sized is false until layout has resolved the node at least once.
	Sized bool
}

// CollectNodes walks tree in pre-order and returns every node whose label
// contains filter, case-insensitively. An empty filter keeps every node.
func CollectNodes(storage *ecs.Storage, tree *ecs.Tree, filter string) []NodeInfo {
	filter = strings.ToLower(filter)
	nodes := make([]NodeInfo, 0, tree.Len())

	tree.Walk(func(id ecs.Entity, depth int) bool {
		info := NodeInfo{Entity: id, Depth: depth, Label: nodeLabel(storage, id)}
		if g := ecs.ReadComponent[layout.Geometry](storage, id); g != nil {
			info.Bounds = g.Bounds()
			info.Sized = g.Frame > 0
		}
		if filter == "" || strings.Contains(strings.ToLower(info.Label), filter) {
			nodes = append(nodes, info)
		}
		return true
	})

	return nodes
}

func nodeLabel(storage *ecs.Storage, id ecs.Entity) string {
	if sel := ecs.ReadComponent[theme.Selector](storage, id); sel != nil {
		return fmt.Sprintf("%d %s", id, sel.Key())
	}
	return fmt.Sprintf("%d", id)
}

// TreeBrowser lists the widget tree and tracks the selected entity.
type TreeBrowser struct {
	filterText string
	selected   ecs.Entity
}

// Selected returns the entity last clicked, or ecs.NoEntity.
func (tb *TreeBrowser) Selected() ecs.Entity {
	return tb.selected
}

// Select marks id as the inspected entity.
func (tb *TreeBrowser) Select(id ecs.Entity) {
	tb.selected = id
}

func (tb *TreeBrowser) Render(storage *ecs.Storage, tree *ecs.Tree) {
	if !imgui.BeginV("Tree Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &tb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		tb.filterText = ""
	}

	if tb.filterText != "" {
		tb.renderFlat(CollectNodes(storage, tree, tb.filterText))
	} else if root := tree.Root(); root != ecs.NoEntity {
		tb.renderNode(storage, tree, root)
	} else {
		imgui.Text("Tree is empty")
	}

	imgui.End()
}

func (tb *TreeBrowser) renderNode(storage *ecs.Storage, tree *ecs.Tree, id ecs.Entity) {
	children := tree.Children(id)

	flags := imgui.TreeNodeFlagsOpenOnArrow | imgui.TreeNodeFlagsSpanAvailWidth
	if len(children) == 0 {
		flags |= imgui.TreeNodeFlagsLeaf
	}
	if tb.selected == id {
		flags |= imgui.TreeNodeFlagsSelected
	}

	open := imgui.TreeNodeExStrV(nodeLabel(storage, id), flags)
	if imgui.IsItemClicked() {
		tb.selected = id
	}
	if g := ecs.ReadComponent[layout.Geometry](storage, id); g != nil && imgui.IsItemHovered() {
		b := g.Bounds()
		imgui.SetTooltip(fmt.Sprintf("%.0fx%.0f @ (%.0f, %.0f)", b.Width, b.Height, b.X, b.Y))
	}
	if !open {
		return
	}
	for _, child := range children {
		tb.renderNode(storage, tree, child)
	}
	imgui.TreePop()
}

func (tb *TreeBrowser) renderFlat(nodes []NodeInfo) {
	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("NodeTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Node")
		imgui.TableSetupColumn("Depth")
		imgui.TableSetupColumn("Bounds")
		imgui.TableHeadersRow()

		for _, node := range nodes {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(node.Label, tb.selected == node.Entity, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				tb.selected = node.Entity
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", node.Depth))

			imgui.TableNextColumn()
			if node.Sized {
				imgui.Text(fmt.Sprintf("%.0fx%.0f @ (%.0f, %.0f)", node.Bounds.Width, node.Bounds.Height, node.Bounds.X, node.Bounds.Y))
			} else {
				imgui.Text("-")
			}
		}

		imgui.EndTable()
	}

	imgui.Text(fmt.Sprintf("Matches: %d", len(nodes)))
}
