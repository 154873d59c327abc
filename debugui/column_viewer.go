package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
)

const (
	columnSortType = iota
	columnSortCount
)

// SortColumns orders the column breakdown by type name or entity count.
// Ties on count fall back to type name.
func SortColumns(columns []ecs.ColumnStats, by int, ascending bool) {
	slices.SortStableFunc(columns, func(a, b ecs.ColumnStats) int {
		var c int
		if by == columnSortCount {
			c = cmp.Compare(a.EntityCount, b.EntityCount)
		}
		if c == 0 {
			c = strings.Compare(a.Type, b.Type)
		}
		if !ascending {
			return -c
		}
		return c
	})
}

// ColumnViewer lists component columns with their entity counts.
type ColumnViewer struct {
	sortColumn    int
	sortAscending bool
}

func NewColumnViewer() *ColumnViewer {
	return &ColumnViewer{sortColumn: columnSortCount}
}

func (cv *ColumnViewer) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Column Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	columns := storage.CollectStats().ColumnBreakdown

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ColumnTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Component")
		imgui.TableSetupColumn("Entities")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			cv.sortColumn = int(spec.ColumnIndex())
			cv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		SortColumns(columns, cv.sortColumn, cv.sortAscending)

		maxCount := 0
		for _, col := range columns {
			maxCount = max(maxCount, col.EntityCount)
		}

		for _, col := range columns {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			imgui.Text(col.Type)

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", col.EntityCount))

			if maxCount > 0 {
				barWidth := float32(col.EntityCount) / float32(maxCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
}
