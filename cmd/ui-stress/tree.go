package main

import (
	"fmt"

	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/widget"
	"github.com/plus3/ooui/widgets"
)

// treeShape describes the generated widget tree.
type treeShape struct {
	Depth  int
	Fanout int
	// SliderEvery puts a slider at every n-th leaf; zero disables sliders.
	SliderEvery int
}

// generated is a built stress tree with handles to its sliders.
type generated struct {
	Root    widget.Widget
	Sliders []*widgets.Slider
	Leaves  int
}

// generate builds rows of padded containers Depth levels deep, each row
// holding Fanout children. Leaves are text labels or sliders.
func generate(shape treeShape) *generated {
	g := &generated{}
	g.Root = g.level(shape, 0, "n")
	return g
}

func (g *generated) level(shape treeShape, depth int, path string) widget.Widget {
	if depth >= shape.Depth {
		g.Leaves++
		if shape.SliderEvery > 0 && g.Leaves%shape.SliderEvery == 0 {
			s := widgets.NewSlider(path, 0, 100, 50)
			g.Sliders = append(g.Sliders, s)
			return s
		}
		return &widgets.Text{ID: path, Text: path}
	}

	children := make([]widget.Widget, shape.Fanout)
	for i := range children {
		children[i] = g.level(shape, depth+1, fmt.Sprintf("%s.%d", path, i))
	}
	return &widgets.Container{
		ID:      path,
		Padding: layout.EdgeInsetsAll(1),
		Child:   &widgets.Row{Spacing: 1, Children: children},
	}
}
