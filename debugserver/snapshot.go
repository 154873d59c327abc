package debugserver

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/theme"
)

// Float is a float64 that survives JSON encoding when infinite or NaN.
// Unbounded constraints are the common case.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsInf(v, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "Infinity":
			*f = Float(math.Inf(1))
		case "-Infinity":
			*f = Float(math.Inf(-1))
		case "NaN":
			*f = Float(math.NaN())
		default:
			return fmt.Errorf("invalid float %q", s)
		}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

type Rect struct {
	X      Float `json:"x"`
	Y      Float `json:"y"`
	Width  Float `json:"width"`
	Height Float `json:"height"`
}

type Constraints struct {
	MinWidth  Float `json:"minWidth"`
	MaxWidth  Float `json:"maxWidth"`
	MinHeight Float `json:"minHeight"`
	MaxHeight Float `json:"maxHeight"`
}

// Node is one tree entity as seen after a frame.
type Node struct {
	Entity      ecs.Entity   `json:"entity"`
	Parent      ecs.Entity   `json:"parent,omitempty"`
	Depth       int          `json:"depth"`
	Selector    string       `json:"selector,omitempty"`
	Label       string       `json:"label,omitempty"`
	Bounds      Rect         `json:"bounds"`
	Constraints *Constraints `json:"constraints,omitempty"`
	// Frame is the last frame in which layout resolved the node.
	Frame uint64 `json:"frame"`
}

// Snapshot is the serialized tree after one frame.
type Snapshot struct {
	Frame uint64 `json:"frame"`
	Nodes []Node `json:"nodes"`
}

// Capture serializes tree in pre-order. Nodes without Geometry are listed
// with zero bounds.
func Capture(storage *ecs.Storage, tree *ecs.Tree, frame uint64) Snapshot {
	snap := Snapshot{Frame: frame, Nodes: make([]Node, 0, tree.Len())}

	tree.Walk(func(id ecs.Entity, depth int) bool {
		node := Node{Entity: id, Depth: depth}
		if parent, ok := tree.Parent(id); ok {
			node.Parent = parent
		}
		if sel := ecs.ReadComponent[theme.Selector](storage, id); sel != nil {
			node.Selector = sel.Key()
		}
		if label := ecs.ReadComponent[render.Label](storage, id); label != nil {
			node.Label = label.Text
		}
		if g := ecs.ReadComponent[layout.Geometry](storage, id); g != nil {
			b := g.Bounds()
			node.Bounds = Rect{X: Float(b.X), Y: Float(b.Y), Width: Float(b.Width), Height: Float(b.Height)}
			node.Frame = g.Frame
			if g.Frame > 0 {
				c := g.Constraints
				node.Constraints = &Constraints{
					MinWidth:  Float(c.MinWidth),
					MaxWidth:  Float(c.MaxWidth),
					MinHeight: Float(c.MinHeight),
					MaxHeight: Float(c.MaxHeight),
				}
			}
		}
		snap.Nodes = append(snap.Nodes, node)
		return true
	})

	return snap
}
