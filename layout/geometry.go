package layout

// Geometry is the layout-derived component. The layout pass rewrites it
// every frame; nothing else writes it before render reads it.
type Geometry struct {
	Size Size
	// Position is relative to the parent.
	Position Point
	// Absolute is relative to the root.
	Absolute    Point
	Constraints BoxConstraints
	// Frame is the frame in which Size was last resolved.
	Frame uint64
}

// DefaultGeometry is attached to every entity the builder creates.
func DefaultGeometry() Geometry {
	return Geometry{
		Size:     Size{Width: 200, Height: 50},
		Position: Point{X: 10, Y: 10},
	}
}

// Bounds returns the absolute rectangle.
func (g Geometry) Bounds() Rect {
	return Rect{X: g.Absolute.X, Y: g.Absolute.Y, Width: g.Size.Width, Height: g.Size.Height}
}
