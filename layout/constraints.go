package layout

import "math"

// Size is a width and height in logical pixels.
type Size struct {
	Width, Height float64
}

// Point is an offset in logical pixels. Y grows downward.
type Point struct {
	X, Y float64
}

// Add returns p translated by o.
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Unbounded is the max extent of a constraint with no upper bound.
var Unbounded = math.Inf(1)

// BoxConstraints bounds the size a child may choose. They flow from parent
// to child during layout.
type BoxConstraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Tight returns constraints that only admit size.
func Tight(size Size) BoxConstraints {
	return BoxConstraints{
		MinWidth: size.Width, MaxWidth: size.Width,
		MinHeight: size.Height, MaxHeight: size.Height,
	}
}

// Loose returns constraints from zero up to size.
func Loose(size Size) BoxConstraints {
	return BoxConstraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Min returns the smallest admitted size.
func (c BoxConstraints) Min() Size {
	return Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Max returns the largest admitted size.
func (c BoxConstraints) Max() Size {
	return Size{Width: c.MaxWidth, Height: c.MaxHeight}
}

// IsTight reports whether exactly one size is admitted.
func (c BoxConstraints) IsTight() bool {
	return c.MinWidth >= c.MaxWidth && c.MinHeight >= c.MaxHeight
}

// Constrain clamps size into the constraints.
func (c BoxConstraints) Constrain(size Size) Size {
	return Size{
		Width:  clamp(size.Width, c.MinWidth, c.MaxWidth),
		Height: clamp(size.Height, c.MinHeight, c.MaxHeight),
	}
}

// Loosen drops the minimums.
func (c BoxConstraints) Loosen() BoxConstraints {
	c.MinWidth, c.MinHeight = 0, 0
	return c
}

// Deflate shrinks the constraints by insets, never below zero.
func (c BoxConstraints) Deflate(insets EdgeInsets) BoxConstraints {
	h, v := insets.Horizontal(), insets.Vertical()
	return BoxConstraints{
		MinWidth:  math.Max(0, c.MinWidth-h),
		MaxWidth:  math.Max(0, c.MaxWidth-h),
		MinHeight: math.Max(0, c.MinHeight-v),
		MaxHeight: math.Max(0, c.MaxHeight-v),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// EdgeInsets are offsets from each edge of a box.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// EdgeInsetsAll returns equal insets on every side.
func EdgeInsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// EdgeInsetsSymmetric returns horizontal insets on left/right and vertical
// insets on top/bottom.
func EdgeInsetsSymmetric(horizontal, vertical float64) EdgeInsets {
	return EdgeInsets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

func (e EdgeInsets) Horizontal() float64 { return e.Left + e.Right }
func (e EdgeInsets) Vertical() float64 { return e.Top + e.Bottom }
