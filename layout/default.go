package layout

import "math"

// Default passes constraints through to a single child and takes its size.
// With no children it takes the minimum size. With several children it
// resolves each under the same constraints and sizes itself to their union,
// all stacked at the origin.
func Default(ctx Context) Result {
	if ctx.Forced != nil {
		ctx.Place(ctx.Children[0], Point{})
		return Sized(*ctx.Forced)
	}

	switch len(ctx.Children) {
	case 0:
		return Sized(ctx.Constraints.Min())
	case 1:
		return RequestChild(ctx.Children[0], ctx.Constraints)
	}

	var extent Size
	for _, child := range ctx.Children {
		if !ctx.Resolved(child) {
			return RequestChild(child, ctx.Constraints)
		}
		size, _ := ctx.ChildSize(child)
		offset := ctx.Positions[child]
		extent.Width = math.Max(extent.Width, offset.X+size.Width)
		extent.Height = math.Max(extent.Height, offset.Y+size.Height)
	}
	return Sized(ctx.Constraints.Constrain(extent))
}

// Padding insets a single child by insets. Extra children are left to the
// pass, which lays them out loosely at the origin.
func Padding(insets EdgeInsets) Func {
	return func(ctx Context) Result {
		if len(ctx.Children) == 0 {
			return Sized(ctx.Constraints.Constrain(Size{
				Width:  insets.Horizontal(),
				Height: insets.Vertical(),
			}))
		}

		child := ctx.Children[0]
		var size Size
		if ctx.Forced != nil {
			size = *ctx.Forced
		} else if s, ok := ctx.ChildSize(child); ok {
			size = s
		} else {
			return RequestChild(child, ctx.Constraints.Deflate(insets))
		}

		ctx.Place(child, Point{X: insets.Left, Y: insets.Top})
		return Sized(ctx.Constraints.Constrain(Size{
			Width:  size.Width + insets.Horizontal(),
			Height: size.Height + insets.Vertical(),
		}))
	}
}

// Row lays children out left to right with spacing between them, each
// loosened to the row's height.
func Row(spacing float64) Func {
	return func(ctx Context) Result {
		var x, height float64
		for i, child := range ctx.Children {
			if i > 0 {
				x += spacing
			}
			size, ok := ctx.ChildSize(child)
			if !ok {
				remaining := ctx.Constraints.Loosen()
				remaining.MaxWidth = math.Max(0, remaining.MaxWidth-x)
				return RequestChild(child, remaining)
			}
			ctx.Place(child, Point{X: x})
			x += size.Width
			height = math.Max(height, size.Height)
		}
		return Sized(ctx.Constraints.Constrain(Size{Width: x, Height: height}))
	}
}
