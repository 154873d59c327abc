package layout

import (
	"github.com/plus3/ooui/ecs"
)

// Result is what a layout function returns: either a final size, or a
// request to resolve one of its children first.
type Result struct {
	request     bool
	size        Size
	child       ecs.Entity
	constraints BoxConstraints
}

// Sized is the final answer for the entity under evaluation.
func Sized(size Size) Result {
	return Result{size: size}
}

// RequestChild defers the answer until child has been laid out under
// constraints. The layout function is invoked again afterwards.
func RequestChild(child ecs.Entity, constraints BoxConstraints) Result {
	return Result{request: true, child: child, constraints: constraints}
}

// Size returns the final size, if this is not a request.
func (r Result) Size() (Size, bool) {
	return r.size, !r.request
}

// Request returns the requested child and its constraints, if this is a
// request.
func (r Result) Request() (ecs.Entity, BoxConstraints, bool) {
	return r.child, r.constraints, r.request
}

// Func is a per-entity layout function.
type Func func(ctx Context) Result

// Layout is the component holding an entity's layout function. Entities
// without one use Default.
type Layout struct {
	Func Func
}

// Context is the input to a layout function.
type Context struct {
	Entity      ecs.Entity
	Storage     *ecs.Storage
	Constraints BoxConstraints
	Children    []ecs.Entity

	// Positions is shared by the whole pass. A function writes its
	// children's offsets, relative to itself, into it.
	Positions map[ecs.Entity]Point

	// Forced is set when the entity deferred to its only child; it holds
	// that child's resolved size.
	Forced *Size

	resolved map[ecs.Entity]bool
}

// Resolved reports whether child already has its final size this pass.
func (c Context) Resolved(child ecs.Entity) bool {
	return c.resolved[child]
}

// ChildSize returns the size child resolved to this pass.
func (c Context) ChildSize(child ecs.Entity) (Size, bool) {
	if !c.resolved[child] {
		return Size{}, false
	}
	g, err := ecs.Get[Geometry](c.Storage, child)
	if err != nil {
		return Size{}, false
	}
	return g.Size, true
}

// Place sets the offset of child relative to the entity being laid out.
func (c Context) Place(child ecs.Entity, p Point) {
	c.Positions[child] = p
}
