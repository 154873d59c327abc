// Package widget turns widget templates into tree entities and runs the
// per-frame pipeline over them.
package widget

import (
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
)

// Widget describes one node of a UI and, through its template, its
// children.
type Widget interface {
	Template() Template
	Properties() []Property
}

// Layouter overrides the default layout function.
type Layouter interface {
	Layout() layout.Func
}

// Stateful widgets carry behaviour that runs after layout.
type Stateful interface {
	State() State
}

// Selected widgets carry a theme selector.
type Selected interface {
	Selector() theme.Selector
}

// Visibility lets a widget opt out of the render pass.
type Visibility interface {
	Visible() bool
}

// State is per-entity widget behaviour.
type State interface {
	// Init runs once, after the whole tree is built.
	Init(ctx *Context) error
	// UpdatePostLayout runs every frame after the layout pass.
	UpdatePostLayout(ctx *Context) error
}

// stateHolder boxes a State so it can be stored as a component.
type stateHolder struct {
	State State
}

// StateOf returns the State attached to id, or nil.
func StateOf(storage *ecs.Storage, id ecs.Entity) State {
	h := ecs.ReadComponent[stateHolder](storage, id)
	if h == nil {
		return nil
	}
	return h.State
}

type templateKind int

const (
	leaf templateKind = iota
	single
	multi
)

// Template is the shape of a widget's subtree.
type Template struct {
	kind     templateKind
	children []Widget
}

// Leaf has no children.
func Leaf() Template {
	return Template{kind: leaf}
}

// Single has exactly one child.
func Single(child Widget) Template {
	return Template{kind: single, children: []Widget{child}}
}

// Multi has the given children, in order.
func Multi(children ...Widget) Template {
	return Template{kind: multi, children: children}
}

// Children returns the template's child widgets in order.
func (t Template) Children() []Widget {
	return t.children
}

// Property is a value attached to a widget's entity as a component.
type Property interface {
	Attach(storage *ecs.Storage, id ecs.Entity) error
}

type prop[T any] struct {
	value T
}

// Prop returns a Property attaching v as a T component.
func Prop[T any](v T) Property {
	return prop[T]{value: v}
}

func (p prop[T]) Attach(storage *ecs.Storage, id ecs.Entity) error {
	return ecs.Attach(storage, id, p.value)
}
