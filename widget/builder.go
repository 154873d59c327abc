package widget

import (
	"fmt"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/logger"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/theme"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth bounds template nesting when Builder.MaxDepth is zero.
const DefaultMaxDepth = 512

// Builder materializes widget templates into storage and tree.
type Builder struct {
	Storage  *ecs.Storage
	Tree     *ecs.Tree
	Theme    *theme.Theme
	MaxDepth int
	Log      logrus.FieldLogger

	next render.CreationOrder
}

// NewBuilder returns a builder writing into storage and tree.
func NewBuilder(storage *ecs.Storage, tree *ecs.Tree) *Builder {
	return &Builder{
		Storage:  storage,
		Tree:     tree,
		MaxDepth: DefaultMaxDepth,
		Log:      logger.Discard(),
	}
}

// Build expands w depth-first, pre-order, and returns its entity. Creation
// order ids follow the traversal. The first error aborts the subtree.
func (b *Builder) Build(w Widget) (ecs.Entity, error) {
	maxDepth := b.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return b.expand(w, 0, maxDepth)
}

func (b *Builder) expand(w Widget, depth, maxDepth int) (ecs.Entity, error) {
	if depth >= maxDepth {
		return ecs.NoEntity, fmt.Errorf("widget %T at depth %d: %w", w, depth, ErrTemplateTooDeep)
	}

	id := b.Storage.Create()
	if err := b.attachDefaults(id, w); err != nil {
		return id, err
	}

	for _, p := range w.Properties() {
		if err := p.Attach(b.Storage, id); err != nil {
			return id, err
		}
	}

	if s, ok := w.(Stateful); ok {
		if state := s.State(); state != nil {
			if err := ecs.Attach(b.Storage, id, stateHolder{State: state}); err != nil {
				return id, err
			}
		}
	}

	if err := b.Tree.RegisterNode(id); err != nil {
		return id, err
	}

	b.Log.WithFields(logrus.Fields{
		"entity": id,
		"widget": fmt.Sprintf("%T", w),
		"depth":  depth,
	}).Debug("built widget")

	for _, childWidget := range w.Template().Children() {
		child, err := b.expand(childWidget, depth+1, maxDepth)
		if err != nil {
			return id, err
		}
		if err := b.Tree.AppendChild(id, child); err != nil {
			return id, err
		}
	}

	return id, nil
}

func (b *Builder) attachDefaults(id ecs.Entity, w Widget) error {
	fn := layout.Func(layout.Default)
	if l, ok := w.(Layouter); ok {
		if custom := l.Layout(); custom != nil {
			fn = custom
		}
	}

	order := b.next
	b.next++

	if err := ecs.Attach(b.Storage, id, layout.DefaultGeometry()); err != nil {
		return err
	}
	if err := ecs.Attach(b.Storage, id, layout.Layout{Func: fn}); err != nil {
		return err
	}
	if err := ecs.Attach(b.Storage, id, order); err != nil {
		return err
	}

	visible := true
	if v, ok := w.(Visibility); ok {
		visible = v.Visible()
	}
	if visible {
		if err := ecs.Attach(b.Storage, id, render.Drawable{}); err != nil {
			return err
		}
	}

	if s, ok := w.(Selected); ok {
		sel := s.Selector()
		if err := ecs.Attach(b.Storage, id, sel); err != nil {
			return err
		}
		if style, ok := b.Theme.Resolve(sel); ok {
			if err := ecs.Attach(b.Storage, id, style); err != nil {
				return err
			}
		}
	}
	return nil
}
