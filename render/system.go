// Package render draws the laid-out tree through a Backend.
package render

import (
	"reflect"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
)

// Priority is the scheduler priority of the render pass; it runs after
// layout.
const Priority = 1

type drawView struct {
	*layout.Geometry
	*CreationOrder
	Style *theme.Style `ecs:"optional"`
	Label *Label       `ecs:"optional"`
}

// System issues one draw call per Drawable entity in creation order.
type System struct {
	Backend Backend

	view    *ecs.View[drawView]
	storage *ecs.Storage
}

// NewSystem returns a render pass drawing to backend.
func NewSystem(backend Backend) *System {
	return &System{Backend: backend}
}

// Register adds s to sched with its priority, filter and sort.
func (s *System) Register(sched *ecs.Scheduler) {
	sched.Register(s,
		ecs.WithName("render"),
		ecs.WithPriority(Priority),
		ecs.WithFilter(ecs.With[Drawable]()),
		ecs.WithSort(ByCreationOrder()),
	)
}

// Execute implements ecs.System. A backend error aborts the frame.
func (s *System) Execute(frame *ecs.UpdateFrame) error {
	if s.view == nil || s.storage != frame.Storage {
		s.view = ecs.NewView[drawView](frame.Storage)
		s.storage = frame.Storage
	}

	if err := s.Backend.Begin(); err != nil {
		return err
	}

	var row drawView
	for _, id := range frame.Entities {
		if !s.view.Fill(id, &row) {
			return &ecs.MissingComponentError{Entity: id, Type: reflect.TypeFor[layout.Geometry]()}
		}

		call := DrawCall{
			Entity: id,
			Order:  *row.CreationOrder,
			Bounds: row.Geometry.Bounds(),
		}
		if row.Style != nil {
			call.Style = *row.Style
		}
		if row.Label != nil {
			call.Label = row.Label.Text
		}

		if err := s.Backend.Draw(call); err != nil {
			return err
		}
	}

	return s.Backend.End()
}
