package widget

import (
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/theme"
)

// Context is handed to State callbacks.
type Context struct {
	Entity    ecs.Entity
	Storage   *ecs.Storage
	Tree      *ecs.Tree
	DeltaTime float64

	events *EventQueue
}

// EntityOfChild finds the first descendant, in pre-order, whose selector id
// is id.
func (c *Context) EntityOfChild(id string) (ecs.Entity, error) {
	if found, ok := findByID(c.Storage, c.Tree, c.Entity, id, false); ok {
		return found, nil
	}
	return ecs.NoEntity, &MissingChildEntityError{Entity: c.Entity, ID: id}
}

// Push enqueues an outbound event.
func (c *Context) Push(e Event) {
	c.events.Push(e)
}

func findByID(storage *ecs.Storage, tree *ecs.Tree, from ecs.Entity, id string, self bool) (ecs.Entity, bool) {
	if self {
		if sel := ecs.ReadComponent[theme.Selector](storage, from); sel != nil && sel.ID == id {
			return from, true
		}
	}
	for _, child := range tree.Children(from) {
		if found, ok := findByID(storage, tree, child, id, true); ok {
			return found, true
		}
	}
	return ecs.NoEntity, false
}
