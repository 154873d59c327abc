package render

import (
	"cmp"

	"github.com/plus3/ooui/ecs"
)

// Drawable marks an entity for the render pass.
type Drawable struct{}

// CreationOrder is the builder-assigned draw order. Lower draws first.
type CreationOrder uint64

// Label is text drawn at the entity's top-left corner.
type Label struct {
	Text string
}

// ByCreationOrder sorts ascending by CreationOrder.
func ByCreationOrder() ecs.Comparator {
	return ecs.CompareBy(func(a, b *CreationOrder) int {
		return cmp.Compare(*a, *b)
	})
}
