package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plus3/ooui/ecs"
)

var (
	// ErrLayoutCycle matches every *CycleError.
	ErrLayoutCycle = errors.New("layout cycle")
	// ErrLayoutTooDeep is returned when resolution nests deeper than
	// System.MaxDepth.
	ErrLayoutTooDeep = errors.New("layout too deep")
)

// CycleError reports a request for an entity that is still being resolved.
// Chain is the active resolution stack, root first, ending with the entity
// that was requested again.
type CycleError struct {
	Entity ecs.Entity
	Chain  []ecs.Entity
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		parts[i] = fmt.Sprint(uint64(id))
	}
	return fmt.Sprintf("layout cycle at entity %d: %s", e.Entity, strings.Join(parts, " -> "))
}

func (e *CycleError) Is(target error) bool {
	return target == ErrLayoutCycle
}

// NegotiationError reports a layout function that broke the request
// protocol: asking for a non-child or asking for the same child twice.
type NegotiationError struct {
	Entity ecs.Entity
	Child  ecs.Entity
	Reason string
}

func (e *NegotiationError) Error() string {
	return fmt.Sprintf("layout of entity %d: request for %d: %s", e.Entity, e.Child, e.Reason)
}
