package widget

import (
	"errors"
	"fmt"

	"github.com/plus3/ooui/ecs"
)

var (
	// ErrMissingChildEntity matches every *MissingChildEntityError.
	ErrMissingChildEntity = errors.New("missing child entity")
	// ErrTemplateTooDeep is returned when a template nests deeper than
	// Builder.MaxDepth.
	ErrTemplateTooDeep = errors.New("template too deep")
	// ErrRootExists is returned by a second Manager.Root call.
	ErrRootExists = errors.New("root already built")
	// ErrRootFailed is returned by Run and Root once a Root call has failed.
	// The partial tree stays in storage, so the Manager cannot be reused.
	ErrRootFailed = errors.New("root build failed")
)

// MissingChildEntityError reports a descendant lookup by selector id that
// found nothing.
type MissingChildEntityError struct {
	Entity ecs.Entity
	ID     string
}

func (e *MissingChildEntityError) Error() string {
	return fmt.Sprintf("entity %d: no child with id %q", e.Entity, e.ID)
}

func (e *MissingChildEntityError) Is(target error) bool {
	return target == ErrMissingChildEntity
}
