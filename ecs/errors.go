package ecs

import (
	"errors"
	"fmt"
	"reflect"
)

//go:generate go tool stringer -type=TreeErrorKind,Ordering -output=kind_string.go

var (
	// ErrMissingComponent matches every *MissingComponentError.
	ErrMissingComponent = errors.New("missing component")
	// ErrUnknownEntity matches errors naming an entity the storage or tree
	// has never seen.
	ErrUnknownEntity = errors.New("unknown entity")
)

// MissingComponentError reports that an entity lacks the requested
// component type. It is an ordinary per-frame condition; callers decide
// whether absence is fatal.
type MissingComponentError struct {
	Entity Entity
	Type   reflect.Type
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("entity %d: missing component %s", e.Entity, e.Type)
}

func (e *MissingComponentError) Is(target error) bool {
	return target == ErrMissingComponent
}

// MissingEntityError reports an operation on an id the storage never issued.
type MissingEntityError struct {
	Op     string
	Entity Entity
}

func (e *MissingEntityError) Error() string {
	return fmt.Sprintf("%s: entity %d does not exist", e.Op, e.Entity)
}

func (e *MissingEntityError) Is(target error) bool {
	return target == ErrUnknownEntity
}

// TreeErrorKind identifies the structural rule a tree operation violated.
type TreeErrorKind int

const (
	// AlreadyParented: the child already has a parent.
	AlreadyParented TreeErrorKind = iota
	// UnknownEntity: an endpoint was never registered with the tree.
	UnknownEntity
	// AlreadyRegistered: the node is already in the tree.
	AlreadyRegistered
	// WouldCycle: appending would make an entity its own ancestor or give
	// the root a parent.
	WouldCycle
)

// TreeError is returned by structural misuse of a Tree.
type TreeError struct {
	Op     string
	Kind   TreeErrorKind
	Parent Entity
	Child  Entity
}

func (e *TreeError) Error() string {
	return fmt.Sprintf("tree.%s [%s]: parent=%d child=%d", e.Op, e.Kind, e.Parent, e.Child)
}

func (e *TreeError) Is(target error) bool {
	return e.Kind == UnknownEntity && target == ErrUnknownEntity
}

// OrderingError reports a comparator that returned Incomparable for two
// entities its system's filter admitted.
type OrderingError struct {
	System string
	A, B   Entity
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("system %s: entities %d and %d are incomparable under its sort", e.System, e.A, e.B)
}

// SystemError wraps the error that aborted a frame with the failing system.
type SystemError struct {
	System string
	Frame  uint64
	Err    error
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("frame %d: system %s: %v", e.Frame, e.System, e.Err)
}

func (e *SystemError) Unwrap() error {
	return e.Err
}
