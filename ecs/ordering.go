package ecs

import (
	"reflect"
)

// Ordering is the outcome of comparing two entities under a Comparator.
type Ordering int

const (
	Less Ordering = iota
	Equal
	Greater
	// Incomparable means the comparator has no answer for the pair. A
	// system's filter must never admit such a pair.
	Incomparable
)

// Predicate selects the entities a system operates on.
type Predicate interface {
	Match(set ComponentSet) bool
}

// PredicateFunc adapts a function to a Predicate.
type PredicateFunc func(set ComponentSet) bool

func (f PredicateFunc) Match(set ComponentSet) bool {
	return f(set)
}

// With matches entities carrying a T component.
func With[T any]() Predicate {
	return requireTypes{reflect.TypeFor[T]()}
}

// All matches entities accepted by every predicate.
func All(predicates ...Predicate) Predicate {
	return PredicateFunc(func(set ComponentSet) bool {
		for _, p := range predicates {
			if !p.Match(set) {
				return false
			}
		}
		return true
	})
}

type requireTypes []reflect.Type

func (r requireTypes) Match(set ComponentSet) bool {
	for _, t := range r {
		if !set.Has(t) {
			return false
		}
	}
	return true
}

// Comparator orders the entities of a system's view.
//
// Requires names the component types Compare reads. The scheduler admits
// only entities carrying all of them, so Compare is never asked about an
// entity it cannot order.
type Comparator interface {
	Requires() []reflect.Type
	Compare(storage *Storage, a, b Entity) Ordering
}

type compareBy[T any] struct {
	cmp func(a, b *T) int
}

// CompareBy orders entities by their T component using cmp, which returns a
// negative number, zero, or a positive number like cmp.Compare.
func CompareBy[T any](cmp func(a, b *T) int) Comparator {
	return compareBy[T]{cmp: cmp}
}

func (c compareBy[T]) Requires() []reflect.Type {
	return []reflect.Type{reflect.TypeFor[T]()}
}

func (c compareBy[T]) Compare(storage *Storage, a, b Entity) Ordering {
	ca := ReadComponent[T](storage, a)
	cb := ReadComponent[T](storage, b)
	if ca == nil || cb == nil {
		return Incomparable
	}
	switch r := c.cmp(ca, cb); {
	case r < 0:
		return Less
	case r > 0:
		return Greater
	}
	return Equal
}
