package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View gives typed access to a fixed combination of components.
// The type T should be a struct with embedded or named pointer fields, one
// per component type. Named fields can be marked as optional using the
// `ecs:"optional"` struct tag.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
}

// NewView creates a new view for the given struct type.
// Embedded fields are always required.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()

	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	types := make([]reflect.Type, 0, structType.NumField())
	optional := make([]bool, 0, structType.NumField())
	fieldOffset := make([]uintptr, 0, structType.NumField())

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		types = append(types, fieldType.Elem())
		fieldOffset = append(fieldOffset, field.Offset)

		// Embedded fields (field.Anonymous) are always required
		isOptional := false
		if !field.Anonymous {
			tag := field.Tag.Get("ecs")
			if tag != "" {
				if tag == "optional" {
					isOptional = true
				} else {
					panic("invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
				}
			}
		}
		optional = append(optional, isOptional)
	}

	return &View[T]{
		storage:     storage,
		types:       types,
		optional:    optional,
		fieldOffset: fieldOffset,
	}
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is missing any required components.
// Optional components are set to nil if not present.
func (v *View[T]) Fill(id Entity, ptr *T) bool {
	// Use unsafe.Pointer to directly access the struct's memory
	// This avoids reflection overhead in the hot path
	structPtr := unsafe.Pointer(ptr)

	for i, componentType := range v.types {
		component := v.storage.GetComponent(id, componentType)

		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		// Columns hand out *C boxed in an interface; copy the data word.
		componentPtr := (*eface)(unsafe.Pointer(&component)).data
		*(*unsafe.Pointer)(fieldPtr) = componentPtr
	}

	return true
}

// eface mirrors the runtime layout of an empty interface.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components.
func (v *View[T]) Get(id Entity) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Matches reports whether set carries every required component of the view.
func (v *View[T]) Matches(set ComponentSet) bool {
	for i, requiredType := range v.types {
		if v.optional[i] {
			continue
		}
		if !set.Has(requiredType) {
			return false
		}
	}
	return true
}

// Iter returns an iterator over all entities, in creation order, that have all
// the required components for this view.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return v.IterOver(v.storage.Entities())
}

// IterOver is Iter restricted to ids, in the given order. Entities missing a
// required component are skipped. Systems use it with frame.Entities.
func (v *View[T]) IterOver(ids []Entity) iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		for _, id := range ids {
			if !v.Fill(id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity IDs).
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with components extracted from the view struct.
// Nil optional fields are skipped. Component types must be registered.
func (v *View[T]) Spawn(data T) (Entity, error) {
	structPtr := unsafe.Pointer(&data)

	id := v.storage.Create()
	for i, componentType := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))

		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component is nil in View.Spawn")
			}
			continue
		}

		component := reflect.NewAt(componentType, componentPtr).Elem().Interface()
		if err := v.storage.AttachAny(id, component); err != nil {
			return id, err
		}
	}

	return id, nil
}
