package ecs

import (
	"reflect"
	"slices"

	"github.com/kamstrup/intmap"
)

// column holds every value of one component type along with the
// entity -> slot index for that type.
type column struct {
	typ  reflect.Type
	data columnStore
	rows *intmap.Map[Entity, int]
}

// Storage is the component store. It owns entity ids, one column per
// component type and each entity's component signature.
type Storage struct {
	registry   *ComponentRegistry
	columns    map[reflect.Type]*column
	signatures *intmap.Map[Entity, []reflect.Type]
	entities   []Entity
	lastId     Entity
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new component store with the given component registry.
// A nil registry gets a fresh one.
func NewStorage(registry *ComponentRegistry) *Storage {
	if registry == nil {
		registry = NewComponentRegistry()
	}
	return &Storage{
		registry:   registry,
		columns:    make(map[reflect.Type]*column),
		signatures: intmap.New[Entity, []reflect.Type](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Create issues a new entity with no components.
func (s *Storage) Create() Entity {
	s.lastId++
	id := s.lastId
	s.signatures.Put(id, nil)
	s.entities = append(s.entities, id)
	return id
}

// Spawn creates an entity carrying components. Their types must already be
// registered.
func (s *Storage) Spawn(components ...any) Entity {
	id := s.Create()
	for _, c := range components {
		if err := s.AttachAny(id, c); err != nil {
			panic(err)
		}
	}
	return id
}

// Contains reports whether id was issued by this storage.
func (s *Storage) Contains(id Entity) bool {
	return s.signatures.Has(id)
}

// Entities returns every entity in creation order. The slice is owned by
// the storage and must not be modified.
func (s *Storage) Entities() []Entity {
	return s.entities
}

// Len returns the number of entities.
func (s *Storage) Len() int {
	return len(s.entities)
}

// column returns the column for t, creating it from the registry.
func (s *Storage) column(t reflect.Type) *column {
	col, ok := s.columns[t]
	if ok {
		return col
	}
	factory := s.registry.getFactory(t)
	if factory == nil {
		panic("component type " + t.String() + " not registered")
	}
	col = &column{
		typ:  t,
		data: factory(),
		rows: intmap.New[Entity, int](64),
	}
	s.columns[t] = col
	return col
}

// AttachAny attaches component to id, replacing any existing value of the
// same type. The component type must already be registered.
func (s *Storage) AttachAny(id Entity, component any) error {
	if !s.Contains(id) {
		return &MissingEntityError{Op: "attach", Entity: id}
	}

	compType := componentType(component)
	col := s.column(compType)

	if row, ok := col.rows.Get(id); ok {
		col.data.Set(row, component)
		return nil
	}

	row := col.data.Append(component)
	if row < 0 {
		panic("component " + compType.String() + " rejected by its column")
	}
	col.rows.Put(id, row)

	sig, _ := s.signatures.Get(id)
	sig = append(slices.Clone(sig), compType)
	slices.SortFunc(sig, func(a, b reflect.Type) int {
		switch {
		case a.String() < b.String():
			return -1
		case a.String() > b.String():
			return 1
		}
		return 0
	})
	s.signatures.Put(id, sig)
	return nil
}

// RemoveComponent detaches the component of compType from id.
// It returns false if the entity did not carry one.
func (s *Storage) RemoveComponent(id Entity, compType reflect.Type) bool {
	col, ok := s.columns[compType]
	if !ok {
		return false
	}
	row, ok := col.rows.Get(id)
	if !ok {
		return false
	}
	col.data.Delete(row)
	col.rows.Del(id)

	sig, _ := s.signatures.Get(id)
	sig = slices.DeleteFunc(slices.Clone(sig), func(t reflect.Type) bool { return t == compType })
	s.signatures.Put(id, sig)
	return true
}

// GetComponent returns a pointer to the component of compType on id, or nil.
func (s *Storage) GetComponent(id Entity, compType reflect.Type) any {
	col, ok := s.columns[compType]
	if !ok {
		return nil
	}
	row, ok := col.rows.Get(id)
	if !ok {
		return nil
	}
	return col.data.Get(row)
}

// HasComponent checks if an entity has a specific component type.
func (s *Storage) HasComponent(id Entity, compType reflect.Type) bool {
	col, ok := s.columns[compType]
	if !ok {
		return false
	}
	return col.rows.Has(id)
}

// Types returns the component types attached to id, sorted by type name.
func (s *Storage) Types(id Entity) []reflect.Type {
	sig, _ := s.signatures.Get(id)
	return sig
}

// Set returns the component set of id for predicate evaluation.
func (s *Storage) Set(id Entity) ComponentSet {
	return ComponentSet{entity: id, types: s.Types(id)}
}

// componentType returns the stored type of a component value; pointers are
// dereferenced the same way the columns do.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("cannot attach a nil component")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	return compType
}

// ComponentSet is the read-only set of component types attached to an entity.
type ComponentSet struct {
	entity Entity
	types  []reflect.Type
}

// Entity returns the entity the set belongs to.
func (c ComponentSet) Entity() Entity {
	return c.entity
}

// Has reports whether the set contains t.
func (c ComponentSet) Has(t reflect.Type) bool {
	return slices.Contains(c.types, t)
}

// Types returns the sorted component types.
func (c ComponentSet) Types() []reflect.Type {
	return c.types
}

// HasType reports whether set contains a component of type T.
func HasType[T any](set ComponentSet) bool {
	return set.Has(reflect.TypeFor[T]())
}

type ComponentReader interface {
	GetComponent(Entity, reflect.Type) any
}

// ReadComponent returns the component of type T from reader, or nil.
func ReadComponent[T any](reader ComponentReader, id Entity) *T {
	c := reader.GetComponent(id, reflect.TypeFor[T]())
	if c == nil {
		return nil
	}
	return c.(*T)
}

// Attach attaches v to id, registering T on first use.
func Attach[T any](s *Storage, id Entity, v T) error {
	RegisterComponent[T](s.registry)
	return s.AttachAny(id, v)
}

// Detach removes the T component from id and reports whether one existed.
func Detach[T any](s *Storage, id Entity) bool {
	return s.RemoveComponent(id, reflect.TypeFor[T]())
}

// Has reports whether id carries a T component.
func Has[T any](s *Storage, id Entity) bool {
	return s.HasComponent(id, reflect.TypeFor[T]())
}

// GetMut returns a pointer to the T component of id. The pointer is valid
// until the component is detached. A missing component yields a
// *MissingComponentError.
func GetMut[T any](s *Storage, id Entity) (*T, error) {
	t := reflect.TypeFor[T]()
	c := s.GetComponent(id, t)
	if c == nil {
		return nil, &MissingComponentError{Entity: id, Type: t}
	}
	return c.(*T), nil
}

// Get returns a copy of the T component of id.
func Get[T any](s *Storage, id Entity) (T, error) {
	p, err := GetMut[T](s, id)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// MustGet is GetMut for construction code, where a missing component is a
// defect in the widget template. It panics with the MissingComponentError.
func MustGet[T any](s *Storage, id Entity) *T {
	p, err := GetMut[T](s, id)
	if err != nil {
		panic(err)
	}
	return p
}
