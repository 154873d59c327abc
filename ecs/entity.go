package ecs

// Entity is an opaque handle identifying one row across every component column.
// A Storage issues ids in increasing order starting at 1 and never reuses them.
type Entity uint64

// NoEntity is the zero handle. It is never issued by a Storage.
const NoEntity Entity = 0

// Valid reports whether e could have been issued by a Storage.
func (e Entity) Valid() bool {
	return e != NoEntity
}
