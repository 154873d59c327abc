package ecs

// UpdateFrame is handed to each system for the duration of its Execute call.
// Systems must not retain it, or the storage and tree it exposes, across
// calls.
type UpdateFrame struct {
	DeltaTime float64
	Frame     uint64
	Commands  *Commands
	Storage   *Storage
	Tree      *Tree

	// Entities is the system's precomputed view: the entities its filter
	// admitted, ordered by its comparator. Nil for systems registered
	// without a filter or sort.
	Entities []Entity
}

func newUpdateFrame(dt float64, frame uint64, storage *Storage, tree *Tree) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Frame:     frame,
		Commands:  newCommands(),
		Storage:   storage,
		Tree:      tree,
	}
}
