package ecs

import (
	"slices"

	"github.com/kamstrup/intmap"
)

// Tree is the parent/children hierarchy over entities. The first node
// registered is the root. Nodes are never removed; restructuring means
// building a new tree.
type Tree struct {
	parents  *intmap.Map[Entity, Entity]
	children *intmap.Map[Entity, []Entity]
	root     Entity
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{
		parents:  intmap.New[Entity, Entity](256),
		children: intmap.New[Entity, []Entity](256),
	}
}

// RegisterNode inserts id as a parentless node.
func (t *Tree) RegisterNode(id Entity) error {
	if t.children.Has(id) {
		return &TreeError{Op: "RegisterNode", Kind: AlreadyRegistered, Child: id}
	}
	t.children.Put(id, nil)
	if t.root == NoEntity {
		t.root = id
	}
	return nil
}

// AppendChild makes child the last child of parent.
func (t *Tree) AppendChild(parent, child Entity) error {
	if !t.children.Has(parent) || !t.children.Has(child) {
		return &TreeError{Op: "AppendChild", Kind: UnknownEntity, Parent: parent, Child: child}
	}
	if t.parents.Has(child) {
		return &TreeError{Op: "AppendChild", Kind: AlreadyParented, Parent: parent, Child: child}
	}
	if child == t.root || child == parent || slices.Contains(t.Ancestors(parent), child) {
		return &TreeError{Op: "AppendChild", Kind: WouldCycle, Parent: parent, Child: child}
	}

	t.parents.Put(child, parent)
	siblings, _ := t.children.Get(parent)
	t.children.Put(parent, append(siblings, child))
	return nil
}

// Root returns the root entity, or NoEntity for an empty tree.
func (t *Tree) Root() Entity {
	return t.root
}

// Contains reports whether id is registered.
func (t *Tree) Contains(id Entity) bool {
	return t.children.Has(id)
}

// Parent returns the parent of id. The root and unknown entities have none.
func (t *Tree) Parent(id Entity) (Entity, bool) {
	return t.parents.Get(id)
}

// Children returns the children of id in append order. The slice is owned
// by the tree and must not be modified.
func (t *Tree) Children(id Entity) []Entity {
	children, _ := t.children.Get(id)
	return children
}

// Ancestors returns the parent chain of id, nearest first.
func (t *Tree) Ancestors(id Entity) []Entity {
	var chain []Entity
	for {
		parent, ok := t.parents.Get(id)
		if !ok {
			return chain
		}
		chain = append(chain, parent)
		id = parent
	}
}

// Depth returns the number of ancestors of id.
func (t *Tree) Depth(id Entity) int {
	return len(t.Ancestors(id))
}

// Len returns the number of registered nodes.
func (t *Tree) Len() int {
	return t.children.Len()
}

// Walk visits the subtree under the root in pre-order. Returning false from
// fn skips the node's descendants.
func (t *Tree) Walk(fn func(id Entity, depth int) bool) {
	if t.root == NoEntity {
		return
	}
	t.walk(t.root, 0, fn)
}

func (t *Tree) walk(id Entity, depth int, fn func(Entity, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range t.Children(id) {
		t.walk(child, depth+1, fn)
	}
}
