package layout

import (
	"fmt"
	"slices"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/logger"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth bounds resolution nesting when System.MaxDepth is zero.
const DefaultMaxDepth = 512

// System is the layout pass. Each frame it resolves the tree root under
// Constraints, then writes relative and absolute positions into every
// entity's Geometry.
type System struct {
	Constraints BoxConstraints
	MaxDepth    int
	Log         logrus.FieldLogger
}

// NewSystem returns a layout pass rooted at constraints.
func NewSystem(constraints BoxConstraints) *System {
	return &System{
		Constraints: constraints,
		MaxDepth:    DefaultMaxDepth,
		Log:         logger.Discard(),
	}
}

// Execute implements ecs.System.
func (s *System) Execute(frame *ecs.UpdateFrame) error {
	root := frame.Tree.Root()
	if root == ecs.NoEntity {
		return nil
	}

	p := &pass{
		storage:   frame.Storage,
		tree:      frame.Tree,
		frame:     frame.Frame,
		maxDepth:  s.MaxDepth,
		active:    make(map[ecs.Entity]bool),
		resolved:  make(map[ecs.Entity]bool),
		positions: make(map[ecs.Entity]Point),
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}

	size, err := p.resolve(root, s.Constraints, 0)
	if err != nil {
		return err
	}
	if err := p.place(); err != nil {
		return err
	}

	if s.Log != nil {
		s.Log.WithFields(logrus.Fields{
			"frame":    frame.Frame,
			"entities": len(p.resolved),
			"width":    size.Width,
			"height":   size.Height,
		}).Debug("layout resolved")
	}
	return nil
}

// pass is the state of one frame's negotiation.
type pass struct {
	storage  *ecs.Storage
	tree     *ecs.Tree
	frame    uint64
	maxDepth int

	active    map[ecs.Entity]bool
	stack     []ecs.Entity
	resolved  map[ecs.Entity]bool
	positions map[ecs.Entity]Point
}

func (p *pass) resolve(id ecs.Entity, constraints BoxConstraints, depth int) (Size, error) {
	if depth >= p.maxDepth {
		return Size{}, fmt.Errorf("entity %d at depth %d: %w", id, depth, ErrLayoutTooDeep)
	}

	geometry, err := ecs.GetMut[Geometry](p.storage, id)
	if err != nil {
		return Size{}, err
	}

	fn := Default
	if l := ecs.ReadComponent[Layout](p.storage, id); l != nil && l.Func != nil {
		fn = l.Func
	}

	children := p.tree.Children(id)

	p.active[id] = true
	p.stack = append(p.stack, id)
	defer func() {
		p.stack = p.stack[:len(p.stack)-1]
		delete(p.active, id)
	}()

	var requested map[ecs.Entity]bool
	var forced *Size

	for {
		result := fn(Context{
			Entity:      id,
			Storage:     p.storage,
			Constraints: constraints,
			Children:    children,
			Positions:   p.positions,
			Forced:      forced,
			resolved:    p.resolved,
		})

		if size, ok := result.Size(); ok {
			geometry.Size = size
			geometry.Constraints = constraints
			geometry.Frame = p.frame
			p.resolved[id] = true

			for _, child := range children {
				if p.resolved[child] {
					continue
				}
				if _, err := p.resolve(child, Loose(size), depth+1); err != nil {
					return Size{}, err
				}
				p.defaultPosition(child)
			}
			return size, nil
		}

		child, childConstraints, _ := result.Request()
		if p.active[child] {
			chain := append(slices.Clone(p.stack), child)
			return Size{}, &CycleError{Entity: child, Chain: chain}
		}
		if !slices.Contains(children, child) {
			return Size{}, &NegotiationError{Entity: id, Child: child, Reason: "not a child"}
		}
		if requested[child] {
			return Size{}, &NegotiationError{Entity: id, Child: child, Reason: "already requested"}
		}
		if requested == nil {
			requested = make(map[ecs.Entity]bool, len(children))
		}
		requested[child] = true

		childSize, err := p.resolve(child, childConstraints, depth+1)
		if err != nil {
			return Size{}, err
		}
		p.defaultPosition(child)

		forced = nil
		if len(children) == 1 {
			forced = &childSize
		}
	}
}

func (p *pass) defaultPosition(id ecs.Entity) {
	if _, ok := p.positions[id]; !ok {
		p.positions[id] = Point{}
	}
}

// place copies the position map into Geometry and accumulates absolute
// positions top-down.
func (p *pass) place() error {
	var err error
	p.tree.Walk(func(id ecs.Entity, _ int) bool {
		geometry, gerr := ecs.GetMut[Geometry](p.storage, id)
		if gerr != nil {
			if err == nil {
				err = gerr
			}
			return false
		}

		geometry.Position = p.positions[id]
		geometry.Absolute = geometry.Position
		if parent, ok := p.tree.Parent(id); ok {
			if pg := ecs.ReadComponent[Geometry](p.storage, parent); pg != nil {
				geometry.Absolute = pg.Absolute.Add(geometry.Position)
			}
		}
		return true
	})
	return err
}
