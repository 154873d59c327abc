package widget

import (
	"fmt"

	"github.com/plus3/ooui/config"
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/logger"
	"github.com/plus3/ooui/render"
	"github.com/plus3/ooui/theme"
	"github.com/sirupsen/logrus"
)

// Manager owns the storage, tree and scheduler of one UI and runs its
// frames.
type Manager struct {
	storage *ecs.Storage
	tree    *ecs.Tree
	sched   *ecs.Scheduler
	builder *Builder
	events  *EventQueue
	theme   *ecs.Singleton[theme.Theme]
	log     logrus.FieldLogger

	layout *layout.System
	render *render.System

	afterFrame []func(frame uint64)
	failed     error
}

// NewManager wires the layout, post-layout state and render systems. A nil
// cfg uses config.Default; a nil theme is empty.
func NewManager(backend render.Backend, th *theme.Theme, cfg *config.Config) *Manager {
	if cfg == nil {
		cfg = config.Default()
	}
	if th == nil {
		th = theme.New(nil)
	}

	storage := ecs.NewStorage(nil)
	tree := ecs.NewTree()
	events := &EventQueue{}
	log := logger.New(cfg.Log)

	minW, maxW, minH, maxH := cfg.Layout.RootConstraints.Bounds(cfg.Window)
	layoutSystem := layout.NewSystem(layout.BoxConstraints{
		MinWidth: minW, MaxWidth: maxW,
		MinHeight: minH, MaxHeight: maxH,
	})
	if cfg.Layout.MaxDepth > 0 {
		layoutSystem.MaxDepth = cfg.Layout.MaxDepth
	}
	layoutSystem.Log = log

	m := &Manager{
		storage: storage,
		tree:    tree,
		sched:   ecs.NewScheduler(storage, tree),
		builder: NewBuilder(storage, tree),
		events:  events,
		theme:   ecs.NewSingleton(storage, *th),
		log:     log,
		layout:  layoutSystem,
		render:  render.NewSystem(backend),
	}
	m.builder.Theme = m.theme.Get()
	m.builder.MaxDepth = cfg.Layout.MaxDepth
	m.builder.Log = log
	m.sched.SetLogger(log)

	m.sched.Register(m.layout, ecs.WithName("layout"), ecs.WithPriority(0))
	m.sched.Register(&stateSystem{events: events},
		ecs.WithName("widget-state"),
		ecs.WithPriority(0),
		ecs.WithFilter(ecs.With[stateHolder]()),
		ecs.WithSort(render.ByCreationOrder()),
	)
	m.render.Register(m.sched)

	return m
}

// SetLogger replaces the logger of the manager and its systems.
func (m *Manager) SetLogger(log logrus.FieldLogger) {
	m.log = log
	m.layout.Log = log
	m.builder.Log = log
	m.sched.SetLogger(log)
}

// Root builds the tree from w and initializes every widget state in
// creation order. It may be called once. After a failure the Manager is
// unusable: Root and Run return ErrRootFailed.
func (m *Manager) Root(w Widget) error {
	if m.failed != nil {
		return fmt.Errorf("%w: %w", ErrRootFailed, m.failed)
	}
	if m.tree.Root() != ecs.NoEntity {
		return ErrRootExists
	}

	root, err := m.builder.Build(w)
	if err != nil {
		m.failed = fmt.Errorf("build: %w", err)
		return m.failed
	}

	var initErr error
	m.tree.Walk(func(id ecs.Entity, _ int) bool {
		if initErr != nil {
			return false
		}
		state := StateOf(m.storage, id)
		if state == nil {
			return true
		}
		ctx := m.context(id, 0)
		if err := state.Init(ctx); err != nil {
			initErr = fmt.Errorf("init entity %d: %w", id, err)
			return false
		}
		return true
	})
	if initErr != nil {
		m.failed = initErr
		return initErr
	}

	m.log.WithFields(logrus.Fields{
		"root":     root,
		"entities": m.storage.Len(),
	}).Info("widget tree built")
	return nil
}

// Run executes one frame.
func (m *Manager) Run(dt float64) error {
	if m.failed != nil {
		return fmt.Errorf("%w: %w", ErrRootFailed, m.failed)
	}
	if err := m.sched.Once(dt); err != nil {
		return err
	}
	frame := m.sched.Frame()
	for _, fn := range m.afterFrame {
		fn(frame)
	}
	return nil
}

// AfterFrame registers fn to run after every successful frame.
func (m *Manager) AfterFrame(fn func(frame uint64)) {
	m.afterFrame = append(m.afterFrame, fn)
}

// Events drains the outbound event queue.
func (m *Manager) Events() []Event {
	return m.events.Drain()
}

// Entity returns the entity whose selector id is id.
func (m *Manager) Entity(id string) (ecs.Entity, bool) {
	root := m.tree.Root()
	if root == ecs.NoEntity {
		return ecs.NoEntity, false
	}
	return findByID(m.storage, m.tree, root, id, true)
}

func (m *Manager) Storage() *ecs.Storage { return m.storage }
func (m *Manager) Tree() *ecs.Tree { return m.tree }
func (m *Manager) Scheduler() *ecs.Scheduler { return m.sched }

// Theme returns the theme singleton.
func (m *Manager) Theme() *theme.Theme {
	return m.theme.Get()
}

func (m *Manager) context(id ecs.Entity, dt float64) *Context {
	return &Context{
		Entity:    id,
		Storage:   m.storage,
		Tree:      m.tree,
		DeltaTime: dt,
		events:    m.events,
	}
}

// stateSystem runs UpdatePostLayout on every stateful entity in creation
// order.
type stateSystem struct {
	events *EventQueue
}

func (s *stateSystem) Execute(frame *ecs.UpdateFrame) error {
	for _, id := range frame.Entities {
		h := ecs.ReadComponent[stateHolder](frame.Storage, id)
		ctx := &Context{
			Entity:    id,
			Storage:   frame.Storage,
			Tree:      frame.Tree,
			DeltaTime: frame.DeltaTime,
			events:    s.events,
		}
		if err := h.State.UpdatePostLayout(ctx); err != nil {
			return fmt.Errorf("entity %d: %w", id, err)
		}
	}
	return nil
}
