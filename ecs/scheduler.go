package ecs

import (
	"cmp"
	"context"
	"io"
	"reflect"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          uint64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Priority       int
	ViewSize       int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// descriptor is a registered system with its scheduling metadata.
type descriptor struct {
	system     System
	name       string
	priority   int
	filter     Predicate
	comparator Comparator
	view       []Entity
	stats      systemStatsInternal
}

// Option configures a system at registration.
type Option func(*descriptor)

// WithPriority sets the system's priority. Lower priorities run first;
// systems with equal priority run in registration order.
func WithPriority(priority int) Option {
	return func(d *descriptor) {
		d.priority = priority
	}
}

// WithFilter restricts the system's view to entities matching p.
func WithFilter(p Predicate) Option {
	return func(d *descriptor) {
		d.filter = p
	}
}

// WithSort orders the system's view with c.
func WithSort(c Comparator) Option {
	return func(d *descriptor) {
		d.comparator = c
	}
}

// WithName overrides the name used in stats, logs and errors.
func WithName(name string) Option {
	return func(d *descriptor) {
		d.name = name
	}
}

// Scheduler runs registered systems once per frame in priority order.
type Scheduler struct {
	storage *Storage
	tree    *Tree
	systems []*descriptor
	frame   uint64
	log     logrus.FieldLogger
}

// NewScheduler creates a new scheduler over the given storage and tree.
func NewScheduler(storage *Storage, tree *Tree) *Scheduler {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Scheduler{
		storage: storage,
		tree:    tree,
		systems: make([]*descriptor, 0),
		log:     discard,
	}
}

// SetLogger replaces the scheduler's logger.
func (s *Scheduler) SetLogger(log logrus.FieldLogger) {
	s.log = log
}

// Register adds a system to the scheduler. Registration happens during
// setup; the set of systems is fixed once frames start running.
func (s *Scheduler) Register(system System, opts ...Option) {
	d := &descriptor{system: system}

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}
	d.name = systemType.Name()

	for _, opt := range opts {
		opt(d)
	}

	// Entities the comparator cannot read never reach it.
	if d.comparator != nil {
		required := requireTypes(d.comparator.Requires())
		if d.filter == nil {
			d.filter = required
		} else {
			d.filter = All(d.filter, required)
		}
	}

	d.stats.minDuration = time.Duration(1<<63 - 1)
	s.systems = append(s.systems, d)
	slices.SortStableFunc(s.systems, func(a, b *descriptor) int {
		return cmp.Compare(a.priority, b.priority)
	})

	s.log.WithFields(logrus.Fields{
		"system":   d.name,
		"priority": d.priority,
		"filtered": d.filter != nil,
		"sorted":   d.comparator != nil,
	}).Debug("registered system")
}

// ApplyFilterAndSort recomputes every filtered system's view from the
// current storage. Once calls it at the start of each frame.
func (s *Scheduler) ApplyFilterAndSort() error {
	for _, d := range s.systems {
		if d.filter == nil {
			d.view = nil
			continue
		}

		d.view = d.view[:0]
		for _, id := range s.storage.Entities() {
			if d.filter.Match(s.storage.Set(id)) {
				d.view = append(d.view, id)
			}
		}

		if d.comparator == nil {
			continue
		}

		var orderErr *OrderingError
		slices.SortStableFunc(d.view, func(a, b Entity) int {
			switch d.comparator.Compare(s.storage, a, b) {
			case Less:
				return -1
			case Greater:
				return 1
			case Equal:
				return 0
			}
			if orderErr == nil {
				orderErr = &OrderingError{System: d.name, A: a, B: b}
			}
			return 0
		})
		if orderErr != nil {
			return &SystemError{System: d.name, Frame: s.frame, Err: orderErr}
		}
	}
	return nil
}

// Once runs one frame: views are recomputed, then every system executes in
// priority order. Deferred commands are flushed after each system so its
// writes are visible to the next one. The first error aborts the frame.
func (s *Scheduler) Once(dt float64) error {
	s.frame++
	log := s.log.WithField("frame", s.frame)

	if err := s.ApplyFilterAndSort(); err != nil {
		log.WithError(err).Error("filter and sort failed")
		return err
	}

	frame := newUpdateFrame(dt, s.frame, s.storage, s.tree)

	for _, d := range s.systems {
		frame.Entities = d.view

		start := time.Now()
		err := d.system.Execute(frame)
		if err == nil {
			err = frame.Commands.Flush(s.storage)
		}
		duration := time.Since(start)

		stats := &d.stats
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}

		if err != nil {
			frame.Commands.Reset()
			log.WithError(err).WithField("system", d.name).Error("system failed")
			return &SystemError{System: d.name, Frame: s.frame, Err: err}
		}
	}

	log.Debug("frame complete")
	return nil
}

// Run executes frames at the given interval until the context is cancelled
// or a frame fails.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// Frame returns the number of frames started so far.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// View returns the last computed view of the named system.
func (s *Scheduler) View(name string) []Entity {
	for _, d := range s.systems {
		if d.name == name {
			return d.view
		}
	}
	return nil
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frame,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	var totalExecs int64
	for i, d := range s.systems {
		internal := d.stats
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           d.name,
			Priority:       d.priority,
			ViewSize:       len(d.view),
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
