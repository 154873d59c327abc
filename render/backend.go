package render

import (
	"errors"
	"slices"
	"sync"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
)

// DrawCall is one entity's draw request.
type DrawCall struct {
	Entity ecs.Entity
	Order  CreationOrder
	Bounds layout.Rect
	Style  theme.Style
	Label  string
}

// Backend receives a frame's draw calls between Begin and End.
type Backend interface {
	Begin() error
	Draw(call DrawCall) error
	End() error
}

// Recorder is a Backend that keeps the calls of the last completed frame.
type Recorder struct {
	// Err, when set, is returned from every Draw.
	Err error

	mu      sync.Mutex
	pending []DrawCall
	last    []DrawCall
	frames  int
}

func (r *Recorder) Begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = r.pending[:0]
	return nil
}

func (r *Recorder) Draw(call DrawCall) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending = append(r.pending, call)
	return nil
}

func (r *Recorder) End() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = slices.Clone(r.pending)
	r.frames++
	return nil
}

// Calls returns a copy of the last completed frame's calls.
func (r *Recorder) Calls() []DrawCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.last)
}

// Frames returns the number of completed frames.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Multi fans every call out to each backend in order.
func Multi(backends ...Backend) Backend {
	return multi(backends)
}

type multi []Backend

func (m multi) Begin() error {
	var errs []error
	for _, b := range m {
		errs = append(errs, b.Begin())
	}
	return errors.Join(errs...)
}

func (m multi) Draw(call DrawCall) error {
	for _, b := range m {
		if err := b.Draw(call); err != nil {
			return err
		}
	}
	return nil
}

func (m multi) End() error {
	var errs []error
	for _, b := range m {
		errs = append(errs, b.End())
	}
	return errors.Join(errs...)
}
