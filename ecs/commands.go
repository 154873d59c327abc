package ecs

import (
	"errors"
	"reflect"
)

// Commands buffers component changes and callbacks issued while a system is
// iterating. The scheduler flushes the buffer as soon as the issuing system
// returns, before the next system starts.
type Commands struct {
	attaches []attachCommand
	detaches []detachCommand
	defers   []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type attachCommand struct {
	entity    Entity
	component any
}

type detachCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function to run at flush time.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Attach queues a component attachment. The component type must be
// registered by the time the buffer is flushed.
func (c *Commands) Attach(entity Entity, component any) {
	c.attaches = append(c.attaches, attachCommand{
		entity:    entity,
		component: component,
	})
}

// Detach queues a component removal.
func (c *Commands) Detach(entity Entity, compType reflect.Type) {
	c.detaches = append(c.detaches, detachCommand{
		entity:   entity,
		compType: compType,
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.attaches) + len(c.detaches) + len(c.defers)
}

// Flush applies all queued commands to storage and resets the buffer.
// Detaches run before attaches, then deferred functions in queue order.
func (c *Commands) Flush(storage *Storage) error {
	var errs []error

	for _, cmd := range c.detaches {
		storage.RemoveComponent(cmd.entity, cmd.compType)
	}

	for _, cmd := range c.attaches {
		if err := storage.AttachAny(cmd.entity, cmd.component); err != nil {
			errs = append(errs, err)
		}
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.Reset()
	return errors.Join(errs...)
}

// Reset drops every queued command.
func (c *Commands) Reset() {
	c.attaches = c.attaches[:0]
	c.detaches = c.detaches[:0]
	c.defers = c.defers[:0]
}
