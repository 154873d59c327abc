package ecs

// System represents a pass that runs once per frame. User-defined systems
// keep whatever state they need between frames in their own fields.
//
// A system that returns an error aborts the frame; systems registered after
// it do not run.
type System interface {
	Execute(frame *UpdateFrame) error
}

// SystemFunc adapts a function to a System.
type SystemFunc func(frame *UpdateFrame) error

func (f SystemFunc) Execute(frame *UpdateFrame) error {
	return f(frame)
}
