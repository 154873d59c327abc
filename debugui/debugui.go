// Package debugui renders Dear ImGui inspectors over a running widget tree.
// Windows are ordinary entities carrying an ImguiItem; ImguiSystem defers
// their render functions so they run after the frame's own systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ooui/ecs"
)

// Priority runs the imgui pass after the render pass.
const Priority = 2

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton.
// Game input handlers check it before routing pointer moves to widgets.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers every ImguiItem render function and refreshes the
// ImguiInputState singleton.
type ImguiSystem struct {
	// Capture reports imgui's mouse and keyboard capture. Nil leaves the
	// input state untouched.
	Capture func() (mouse, keyboard bool)

	items *ecs.View[struct{ *ImguiItem }]
	input *ecs.Singleton[ImguiInputState]
}

// NewImguiSystem returns a system reading capture state from the current
// imgui context.
func NewImguiSystem() *ImguiSystem {
	return &ImguiSystem{Capture: currentCapture}
}

func currentCapture() (bool, bool) {
	io := imgui.CurrentIO()
	return io.WantCaptureMouse(), io.WantCaptureKeyboard()
}

// Register adds s to sched after the render pass.
func (s *ImguiSystem) Register(sched *ecs.Scheduler) {
	sched.Register(s,
		ecs.WithName("imgui"),
		ecs.WithPriority(Priority),
		ecs.WithFilter(ecs.With[ImguiItem]()),
	)
}

// Execute updates input state and queues all ImGui render functions.
func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) error {
	if s.items == nil {
		s.items = ecs.NewView[struct{ *ImguiItem }](frame.Storage)
		s.input = ecs.NewSingleton[ImguiInputState](frame.Storage)
	}

	if s.Capture != nil {
		state := s.input.Get()
		state.WantCaptureMouse, state.WantCaptureKeyboard = s.Capture()
	}

	for _, item := range s.items.IterOver(frame.Entities) {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
	return nil
}
