package widgets

import (
	"math"

	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/layout"
	"github.com/plus3/ooui/theme"
	"github.com/plus3/ooui/widget"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	ThumbID = "thumb"
	TrackID = "track"

	sliderHeight = 32
	trackMargin  = 8
	railHeight   = 8
	thumbSize    = 28

	defaultSliderWidth = 200
)

// Range is the slider's value and bounds.
type Range struct {
	Minimum, Maximum, Value float64
}

// ThumbOffset is the thumb's distance from the start of the track.
type ThumbOffset struct {
	X float64
}

// ChangedEvent is pushed when a drag moves the slider.
type ChangedEvent struct {
	Entity ecs.Entity
	Value  float64
}

func (e ChangedEvent) Source() ecs.Entity {
	return e.Entity
}

// Slider picks a value in a range by dragging its thumb along a track.
type Slider struct {
	ID      string
	Minimum float64
	Maximum float64
	Value   float64

	state *SliderState
}

// NewSlider returns a slider over [minimum, maximum].
func NewSlider(id string, minimum, maximum, value float64) *Slider {
	return &Slider{
		ID:      id,
		Minimum: minimum,
		Maximum: maximum,
		Value:   value,
		state:   &SliderState{Duration: 0.15},
	}
}

// Handle returns the slider's state, for feeding pointer input.
func (s *Slider) Handle() *SliderState {
	if s.state == nil {
		s.state = &SliderState{}
	}
	return s.state
}

func (s *Slider) Template() widget.Template {
	return widget.Single(&sliderTrack{})
}

func (s *Slider) Properties() []widget.Property {
	return []widget.Property{widget.Prop(Range{
		Minimum: s.Minimum,
		Maximum: s.Maximum,
		Value:   s.Value,
	})}
}

func (s *Slider) State() widget.State {
	return s.Handle()
}

func (s *Slider) Layout() layout.Func {
	return sliderLayout
}

func (s *Slider) Selector() theme.Selector {
	return theme.Selector{Element: "slider", ID: s.ID}
}

func sliderLayout(ctx layout.Context) layout.Result {
	width := ctx.Constraints.MaxWidth
	if math.IsInf(width, 1) {
		width = defaultSliderWidth
	}
	size := ctx.Constraints.Constrain(layout.Size{Width: width, Height: sliderHeight})

	track := ctx.Children[0]
	if ctx.Forced == nil {
		return layout.RequestChild(track, layout.Tight(layout.Size{
			Width:  math.Max(0, size.Width-2*trackMargin),
			Height: size.Height,
		}))
	}
	ctx.Place(track, layout.Point{X: trackMargin})
	return layout.Sized(size)
}

type sliderTrack struct{}

func (t *sliderTrack) Template() widget.Template {
	return widget.Multi(&Container{Classes: []string{"rail"}}, &sliderThumb{})
}

func (t *sliderTrack) Properties() []widget.Property {
	return nil
}

func (t *sliderTrack) Layout() layout.Func {
	return trackLayout
}

func (t *sliderTrack) Selector() theme.Selector {
	return theme.Selector{Element: "grid", ID: TrackID}
}

func trackLayout(ctx layout.Context) layout.Result {
	size := ctx.Constraints.Max()
	rail, thumb := ctx.Children[0], ctx.Children[1]

	if !ctx.Resolved(rail) {
		return layout.RequestChild(rail, layout.Tight(layout.Size{Width: size.Width, Height: railHeight}))
	}
	if !ctx.Resolved(thumb) {
		return layout.RequestChild(thumb, layout.Loose(layout.Size{Width: thumbSize, Height: thumbSize}))
	}

	thumbBox, _ := ctx.ChildSize(thumb)
	var offset float64
	if o := ecs.ReadComponent[ThumbOffset](ctx.Storage, thumb); o != nil {
		offset = o.X
	}
	ctx.Place(rail, layout.Point{Y: (size.Height - railHeight) / 2})
	ctx.Place(thumb, layout.Point{X: offset, Y: (size.Height - thumbBox.Height) / 2})
	return layout.Sized(ctx.Constraints.Constrain(size))
}

type sliderThumb struct{}

func (t *sliderThumb) Template() widget.Template {
	return widget.Leaf()
}

func (t *sliderThumb) Properties() []widget.Property {
	return []widget.Property{widget.Prop(Pressed{}), widget.Prop(ThumbOffset{})}
}

func (t *sliderThumb) Layout() layout.Func {
	return func(ctx layout.Context) layout.Result {
		return layout.Sized(ctx.Constraints.Constrain(layout.Size{Width: thumbSize, Height: thumbSize}))
	}
}

func (t *sliderThumb) Selector() theme.Selector {
	return theme.Selector{Element: "button", ID: ThumbID, Classes: []string{"thumb"}}
}

// SliderState moves the thumb after layout and keeps Range.Value in step.
type SliderState struct {
	// Duration is the thumb animation length in seconds; zero snaps.
	Duration float32

	thumb, track ecs.Entity
	move         *float64
	tween        *gween.Tween
}

// Move queues a pointer move to x, in absolute coordinates. It takes
// effect on the next frame, if the thumb is pressed.
func (s *SliderState) Move(x float64) {
	s.move = &x
}

// Thumb returns the thumb entity, once initialized.
func (s *SliderState) Thumb() ecs.Entity {
	return s.thumb
}

func (s *SliderState) Init(ctx *widget.Context) error {
	var err error
	if s.thumb, err = ctx.EntityOfChild(ThumbID); err != nil {
		return err
	}
	if s.track, err = ctx.EntityOfChild(TrackID); err != nil {
		return err
	}

	r, err := ecs.GetMut[Range](ctx.Storage, ctx.Entity)
	if err != nil {
		return err
	}
	r.Minimum = adjustMinimum(r.Minimum, r.Maximum)
	r.Maximum = adjustMaximum(r.Minimum, r.Maximum)
	r.Value = adjustValue(r.Value, r.Minimum, r.Maximum)
	return nil
}

func (s *SliderState) UpdatePostLayout(ctx *widget.Context) error {
	offset, err := ecs.GetMut[ThumbOffset](ctx.Storage, s.thumb)
	if err != nil {
		return err
	}

	if s.move != nil {
		mouseX := *s.move
		s.move = nil
		if err := s.applyMove(ctx, offset, mouseX); err != nil {
			return err
		}
	}

	if s.tween != nil {
		x, done := s.tween.Update(float32(ctx.DeltaTime))
		offset.X = float64(x)
		if done {
			s.tween = nil
		}
	}
	return nil
}

func (s *SliderState) applyMove(ctx *widget.Context, offset *ThumbOffset, mouseX float64) error {
	if p := ecs.ReadComponent[Pressed](ctx.Storage, s.thumb); p == nil || !p.Value {
		return nil
	}

	thumb, err := ecs.Get[layout.Geometry](ctx.Storage, s.thumb)
	if err != nil {
		return err
	}
	track, err := ecs.Get[layout.Geometry](ctx.Storage, s.track)
	if err != nil {
		return err
	}
	slider, err := ecs.Get[layout.Geometry](ctx.Storage, ctx.Entity)
	if err != nil {
		return err
	}
	r, err := ecs.GetMut[Range](ctx.Storage, ctx.Entity)
	if err != nil {
		return err
	}

	thumbX := calculateThumbX(mouseX, thumb.Size.Width, slider.Absolute.X, track.Size.Width)
	if s.Duration > 0 {
		s.tween = gween.New(float32(offset.X), float32(thumbX), s.Duration, ease.OutQuad)
	} else {
		s.tween = nil
		offset.X = thumbX
	}

	// The helper yields a distance from the minimum.
	value := r.Minimum + calculateValue(thumbX, r.Minimum, r.Maximum, thumb.Size.Width, track.Size.Width)
	r.Value = adjustValue(value, r.Minimum, r.Maximum)

	ctx.Push(ChangedEvent{Entity: ctx.Entity, Value: r.Value})
	return nil
}

func adjustValue(value, minimum, maximum float64) float64 {
	if math.IsNaN(value) || value < minimum {
		return minimum
	}
	if value > maximum {
		return maximum
	}
	return value
}

func adjustMinimum(minimum, maximum float64) float64 {
	if minimum > maximum {
		return maximum
	}
	return minimum
}

func adjustMaximum(minimum, maximum float64) float64 {
	if maximum < minimum {
		return minimum
	}
	return maximum
}

func calculateThumbX(mouseX, thumbWidth, sliderX, trackWidth float64) float64 {
	return math.Round(math.Min(math.Max(mouseX-sliderX-thumbWidth, 0), trackWidth-thumbWidth))
}

// calculateValue returns 0 when the thumb fills the track and cannot travel.
func calculateValue(thumbX, minimum, maximum, thumbWidth, trackWidth float64) float64 {
	travel := trackWidth - thumbWidth
	if travel <= 0 {
		return 0
	}
	return math.Round(thumbX / travel * (maximum - minimum))
}
