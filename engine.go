package draggable

import (
	"errors"
	"math"

	"go.uber.org/zap"
)

// ErrAlreadyAttached is returned by Engine.Attach when the engine is already
// listening to an event source.
var ErrAlreadyAttached = errors.New("draggable: engine already attached")

// EventHandler consumes normalized pointer events.
type EventHandler interface {
	HandleEvent(ev *PointerEvent)
}

// EventSource delivers host pointer events to attached handlers, one at a
// time and in dispatch order.
type EventSource interface {
	Attach(h EventHandler)
	Detach(h EventHandler)
}

// pressState is the record of one press. candidate is nil when no press is
// recorded.
type pressState struct {
	candidate Element // element under the initial press
	origin    Point   // threshold baseline at press time
}

// Engine is the gesture state machine. It turns a stream of press, move and
// release events into DragStart, DragMove and DragStop callbacks.
//
// An Engine handles exactly one gesture at a time and is not safe for
// concurrent use; hosts must deliver events from a single goroutine.
type Engine struct {
	opts     Options
	on       Callbacks
	handlers handlerRegistry
	store    EntityStore
	log      *zap.Logger

	state State
	press pressState

	// offset is the press offset of the most recent press. It outlives the
	// press record so moves after drag confirmation keep the same anchor.
	offset Vec2

	lastPoint Point
	hasLast   bool

	source EventSource
}

// New creates an Engine from opts.
func New(opts Options) (*Engine, error) {
	resolved, err := opts.resolve()
	if err != nil {
		return nil, err
	}
	return &Engine{
		opts:  resolved,
		on:    resolved.On,
		store: resolved.Store,
		log:   resolved.Logger,
	}, nil
}

// State returns the current gesture state.
func (e *Engine) State() State {
	return e.state
}

// Dragging reports whether a drag has been confirmed and not yet released.
func (e *Engine) Dragging() bool {
	return e.state == StateDragging
}

// PressOffset returns the offset recorded by the most recent press.
func (e *Engine) PressOffset() Vec2 {
	return e.offset
}

// PressOrigin returns where the pending press landed. It reports false
// once the drag is confirmed or the press is released.
func (e *Engine) PressOrigin() (Point, bool) {
	return e.press.origin, e.press.candidate != nil
}

// LastPoint returns the last recorded viewport point and whether one exists.
func (e *Engine) LastPoint() (Point, bool) {
	return e.lastPoint, e.hasLast
}

// Threshold returns the per-axis distance a move must cover to qualify.
func (e *Engine) Threshold() float64 {
	return e.opts.Threshold
}

// Attach starts listening to src. Detach before attaching to another source.
func (e *Engine) Attach(src EventSource) error {
	if e.source != nil {
		return ErrAlreadyAttached
	}
	src.Attach(e)
	e.source = src
	return nil
}

// Detach stops listening to the attached source and resets the engine to
// idle without emitting events. It is a no-op when not attached.
func (e *Engine) Detach() {
	if e.source == nil {
		return
	}
	e.source.Detach(e)
	e.source = nil
	e.Reset()
}

// Reset drops any press record and returns to idle without emitting events.
func (e *Engine) Reset() {
	e.press = pressState{}
	e.state = StateIdle
}

// HandleEvent dispatches ev by phase. It implements EventHandler.
func (e *Engine) HandleEvent(ev *PointerEvent) {
	switch ev.Phase {
	case PhasePress:
		e.Press(ev)
	case PhaseMove:
		e.Move(ev)
	case PhaseRelease, PhaseCancel:
		e.Release(ev)
	}
}

// Press records a press when the event target or one of its ancestors is
// draggable. Presses elsewhere, and presses while a gesture is already in
// progress, are ignored and leave the event's default action alone.
func (e *Engine) Press(ev *PointerEvent) {
	if e.state != StateIdle {
		e.log.Debug("press ignored, gesture in progress", zap.Stringer("state", e.state))
		return
	}
	anchor := nearestDraggable(ev.Target, e.opts.DraggableDataAttr)
	if anchor == nil {
		return
	}
	ev.PreventDefault()

	p := ViewportPoint(ev)
	bounds := anchor.Bounds()

	e.offset = p.Sub(bounds.TopLeft()).Add(e.opts.bias(ev.Source))
	e.press = pressState{candidate: ev.Target, origin: p}
	e.lastPoint = p
	e.hasLast = true
	e.state = StatePressed

	e.log.Debug("press",
		zap.Stringer("source", ev.Source),
		zap.Float64("x", p.X), zap.Float64("y", p.Y),
		zap.Float64("offset_x", e.offset.X), zap.Float64("offset_y", e.offset.Y))
}

// qualifies reports whether p is far enough from the last point to count.
// Without a last point, the first mouse move always counts so an initial
// hover is not dropped, and a touch move is measured from the origin.
func (e *Engine) qualifies(p Point, src Source) bool {
	last := e.lastPoint
	if !e.hasLast {
		if src == SourceMouse {
			return true
		}
		last = Point{}
	}
	t := e.opts.Threshold
	return math.Abs(p.X-last.X) >= t || math.Abs(p.Y-last.Y) >= t
}

// Move handles a pointer move. Non-qualifying moves are ignored entirely.
// The first qualifying move after a press confirms the drag.
func (e *Engine) Move(ev *PointerEvent) {
	p := ViewportPoint(ev)
	if !e.qualifies(p, ev.Source) {
		return
	}
	placeholder := p.Sub(e.offset)
	e.lastPoint = p
	e.hasLast = true

	if e.state == StatePressed {
		candidate := e.press.candidate
		e.press = pressState{}
		e.state = StateDragging

		id, ok := draggableID(candidate, e.opts.DraggableDataAttr)
		e.log.Debug("drag confirmed",
			zap.String("draggable_id", id), zap.Bool("has_id", ok),
			zap.Float64("x", placeholder.X), zap.Float64("y", placeholder.Y))
		if ok {
			e.fireDragStart(DragStart{DraggableID: id, Point: placeholder})
		}
	}

	bounds, ok := e.opts.Placeholder.Placeholder()
	if !ok {
		return
	}
	e.fireDragMove(DragMove{
		ClientSize: e.opts.Viewport.ClientSize(),
		Cursor:     DocumentPoint(ev),
		Placeholder: PlaceholderGeometry{
			Point:  placeholder,
			Bounds: bounds,
		},
		BucketBounds: e.opts.DropZones.DropZones(),
	})
}

// Release ends the current cycle.
//
// With ReleaseFaithful, DragStop fires only when no press candidate is
// recorded. Drag confirmation clears the candidate, so a release after a
// drag fires DragStop, as does a release with no press at all, while a
// release between a press and its first qualifying move only clears the
// record. With ReleaseAfterDrag, DragStop fires only when a confirmed drag
// ends.
func (e *Engine) Release(ev *PointerEvent) {
	hadCandidate := e.press.candidate != nil
	wasDragging := e.state == StateDragging
	e.Reset()

	var stop bool
	switch e.opts.ReleaseMode {
	case ReleaseAfterDrag:
		stop = wasDragging
	default:
		stop = !hadCandidate
	}
	e.log.Debug("release",
		zap.Stringer("source", ev.Source),
		zap.Bool("was_dragging", wasDragging), zap.Bool("stop", stop))
	if stop {
		e.fireDragStop()
	}
}
