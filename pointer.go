package draggable

// Phase identifies where a pointer event falls in a press/move/release cycle.
type Phase uint8

const (
	PhasePress   Phase = iota // mousedown, touchstart
	PhaseMove                 // mousemove, touchmove
	PhaseRelease              // mouseup, touchend
	PhaseCancel               // touchcancel; handled like a release
)

// Source distinguishes mouse events from touch events. It is resolved once
// when the event is constructed.
type Source uint8

const (
	SourceMouse Source = iota
	SourceTouch
)

// String returns the source name.
func (s Source) String() string {
	if s == SourceTouch {
		return "touch"
	}
	return "mouse"
}

// Touch is a single active touch point.
type Touch struct {
	Client Point // viewport-relative
	Page   Vec2  // document-relative, includes scroll
}

// PointerEvent is a host pointer event normalized into a tagged variant.
// Build one with NewMouseEvent or NewTouchEvent.
type PointerEvent struct {
	Phase  Phase
	Source Source

	// Target is the element the event was dispatched to. It may be nil when
	// the pointer is over nothing.
	Target Element

	// Client holds the event's own client coordinates. For touch events it is
	// the fallback when no touch point is active (touchend).
	Client Point

	// Touches lists the active touch points. Only the first is considered.
	Touches []Touch

	// Scroll is the page scroll offset at dispatch time.
	Scroll Vec2

	defaultPrevented bool
}

// NewMouseEvent creates a mouse event at client coordinates (x, y).
func NewMouseEvent(phase Phase, target Element, x, y float64) *PointerEvent {
	return &PointerEvent{
		Phase:  phase,
		Source: SourceMouse,
		Target: target,
		Client: Point{x, y},
	}
}

// NewTouchEvent creates a touch event carrying zero or more touch points and
// the page scroll offset at dispatch time.
func NewTouchEvent(phase Phase, target Element, scroll Vec2, touches ...Touch) *PointerEvent {
	ev := &PointerEvent{
		Phase:   phase,
		Source:  SourceTouch,
		Target:  target,
		Touches: touches,
		Scroll:  scroll,
	}
	if len(touches) > 0 {
		ev.Client = touches[0].Client
	}
	return ev
}

// PreventDefault marks the event so the host suppresses its default action
// (text selection on mousedown, panning on touchstart).
func (e *PointerEvent) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *PointerEvent) DefaultPrevented() bool {
	return e.defaultPrevented
}

// ViewportPoint returns the viewport-relative point of the event: the first
// touch's client coordinates when a touch is active, otherwise the event's
// client coordinates. The value is not scroll-adjusted and must only be
// compared against viewport-relative bounds.
func ViewportPoint(e *PointerEvent) Point {
	if len(e.Touches) > 0 {
		return e.Touches[0].Client
	}
	return e.Client
}

// DocumentPoint returns the cursor point of the event. Touch page
// coordinates include scroll while mouse client coordinates do not, so the
// scroll offset is subtracted from the first touch's page coordinates to
// line both sources up.
func DocumentPoint(e *PointerEvent) CursorPoint {
	if len(e.Touches) > 0 {
		t := e.Touches[0]
		return CursorPoint{t.Page.X - e.Scroll.X, t.Page.Y - e.Scroll.Y}
	}
	return e.Client
}
