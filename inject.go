package draggable

// InjectSource is an EventSource fed by synthetic events. Events are queued
// by the Inject methods and delivered to attached handlers by Step or Flush,
// in the order they were queued. It drives engines in tests and in headless
// replay.
type InjectSource struct {
	queue    []*PointerEvent
	handlers []EventHandler
	scroll   Vec2
}

// NewInjectSource creates an empty source.
func NewInjectSource() *InjectSource {
	return &InjectSource{}
}

// Attach implements EventSource.
func (s *InjectSource) Attach(h EventHandler) {
	s.handlers = append(s.handlers, h)
}

// Detach implements EventSource.
func (s *InjectSource) Detach(h EventHandler) {
	for i := range s.handlers {
		if s.handlers[i] == h {
			copy(s.handlers[i:], s.handlers[i+1:])
			s.handlers[len(s.handlers)-1] = nil
			s.handlers = s.handlers[:len(s.handlers)-1]
			return
		}
	}
}

// SetScroll sets the page scroll offset stamped on subsequently queued touch
// events.
func (s *InjectSource) SetScroll(x, y float64) {
	s.scroll = Vec2{x, y}
}

// Pending returns the number of queued events.
func (s *InjectSource) Pending() int {
	return len(s.queue)
}

// Inject queues an arbitrary event.
func (s *InjectSource) Inject(ev *PointerEvent) {
	s.queue = append(s.queue, ev)
}

// InjectPress queues a mouse press at client coordinates (x, y).
func (s *InjectSource) InjectPress(target Element, x, y float64) {
	s.Inject(NewMouseEvent(PhasePress, target, x, y))
}

// InjectMove queues a mouse move at client coordinates (x, y).
func (s *InjectSource) InjectMove(target Element, x, y float64) {
	s.Inject(NewMouseEvent(PhaseMove, target, x, y))
}

// InjectRelease queues a mouse release at client coordinates (x, y).
func (s *InjectSource) InjectRelease(target Element, x, y float64) {
	s.Inject(NewMouseEvent(PhaseRelease, target, x, y))
}

// InjectClick is a convenience that queues a press followed by a release at
// the same coordinates.
func (s *InjectSource) InjectClick(target Element, x, y float64) {
	s.InjectPress(target, x, y)
	s.InjectRelease(target, x, y)
}

// InjectDrag queues a full mouse drag: press at (fromX, fromY), steps
// linearly interpolated moves ending at (toX, toY), and a release there.
// At least one move is queued.
func (s *InjectSource) InjectDrag(target Element, fromX, fromY, toX, toY float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	s.InjectPress(target, fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(target, fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(target, toX, toY)
}

// InjectTouchStart queues a touchstart with one touch at client (x, y).
// The touch's page coordinates include the current scroll offset.
func (s *InjectSource) InjectTouchStart(target Element, x, y float64) {
	s.Inject(NewTouchEvent(PhasePress, target, s.scroll, s.touch(x, y)))
}

// InjectTouchMove queues a touchmove with one touch at client (x, y).
func (s *InjectSource) InjectTouchMove(target Element, x, y float64) {
	s.Inject(NewTouchEvent(PhaseMove, target, s.scroll, s.touch(x, y)))
}

// InjectTouchEnd queues a touchend. Ended touches are no longer active, so
// the event carries none.
func (s *InjectSource) InjectTouchEnd(target Element) {
	s.Inject(NewTouchEvent(PhaseRelease, target, s.scroll))
}

// InjectTouchCancel queues a touchcancel.
func (s *InjectSource) InjectTouchCancel(target Element) {
	s.Inject(NewTouchEvent(PhaseCancel, target, s.scroll))
}

func (s *InjectSource) touch(x, y float64) Touch {
	return Touch{
		Client: Point{x, y},
		Page:   Vec2{x + s.scroll.X, y + s.scroll.Y},
	}
}

// Step delivers the oldest queued event to every attached handler. It
// returns false when the queue is empty.
func (s *InjectSource) Step() bool {
	if len(s.queue) == 0 {
		return false
	}
	ev := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue[len(s.queue)-1] = nil
	s.queue = s.queue[:len(s.queue)-1]

	for _, h := range s.handlers {
		h.HandleEvent(ev)
	}
	return true
}

// Flush delivers every queued event and returns how many were delivered.
func (s *InjectSource) Flush() int {
	n := 0
	for s.Step() {
		n++
	}
	return n
}
