package draggable

// --- Handler registry ---

type startHandler struct {
	id uint32
	fn func(DragStart)
}

type moveHandler struct {
	id uint32
	fn func(DragMove)
}

type stopHandler struct {
	id uint32
	fn func()
}

type handlerRegistry struct {
	dragStart []startHandler
	dragMove  []moveHandler
	dragStop  []stopHandler
	nextID    uint32
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// Removing twice, or removing a zero handle, is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, func(s startHandler) bool { return s.id == h.id })
	case EventDragMove:
		h.reg.dragMove = removeHandler(h.reg.dragMove, func(s moveHandler) bool { return s.id == h.id })
	case EventDragStop:
		h.reg.dragStop = removeHandler(h.reg.dragStop, func(s stopHandler) bool { return s.id == h.id })
	}
}

// removeHandler deletes the first entry matching and clears the vacated tail
// slot so the closure can be collected.
func removeHandler[T any](s []T, match func(T) bool) []T {
	for i := range s {
		if match(s[i]) {
			copy(s[i:], s[i+1:])
			var zero T
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnDragStart registers a callback for drag start events. Registered
// callbacks run after Options.On.DragStart, in registration order.
func (e *Engine) OnDragStart(fn func(DragStart)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.dragStart = append(e.handlers.dragStart, startHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventDragStart}
}

// OnDragMove registers a callback for drag move events.
func (e *Engine) OnDragMove(fn func(DragMove)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.dragMove = append(e.handlers.dragMove, moveHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventDragMove}
}

// OnDragStop registers a callback for drag stop events.
func (e *Engine) OnDragStop(fn func()) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.dragStop = append(e.handlers.dragStop, stopHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: EventDragStop}
}

// --- Event dispatch ---

func (e *Engine) fireDragStart(ev DragStart) {
	if e.on.DragStart != nil {
		e.on.DragStart(ev)
	}
	for _, h := range e.handlers.dragStart {
		h.fn(ev)
	}
	e.emitStore(DragEvent{Type: EventDragStart, DraggableID: ev.DraggableID, Point: ev.Point})
}

func (e *Engine) fireDragMove(ev DragMove) {
	if e.on.DragMove != nil {
		e.on.DragMove(ev)
	}
	for _, h := range e.handlers.dragMove {
		h.fn(ev)
	}
	if e.store != nil {
		e.emitStore(DragEvent{
			Type:     EventDragMove,
			Point:    ev.Placeholder.Point,
			Cursor:   ev.Cursor,
			Overlaps: overlapIDs(ev),
		})
	}
}

func (e *Engine) fireDragStop() {
	if e.on.DragStop != nil {
		e.on.DragStop()
	}
	for _, h := range e.handlers.dragStop {
		h.fn()
	}
	e.emitStore(DragEvent{Type: EventDragStop})
}
