package draggable

// DragStart is passed to DragStart callbacks.
type DragStart struct {
	DraggableID string
	Point       Point // placeholder position
}

// PlaceholderGeometry pairs the computed placeholder position with the live
// bounds of the placeholder element.
type PlaceholderGeometry struct {
	Point  Point
	Bounds Rect
}

// BucketBounds pairs a drop zone's id with its live bounding rectangle.
// HasID is false when the bucket element carries no id attribute.
type BucketBounds struct {
	ID     string
	HasID  bool
	Bounds Rect
}

// DragMove is passed to DragMove callbacks on every qualifying move while a
// placeholder exists.
type DragMove struct {
	ClientSize   Size
	Cursor       CursorPoint
	Placeholder  PlaceholderGeometry
	BucketBounds []BucketBounds
}

// Overlapping returns the buckets whose bounds intersect the placeholder
// bounds, in the order they were enumerated.
func (m DragMove) Overlapping() []BucketBounds {
	var out []BucketBounds
	for _, b := range m.BucketBounds {
		if b.Bounds.Intersects(m.Placeholder.Bounds) {
			out = append(out, b)
		}
	}
	return out
}

// Under returns the buckets containing p, in enumeration order.
func (m DragMove) Under(p Point) []BucketBounds {
	var out []BucketBounds
	for _, b := range m.BucketBounds {
		if b.Bounds.Contains(p.X, p.Y) {
			out = append(out, b)
		}
	}
	return out
}

// Callbacks holds the caller-supplied event handlers. Nil handlers are
// skipped.
type Callbacks struct {
	DragStart func(DragStart)
	DragMove  func(DragMove)
	DragStop  func()
}

// --- ECS bridge ---

// EntityStore is the interface for optional ECS integration. When set in
// Options, every emitted drag event is also forwarded to the store.
type EntityStore interface {
	EmitEvent(event DragEvent)
}

// DragEvent carries drag data for the ECS bridge.
type DragEvent struct {
	Type        EventType
	DraggableID string // valid for EventDragStart
	Point       Point  // placeholder position; zero for EventDragStop
	Cursor      CursorPoint
	// Overlaps lists the ids of buckets intersecting the placeholder
	// (EventDragMove only; buckets without an id are skipped).
	Overlaps []string
}

func (e *Engine) emitStore(ev DragEvent) {
	if e.store == nil {
		return
	}
	e.store.EmitEvent(ev)
}

func overlapIDs(m DragMove) []string {
	var ids []string
	for _, b := range m.Overlapping() {
		if b.HasID {
			ids = append(ids, b.ID)
		}
	}
	return ids
}
