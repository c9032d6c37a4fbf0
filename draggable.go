package draggable

// Vec2 is a 2D vector used for points and offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Point is a viewport-relative pixel coordinate. It is comparable against
// element bounds, which share the same frame.
type Point = Vec2

// CursorPoint is a document-relative pixel coordinate. It is only meant for
// cosmetic cursor following and never for hit testing.
type CursorPoint = Vec2

// Rect is an axis-aligned, viewport-relative bounding rectangle. The origin is
// the top-left of the viewport with Y increasing downward: X is the left edge
// and Y is the top edge.
type Rect struct {
	X, Y, Width, Height float64
}

// Left returns the left edge.
func (r Rect) Left() float64 { return r.X }

// Top returns the top edge.
func (r Rect) Top() float64 { return r.Y }

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{r.X, r.Y} }

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Size is the width and height of the viewport in pixels.
type Size struct {
	Width, Height float64
}

// State is one of the three gesture states. Exactly one holds at any time.
type State uint8

const (
	StateIdle     State = iota // no press in progress
	StatePressed               // pressed on a draggable, threshold not crossed
	StateDragging              // threshold crossed, drag confirmed
)

// String returns the state's name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressed:
		return "pressed"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// EventType identifies a kind of drag event emitted to callers.
type EventType uint8

const (
	EventDragStart EventType = iota // fires on the move that crosses the threshold
	EventDragMove                   // fires on every qualifying move while a placeholder exists
	EventDragStop                   // fires on release, see ReleaseMode
)

// String returns the event's name as used in logs and replay output.
func (t EventType) String() string {
	switch t {
	case EventDragStart:
		return "dragStart"
	case EventDragMove:
		return "dragMove"
	case EventDragStop:
		return "dragStop"
	default:
		return "unknown"
	}
}

// ReleaseMode selects when a release emits DragStop.
type ReleaseMode uint8

const (
	// ReleaseFaithful emits DragStop whenever a release arrives while no
	// press candidate is recorded. A drag clears the candidate when it is
	// confirmed, so a release after a drag stops; a release between a press
	// and its first qualifying move does not.
	ReleaseFaithful ReleaseMode = iota
	// ReleaseAfterDrag emits DragStop only for a release that ends a
	// confirmed drag.
	ReleaseAfterDrag
)

// defaultDragThreshold is the number of pixels the pointer must travel in
// either axis before a move counts.
const defaultDragThreshold = 2.0
