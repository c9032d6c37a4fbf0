package draggable

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Settle animates a placeholder point toward a resting position after a
// drop, such as the accepting bucket's corner or back to where the drag
// began. Create one with NewSettle and call Update(dt) each frame.
//
// There is no global animation manager; callers drive Update themselves.
type Settle struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	point  Point
	Done   bool
}

// NewSettle creates a Settle moving from -> to over duration seconds using
// the easing function. A nil fn uses ease.OutCubic.
func NewSettle(from, to Point, duration float32, fn ease.TweenFunc) *Settle {
	if fn == nil {
		fn = ease.OutCubic
	}
	return &Settle{
		tweenX: gween.New(float32(from.X), float32(to.X), duration, fn),
		tweenY: gween.New(float32(from.Y), float32(to.Y), duration, fn),
		point:  from,
	}
}

// Point returns the current position.
func (s *Settle) Point() Point {
	return s.point
}

// Update advances the animation by dt seconds and returns the new position
// and whether the animation has finished.
func (s *Settle) Update(dt float32) (Point, bool) {
	if s.Done {
		return s.point, true
	}
	x, doneX := s.tweenX.Update(dt)
	y, doneY := s.tweenY.Update(dt)
	s.point = Point{float64(x), float64(y)}
	s.Done = doneX && doneY
	return s.point, s.Done
}

// SettleTarget picks where a dropped placeholder should come to rest: the
// top-left of the first bucket it overlaps, or home when it overlaps none.
func SettleTarget(m DragMove, home Point) (Point, BucketBounds, bool) {
	over := m.Overlapping()
	if len(over) == 0 {
		return home, BucketBounds{}, false
	}
	return over[0].Bounds.TopLeft(), over[0], true
}
