package draggable

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EbitenSource is an EventSource that polls Ebitengine input. Call Update
// once per tick from your ebiten.Game's Update. The left mouse button and
// the first active touch are translated into press, move and release events
// whose targets are resolved through a TargetResolver (usually a Document).
// Additional touches are ignored.
type EbitenSource struct {
	targets  TargetResolver
	handlers []EventHandler

	// Scroll is the page scroll offset stamped on touch events. Games that
	// scroll their content set it before calling Update.
	Scroll Vec2

	cursorX, cursorY int
	hasCursor        bool

	touchID     ebiten.TouchID
	touchActive bool
	touchX      int
	touchY      int
	justPressed []ebiten.TouchID
}

// NewEbitenSource creates a source resolving targets through targets.
func NewEbitenSource(targets TargetResolver) *EbitenSource {
	return &EbitenSource{targets: targets}
}

// Attach implements EventSource.
func (s *EbitenSource) Attach(h EventHandler) {
	s.handlers = append(s.handlers, h)
}

// Detach implements EventSource.
func (s *EbitenSource) Detach(h EventHandler) {
	for i := range s.handlers {
		if s.handlers[i] == h {
			copy(s.handlers[i:], s.handlers[i+1:])
			s.handlers[len(s.handlers)-1] = nil
			s.handlers = s.handlers[:len(s.handlers)-1]
			return
		}
	}
}

func (s *EbitenSource) dispatch(ev *PointerEvent) {
	for _, h := range s.handlers {
		h.HandleEvent(ev)
	}
}

func (s *EbitenSource) target(x, y float64) Element {
	if s.targets == nil {
		return nil
	}
	return s.targets.ElementAt(x, y)
}

// Update polls input and dispatches this tick's events.
func (s *EbitenSource) Update() {
	s.processTouch()
	if s.touchActive {
		// Platforms that emulate the cursor from touches would otherwise
		// report the same gesture twice.
		return
	}
	s.processMouse()
}

// processMouse handles the left button and cursor movement. A cursor that
// moved during the tick is reported before a press so the press lands where
// the pointer is.
func (s *EbitenSource) processMouse() {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)

	if !s.hasCursor || mx != s.cursorX || my != s.cursorY {
		s.cursorX, s.cursorY = mx, my
		s.hasCursor = true
		s.dispatch(NewMouseEvent(PhaseMove, s.target(x, y), x, y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		s.dispatch(NewMouseEvent(PhasePress, s.target(x, y), x, y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		s.dispatch(NewMouseEvent(PhaseRelease, s.target(x, y), x, y))
	}
}

// processTouch tracks a single touch from start to end.
func (s *EbitenSource) processTouch() {
	if !s.touchActive {
		s.justPressed = inpututil.AppendJustPressedTouchIDs(s.justPressed[:0])
		if len(s.justPressed) == 0 {
			return
		}
		s.touchID = s.justPressed[0]
		s.touchActive = true
		s.touchX, s.touchY = ebiten.TouchPosition(s.touchID)
		x, y := float64(s.touchX), float64(s.touchY)
		s.dispatch(NewTouchEvent(PhasePress, s.target(x, y), s.Scroll, s.touch(x, y)))
		return
	}

	if inpututil.IsTouchJustReleased(s.touchID) {
		s.touchActive = false
		x, y := float64(s.touchX), float64(s.touchY)
		ev := NewTouchEvent(PhaseRelease, s.target(x, y), s.Scroll)
		ev.Client = Point{x, y}
		s.dispatch(ev)
		return
	}

	tx, ty := ebiten.TouchPosition(s.touchID)
	if tx == s.touchX && ty == s.touchY {
		return
	}
	s.touchX, s.touchY = tx, ty
	x, y := float64(tx), float64(ty)
	s.dispatch(NewTouchEvent(PhaseMove, s.target(x, y), s.Scroll, s.touch(x, y)))
}

func (s *EbitenSource) touch(x, y float64) Touch {
	return Touch{
		Client: Point{x, y},
		Page:   Vec2{x + s.Scroll.X, y + s.Scroll.Y},
	}
}
