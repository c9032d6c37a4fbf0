package draggable

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Option validation errors.
var (
	ErrMissingDraggableAttr = errors.New("draggable: DraggableDataAttr is required")
	ErrMissingDropZones     = errors.New("draggable: no drop zone source (set Document or DropZones)")
	ErrMissingPlaceholder   = errors.New("draggable: no placeholder source (set Document or Placeholder)")
	ErrMissingViewport      = errors.New("draggable: no viewport source (set Document or Viewport)")
	ErrNegativeThreshold    = errors.New("draggable: Threshold must not be negative")
)

// DropZoneSource enumerates the current drop zones with their live bounds,
// in document order. It is queried on every qualifying move.
type DropZoneSource interface {
	DropZones() []BucketBounds
}

// PlaceholderSource reports the live bounds of the floating placeholder and
// whether it exists at all.
type PlaceholderSource interface {
	Placeholder() (Rect, bool)
}

// ViewportSource reports the current viewport client size.
type ViewportSource interface {
	ClientSize() Size
}

// Offsets is the constant bias added to a press offset, separately for mouse
// and touch, to compensate for their differing visual hotspots.
type Offsets struct {
	Mouse Vec2
	Touch Vec2
}

// Options configures an Engine.
//
// Drop zones, the placeholder and the viewport are either derived from
// Document (using BucketQuerySelector, BucketDataAttr and PlaceholderID) or
// supplied directly through DropZones, Placeholder and Viewport. Explicit
// sources take precedence.
type Options struct {
	// DraggableDataAttr names the marker attribute of draggable elements.
	// Dataset keys ("draggableId") and attribute names
	// ("data-draggable-id") are both accepted.
	DraggableDataAttr string
	// BucketDataAttr names the id attribute read off drop zone elements.
	BucketDataAttr string
	// BucketQuerySelector enumerates all drop zone elements.
	BucketQuerySelector string
	// PlaceholderID is the element id of the floating placeholder.
	PlaceholderID string

	Offsets Offsets
	On      Callbacks

	// Threshold is the per-axis distance in pixels a move must cover to
	// qualify. Zero means the default of 2.
	Threshold float64

	ReleaseMode ReleaseMode

	Document    *Document
	DropZones   DropZoneSource
	Placeholder PlaceholderSource
	Viewport    ViewportSource

	// Logger receives debug output for state transitions. Nil disables
	// logging.
	Logger *zap.Logger

	// Store, when non-nil, receives every emitted event.
	Store EntityStore
}

// resolve fills defaults, derives sources from Document and validates the
// result.
func (o Options) resolve() (Options, error) {
	if o.DraggableDataAttr == "" {
		return o, ErrMissingDraggableAttr
	}
	if o.Threshold < 0 {
		return o, ErrNegativeThreshold
	}
	if o.Threshold == 0 {
		o.Threshold = defaultDragThreshold
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	o.DraggableDataAttr = DatasetAttr(o.DraggableDataAttr)
	o.BucketDataAttr = DatasetAttr(o.BucketDataAttr)

	if o.Document != nil {
		src, err := o.Document.Sources(o.BucketQuerySelector, o.BucketDataAttr, o.PlaceholderID)
		if err != nil {
			return o, fmt.Errorf("draggable: document sources: %w", err)
		}
		if o.DropZones == nil {
			o.DropZones = src
		}
		if o.Placeholder == nil {
			o.Placeholder = src
		}
		if o.Viewport == nil {
			o.Viewport = o.Document
		}
	}

	switch {
	case o.DropZones == nil:
		return o, ErrMissingDropZones
	case o.Placeholder == nil:
		return o, ErrMissingPlaceholder
	case o.Viewport == nil:
		return o, ErrMissingViewport
	}
	return o, nil
}

func (o Options) bias(src Source) Vec2 {
	if src == SourceTouch {
		return o.Offsets.Touch
	}
	return o.Offsets.Mouse
}
