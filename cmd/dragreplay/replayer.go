package main

import (
	"encoding/json"
	"fmt"

	"github.com/phanxgames/draggable"
)

// record is one line of replay output.
type record struct {
	Event       string           `json:"event"`
	Label       string           `json:"label,omitempty"`
	DraggableID string           `json:"draggableId,omitempty"`
	Point       *draggable.Point `json:"point,omitempty"`
	Cursor      *draggable.Point `json:"cursor,omitempty"`
	Placeholder *draggable.Rect  `json:"placeholder,omitempty"`
	Overlaps    []string         `json:"overlaps,omitempty"`
	Buckets     []bucketRecord   `json:"buckets,omitempty"`
	ClientSize  *draggable.Size  `json:"clientSize,omitempty"`
}

type bucketRecord struct {
	ID     *string        `json:"id"`
	Bounds draggable.Rect `json:"bounds"`
}

// replayer plays the caller's part: it writes events out and keeps the
// placeholder element in step with the drag.
type replayer struct {
	doc           *draggable.Document
	enc           *json.Encoder
	follow        bool
	draggableAttr string
	placeholderID string

	placeholder *draggable.DOMElement
	err         error
}

func (r *replayer) write(rec record) {
	if r.err != nil {
		return
	}
	if err := r.enc.Encode(rec); err != nil {
		r.err = fmt.Errorf("write output: %w", err)
	}
}

func (r *replayer) callbacks() draggable.Callbacks {
	return draggable.Callbacks{
		DragStart: r.dragStart,
		DragMove:  r.dragMove,
		DragStop:  r.dragStop,
	}
}

func (r *replayer) mark(label string) {
	r.write(record{Event: "mark", Label: label})
}

func (r *replayer) dragStart(ev draggable.DragStart) {
	p := ev.Point
	r.write(record{Event: draggable.EventDragStart.String(), DraggableID: ev.DraggableID, Point: &p})
	if !r.follow || r.doc.ElementByID(r.placeholderID) != nil {
		return
	}
	size := draggable.Rect{}
	if el := r.doc.ElementByData(r.draggableAttr, ev.DraggableID); el != nil {
		size = el.Bounds()
	}
	r.placeholder = r.doc.CreateElement("div").
		SetAttr("id", r.placeholderID).
		SetBounds(draggable.Rect{X: p.X, Y: p.Y, Width: size.Width, Height: size.Height})
	r.doc.Body().AppendChild(r.placeholder)
}

func (r *replayer) dragMove(ev draggable.DragMove) {
	p, c, ph, size := ev.Placeholder.Point, ev.Cursor, ev.Placeholder.Bounds, ev.ClientSize
	rec := record{
		Event:       draggable.EventDragMove.String(),
		Point:       &p,
		Cursor:      &c,
		Placeholder: &ph,
		ClientSize:  &size,
	}
	for _, b := range ev.BucketBounds {
		br := bucketRecord{Bounds: b.Bounds}
		if b.HasID {
			id := b.ID
			br.ID = &id
		}
		rec.Buckets = append(rec.Buckets, br)
	}
	for _, b := range ev.Overlapping() {
		if b.HasID {
			rec.Overlaps = append(rec.Overlaps, b.ID)
		}
	}
	r.write(rec)

	if r.follow && r.placeholder != nil {
		b := r.placeholder.Bounds()
		r.placeholder.SetBounds(draggable.Rect{X: p.X, Y: p.Y, Width: b.Width, Height: b.Height})
	}
}

func (r *replayer) dragStop() {
	r.write(record{Event: draggable.EventDragStop.String()})
	if r.placeholder != nil {
		r.placeholder.Remove()
		r.placeholder = nil
	}
}
