package draggable

import "strings"

// Element is the capability the engine needs from a host element. A nil
// ParentElement marks the document root.
type Element interface {
	// Data returns the value of the named attribute and whether it is set.
	Data(name string) (string, bool)
	// ParentElement returns the parent, or nil at the root.
	ParentElement() Element
	// Bounds returns the current viewport-relative bounding rectangle.
	Bounds() Rect
}

// DatasetAttr converts a dataset key such as "draggableId" into its attribute
// name "data-draggable-id". Names already starting with "data-" are returned
// unchanged.
func DatasetAttr(key string) string {
	if key == "" || strings.HasPrefix(key, "data-") {
		return key
	}
	var b strings.Builder
	b.Grow(len(key) + 8)
	b.WriteString("data-")
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('-')
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// nearestDraggable walks from el up to the root and returns the first element
// carrying attr, or nil.
func nearestDraggable(el Element, attr string) Element {
	for ; el != nil; el = el.ParentElement() {
		if _, ok := el.Data(attr); ok {
			return el
		}
	}
	return nil
}

// draggableID returns the value of attr on the nearest element carrying it.
func draggableID(el Element, attr string) (string, bool) {
	d := nearestDraggable(el, attr)
	if d == nil {
		return "", false
	}
	return d.Data(attr)
}

// dropZoneID reads attr directly off a bucket element. There is no ancestor
// search.
func dropZoneID(el Element, attr string) (string, bool) {
	if el == nil {
		return "", false
	}
	return el.Data(attr)
}
