package draggable

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ErrMissingPlaceholderID is returned by Document.Sources when no placeholder
// id is configured.
var ErrMissingPlaceholderID = errors.New("draggable: PlaceholderID is required with a Document")

// ErrMissingBucketSelector is returned by Document.Sources when neither a
// bucket selector nor a bucket attribute is configured.
var ErrMissingBucketSelector = errors.New("draggable: BucketQuerySelector or BucketDataAttr is required with a Document")

// Document is an in-memory element tree with viewport-relative bounds. It
// stands in for a browser document: elements carry attributes, selectors are
// matched against the live tree, and every element's bounding rectangle is
// whatever was last assigned to it.
type Document struct {
	root   *html.Node
	body   *html.Node
	bounds map[*html.Node]Rect
	elems  map[*html.Node]*DOMElement
	size   Size
}

// NewDocument creates an empty document with the given viewport size.
func NewDocument(width, height float64) *Document {
	root := &html.Node{Type: html.DocumentNode}
	htmlEl := &html.Node{Type: html.ElementNode, DataAtom: atom.Html, Data: "html"}
	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(body)
	return &Document{
		root:   root,
		body:   body,
		bounds: make(map[*html.Node]Rect),
		elems:  make(map[*html.Node]*DOMElement),
		size:   Size{Width: width, Height: height},
	}
}

// ParseDocument parses HTML from r. Elements carrying boundsAttr get their
// bounds from its value, four space- or comma-separated numbers in the order
// left, top, width, height. An empty boundsAttr skips bounds parsing.
func ParseDocument(r io.Reader, boundsAttr string, width, height float64) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	d := &Document{
		root:   root,
		bounds: make(map[*html.Node]Rect),
		elems:  make(map[*html.Node]*DOMElement),
		size:   Size{Width: width, Height: height},
	}
	var walkErr error
	walk(root, func(n *html.Node) bool {
		if n.DataAtom == atom.Body && d.body == nil {
			d.body = n
		}
		if boundsAttr == "" {
			return true
		}
		v, ok := attr(n, boundsAttr)
		if !ok {
			return true
		}
		rect, err := parseBounds(v)
		if err != nil {
			walkErr = fmt.Errorf("parse document: element <%s>: %w", n.Data, err)
			return false
		}
		d.bounds[n] = rect
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if d.body == nil {
		return nil, fmt.Errorf("parse document: no body element")
	}
	return d, nil
}

func parseBounds(v string) (Rect, error) {
	fields := strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	if len(fields) != 4 {
		return Rect{}, fmt.Errorf("bounds %q: want 4 values, got %d", v, len(fields))
	}
	var vals [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return Rect{}, fmt.Errorf("bounds %q: %w", v, err)
		}
		vals[i] = n
	}
	return Rect{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// walk visits element nodes in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// wrap returns the stable DOMElement for n.
func (d *Document) wrap(n *html.Node) *DOMElement {
	if el, ok := d.elems[n]; ok {
		return el
	}
	el := &DOMElement{doc: d, node: n}
	d.elems[n] = el
	return el
}

// Body returns the body element.
func (d *Document) Body() *DOMElement {
	return d.wrap(d.body)
}

// ClientSize returns the viewport size. It implements ViewportSource.
func (d *Document) ClientSize() Size {
	return d.size
}

// SetClientSize changes the viewport size.
func (d *Document) SetClientSize(width, height float64) {
	d.size = Size{Width: width, Height: height}
}

// CreateElement creates a detached element. Attach it with AppendChild.
func (d *Document) CreateElement(tag string) *DOMElement {
	n := &html.Node{Type: html.ElementNode, DataAtom: atom.Lookup([]byte(tag)), Data: tag}
	return d.wrap(n)
}

// QuerySelectorAll returns the attached elements matching sel in document
// order.
func (d *Document) QuerySelectorAll(sel string) ([]*DOMElement, error) {
	s, err := cascadia.Compile(sel)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", sel, err)
	}
	return d.matchAll(s), nil
}

func (d *Document) matchAll(s cascadia.Selector) []*DOMElement {
	nodes := s.MatchAll(d.root)
	out := make([]*DOMElement, len(nodes))
	for i, n := range nodes {
		out[i] = d.wrap(n)
	}
	return out
}

// ElementByID returns the attached element with the given id, or nil.
func (d *Document) ElementByID(id string) *DOMElement {
	if id == "" {
		return nil
	}
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if v, ok := attr(n, "id"); ok && v == id {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

// ElementByData returns the first attached element, in document order, whose
// attribute name (or dataset key) equals value, or nil. Values are compared
// verbatim, so ids need no selector escaping.
func (d *Document) ElementByData(name, value string) *DOMElement {
	var found *DOMElement
	walk(d.root, func(n *html.Node) bool {
		el := d.wrap(n)
		if v, ok := el.Data(name); ok && v == value {
			found = el
			return false
		}
		return true
	})
	return found
}

// ElementAt returns the topmost element whose bounds contain (x, y), or nil.
// Later elements in document order are considered on top. Elements that were
// never given bounds are not hit-testable.
func (d *Document) ElementAt(x, y float64) Element {
	var hit *html.Node
	walk(d.root, func(n *html.Node) bool {
		if r, ok := d.bounds[n]; ok && r.Contains(x, y) {
			hit = n
		}
		return true
	})
	if hit == nil {
		return nil
	}
	return d.wrap(hit)
}

// --- Elements ---

// DOMElement is an element of a Document. It implements Element.
type DOMElement struct {
	doc  *Document
	node *html.Node
}

// Tag returns the element's tag name.
func (el *DOMElement) Tag() string {
	return el.node.Data
}

// ID returns the element's id attribute.
func (el *DOMElement) ID() string {
	v, _ := attr(el.node, "id")
	return v
}

// Data returns the value of the named attribute. A dataset key such as
// "bucketId" also matches its attribute "data-bucket-id".
func (el *DOMElement) Data(name string) (string, bool) {
	if v, ok := attr(el.node, name); ok {
		return v, true
	}
	if ds := DatasetAttr(name); ds != name {
		return attr(el.node, ds)
	}
	return "", false
}

// SetAttr sets an attribute, replacing any existing value.
func (el *DOMElement) SetAttr(key, val string) *DOMElement {
	for i := range el.node.Attr {
		if el.node.Attr[i].Namespace == "" && el.node.Attr[i].Key == key {
			el.node.Attr[i].Val = val
			return el
		}
	}
	el.node.Attr = append(el.node.Attr, html.Attribute{Key: key, Val: val})
	return el
}

// RemoveAttr removes an attribute if present.
func (el *DOMElement) RemoveAttr(key string) {
	attrs := el.node.Attr[:0]
	for _, a := range el.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	el.node.Attr = attrs
}

// ParentElement returns the parent element, or nil at the document root or
// when detached.
func (el *DOMElement) ParentElement() Element {
	p := el.node.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil
	}
	return el.doc.wrap(p)
}

// Bounds returns the element's bounding rectangle. Elements without assigned
// bounds report a zero rectangle.
func (el *DOMElement) Bounds() Rect {
	return el.doc.bounds[el.node]
}

// SetBounds assigns the element's bounding rectangle.
func (el *DOMElement) SetBounds(r Rect) *DOMElement {
	el.doc.bounds[el.node] = r
	return el
}

// AppendChild attaches child as the last child of el, detaching it from any
// previous parent first.
func (el *DOMElement) AppendChild(child *DOMElement) *DOMElement {
	if child.node.Parent != nil {
		child.node.Parent.RemoveChild(child.node)
	}
	el.node.AppendChild(child.node)
	return el
}

// Remove detaches el from its parent. Its bounds are kept so it can be
// reattached.
func (el *DOMElement) Remove() {
	if el.node.Parent != nil {
		el.node.Parent.RemoveChild(el.node)
	}
}

// --- Sources ---

// DocumentSources enumerates drop zones and the placeholder from a Document.
// Every call reads the live tree.
type DocumentSources struct {
	doc           *Document
	selector      cascadia.Selector
	bucketAttr    string
	placeholderID string
}

// Sources builds drop zone and placeholder sources for the document. An
// empty selector defaults to matching every element carrying bucketAttr.
func (d *Document) Sources(selector, bucketAttr, placeholderID string) (*DocumentSources, error) {
	if placeholderID == "" {
		return nil, ErrMissingPlaceholderID
	}
	if selector == "" {
		if bucketAttr == "" {
			return nil, ErrMissingBucketSelector
		}
		selector = "[" + bucketAttr + "]"
	}
	s, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", selector, err)
	}
	return &DocumentSources{doc: d, selector: s, bucketAttr: bucketAttr, placeholderID: placeholderID}, nil
}

// DropZones implements DropZoneSource.
func (s *DocumentSources) DropZones() []BucketBounds {
	elems := s.doc.matchAll(s.selector)
	out := make([]BucketBounds, 0, len(elems))
	for _, el := range elems {
		id, ok := dropZoneID(el, s.bucketAttr)
		out = append(out, BucketBounds{ID: id, HasID: ok, Bounds: el.Bounds()})
	}
	return out
}

// Placeholder implements PlaceholderSource.
func (s *DocumentSources) Placeholder() (Rect, bool) {
	el := s.doc.ElementByID(s.placeholderID)
	if el == nil {
		return Rect{}, false
	}
	return el.Bounds(), true
}
