package draggable

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const boardHTML = `<!DOCTYPE html>
<html><body>
<div id="board" data-bounds="0 0 800 600">
  <div class="bucket" data-bucket-id="todo" data-bounds="0 0 200 600"></div>
  <div class="bucket" data-bucket-id="done" data-bounds="600,0,200,600"></div>
  <div class="bucket" data-bounds="300 500 100 100"></div>
  <div class="card" data-draggable-id="card-1" data-bounds="80 90 50 50">
    <span data-bounds="95 95 20 10">Card</span>
  </div>
</div>
</body></html>`

func parseBoard(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(boardHTML), "data-bounds", 800, 600)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return doc
}

func TestParseDocument_Bounds(t *testing.T) {
	doc := parseBoard(t)
	cards, err := doc.QuerySelectorAll(".card")
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 1 {
		t.Fatalf("expected 1 card, got %d", len(cards))
	}
	if got, want := cards[0].Bounds(), (Rect{X: 80, Y: 90, Width: 50, Height: 50}); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
	if got := doc.ClientSize(); got != (Size{Width: 800, Height: 600}) {
		t.Errorf("ClientSize() = %v", got)
	}
}

func TestParseDocument_InvalidBounds(t *testing.T) {
	tests := []string{
		`<div data-bounds="1 2 3"></div>`,
		`<div data-bounds="a b c d"></div>`,
	}
	for _, src := range tests {
		if _, err := ParseDocument(strings.NewReader(src), "data-bounds", 0, 0); err == nil {
			t.Errorf("expected error for %s", src)
		}
	}
}

func TestQuerySelectorAll_DocumentOrder(t *testing.T) {
	doc := parseBoard(t)
	buckets, err := doc.QuerySelectorAll(".bucket")
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, b := range buckets {
		v, _ := b.Data("data-bucket-id")
		ids = append(ids, v)
	}
	if diff := cmp.Diff([]string{"todo", "done", ""}, ids); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestQuerySelectorAll_InvalidSelector(t *testing.T) {
	doc := parseBoard(t)
	if _, err := doc.QuerySelectorAll("[[["); err == nil {
		t.Error("expected error for invalid selector")
	}
}

func TestElementAt(t *testing.T) {
	doc := parseBoard(t)

	hit := doc.ElementAt(100, 100)
	el, ok := hit.(*DOMElement)
	if !ok || el.Tag() != "span" {
		t.Fatalf("ElementAt(100,100) = %v, want span", hit)
	}
	if got := doc.ElementAt(-5, -5); got != nil {
		t.Errorf("ElementAt outside = %v, want nil", got)
	}
}

func TestDOMElement_ParentChain(t *testing.T) {
	doc := parseBoard(t)
	span := doc.ElementAt(100, 100)

	if id, ok := draggableID(span, "data-draggable-id"); !ok || id != "card-1" {
		t.Errorf("draggableID(span) = %q, %v", id, ok)
	}

	depth := 0
	for el := span; el != nil; el = el.ParentElement() {
		depth++
	}
	// span > card > board > body > html
	if depth != 5 {
		t.Errorf("ancestor depth = %d, want 5", depth)
	}
}

func TestDOMElement_Mutation(t *testing.T) {
	doc := NewDocument(640, 480)
	el := doc.CreateElement("div").SetAttr("data-x", "1").SetBounds(Rect{Width: 10, Height: 10})
	if el.ParentElement() != nil {
		t.Error("detached element should have no parent")
	}

	doc.Body().AppendChild(el)
	if el.ParentElement() == nil {
		t.Fatal("attached element should have a parent")
	}
	if doc.ElementAt(5, 5) == nil {
		t.Error("attached element should be hit-testable")
	}

	el.SetAttr("data-x", "2")
	if v, _ := el.Data("data-x"); v != "2" {
		t.Errorf("data-x = %q, want 2", v)
	}
	el.RemoveAttr("data-x")
	if _, ok := el.Data("data-x"); ok {
		t.Error("data-x should be removed")
	}

	el.Remove()
	if doc.ElementAt(5, 5) != nil {
		t.Error("removed element should not be hit-testable")
	}
}

func TestDOMElement_DataAcceptsDatasetKeys(t *testing.T) {
	doc := NewDocument(640, 480)
	el := doc.CreateElement("section").SetAttr("data-bucket-id", "todo").SetAttr("id", "col")

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"data-bucket-id", "todo", true},
		{"bucketId", "todo", true},
		{"id", "col", true},
		{"draggableId", "", false},
	}
	for _, tt := range tests {
		if got, ok := el.Data(tt.name); got != tt.want || ok != tt.wantOK {
			t.Errorf("Data(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestElementByData(t *testing.T) {
	doc := parseBoard(t)
	if el := doc.ElementByData("draggableId", "card-1"); el == nil || el.Tag() != "div" {
		t.Errorf("ElementByData(card-1) = %v, want the card div", el)
	}
	if el := doc.ElementByData("data-bucket-id", "done"); el == nil {
		t.Error("ElementByData(done) = nil")
	}
	if el := doc.ElementByData("draggableId", "missing"); el != nil {
		t.Errorf("ElementByData(missing) = %v, want nil", el)
	}

	// Ids are compared verbatim, whatever characters they contain.
	odd := `a\"b ü]`
	card := doc.CreateElement("div").SetAttr("data-draggable-id", odd)
	doc.Body().AppendChild(card)
	if got := doc.ElementByData("draggableId", odd); got != card {
		t.Errorf("ElementByData(%q) = %v, want the new card", odd, got)
	}
	card.Remove()
	if got := doc.ElementByData("draggableId", odd); got != nil {
		t.Error("detached elements should not be found")
	}
}

func TestDocumentSources(t *testing.T) {
	doc := parseBoard(t)
	src, err := doc.Sources(".bucket", "data-bucket-id", "placeholder")
	if err != nil {
		t.Fatal(err)
	}

	want := []BucketBounds{
		{ID: "todo", HasID: true, Bounds: Rect{X: 0, Y: 0, Width: 200, Height: 600}},
		{ID: "done", HasID: true, Bounds: Rect{X: 600, Y: 0, Width: 200, Height: 600}},
		{Bounds: Rect{X: 300, Y: 500, Width: 100, Height: 100}},
	}
	if diff := cmp.Diff(want, src.DropZones()); diff != "" {
		t.Errorf("drop zones mismatch (-want +got):\n%s", diff)
	}

	if _, ok := src.Placeholder(); ok {
		t.Error("placeholder should be absent")
	}
	ph := doc.CreateElement("div").SetAttr("id", "placeholder").SetBounds(Rect{X: 1, Y: 2, Width: 3, Height: 4})
	doc.Body().AppendChild(ph)
	if r, ok := src.Placeholder(); !ok || r != (Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Errorf("Placeholder() = %v, %v", r, ok)
	}
}

func TestDocumentSources_Live(t *testing.T) {
	doc := parseBoard(t)
	src, err := doc.Sources("", "data-bucket-id", "placeholder")
	if err != nil {
		t.Fatal(err)
	}
	// The default selector matches elements carrying the bucket attribute.
	if n := len(src.DropZones()); n != 2 {
		t.Fatalf("expected 2 drop zones, got %d", n)
	}

	extra := doc.CreateElement("div").SetAttr("data-bucket-id", "later")
	doc.Body().AppendChild(extra)
	if n := len(src.DropZones()); n != 3 {
		t.Errorf("expected 3 drop zones after insert, got %d", n)
	}
	extra.Remove()
	if n := len(src.DropZones()); n != 2 {
		t.Errorf("expected 2 drop zones after removal, got %d", n)
	}
}

func TestDocumentSources_Errors(t *testing.T) {
	doc := NewDocument(0, 0)
	if _, err := doc.Sources(".b", "", ""); !errors.Is(err, ErrMissingPlaceholderID) {
		t.Errorf("error = %v, want ErrMissingPlaceholderID", err)
	}
	if _, err := doc.Sources("", "", "ph"); !errors.Is(err, ErrMissingBucketSelector) {
		t.Errorf("error = %v, want ErrMissingBucketSelector", err)
	}
	if _, err := doc.Sources("[[[", "", "ph"); err == nil {
		t.Error("expected error for invalid selector")
	}
}

func TestEngineWithDocument(t *testing.T) {
	doc := parseBoard(t)
	ph := doc.CreateElement("div").SetAttr("id", "placeholder").SetBounds(Rect{X: 0, Y: 0, Width: 50, Height: 50})
	doc.Body().AppendChild(ph)

	var moves []DragMove
	var starts []DragStart
	e, err := New(Options{
		DraggableDataAttr:   "draggableId",
		BucketDataAttr:      "bucketId",
		BucketQuerySelector: ".bucket",
		PlaceholderID:       "placeholder",
		Document:            doc,
		On: Callbacks{
			DragStart: func(ev DragStart) { starts = append(starts, ev) },
			DragMove:  func(ev DragMove) { moves = append(moves, ev) },
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	src := NewInjectSource()
	if err := e.Attach(src); err != nil {
		t.Fatal(err)
	}
	src.InjectPress(doc.ElementAt(100, 100), 100, 100)
	src.InjectMove(doc.ElementAt(103, 101), 103, 101)
	src.Flush()

	if len(starts) != 1 || starts[0].DraggableID != "card-1" || starts[0].Point != (Point{83, 91}) {
		t.Errorf("starts = %+v", starts)
	}
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	if got := len(moves[0].BucketBounds); got != 3 {
		t.Errorf("expected 3 bucket bounds, got %d", got)
	}

	// The caller moves the placeholder; the next move reports it live.
	ph.SetBounds(Rect{X: 610, Y: 10, Width: 50, Height: 50})
	src.InjectMove(nil, 700, 100)
	src.Flush()
	over := moves[len(moves)-1].Overlapping()
	if len(over) != 1 || over[0].ID != "done" {
		t.Errorf("Overlapping() = %+v, want done", over)
	}
}

func TestNew_DocumentErrors(t *testing.T) {
	doc := NewDocument(0, 0)
	_, err := New(Options{DraggableDataAttr: "d", Document: doc, BucketQuerySelector: ".b"})
	if !errors.Is(err, ErrMissingPlaceholderID) {
		t.Errorf("error = %v, want ErrMissingPlaceholderID", err)
	}
}
