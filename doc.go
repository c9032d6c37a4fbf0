// Package draggable recognizes pointer drag gestures and reports them as
// dragStart, dragMove and dragStop callbacks.
//
// The package does not move anything itself. It tells the caller when a drag
// begins on an element marked draggable, where a placeholder should be drawn
// on every move, which drop zones ("buckets") exist and where they are, and
// when the gesture ends. Rendering, drop acceptance and reordering are the
// caller's job.
//
// # Quick start
//
// Build a [Document] (or implement [Element] and the source interfaces
// yourself), create an [Engine] and attach it to an event source:
//
//	doc := draggable.NewDocument(640, 480)
//	// ... append elements carrying data-draggable-id and data-bucket-id ...
//
//	engine, err := draggable.New(draggable.Options{
//		DraggableDataAttr: "draggableId",
//		BucketDataAttr:    "bucketId",
//		PlaceholderID:     "drag-placeholder",
//		Document:          doc,
//		On: draggable.Callbacks{
//			DragStart: func(ev draggable.DragStart) { /* create the placeholder */ },
//			DragMove:  func(ev draggable.DragMove) { /* move it to ev.Placeholder.Point */ },
//			DragStop:  func() { /* drop and clean up */ },
//		},
//	})
//	if err != nil {
//		return err
//	}
//	src := draggable.NewEbitenSource(doc)
//	if err := engine.Attach(src); err != nil {
//		return err
//	}
//
// Then call src.Update from your [ebiten.Game] Update.
//
// # Gesture states
//
// The engine is always in one of three states. A press on a draggable element
// (or any descendant of one) moves it from Idle to Pressed and records the
// press offset: the pointer's distance from the draggable's top-left corner,
// plus the configured mouse or touch bias. The first move that travels at
// least the threshold (2 pixels by default) along either axis confirms the
// drag, moves it to Dragging and fires DragStart. Every qualifying move then
// fires DragMove, as long as the placeholder element exists. A release
// returns to Idle.
//
// Moves that stay under the threshold are ignored completely: no callback
// fires and the last recorded point is left alone, so small jitter
// accumulates until it crosses the threshold.
//
// # Release behavior
//
// With the default [ReleaseFaithful] mode, DragStop fires whenever a release
// arrives and no press candidate is recorded. Confirming a drag clears the
// candidate, so every drag ends with DragStop, but a press released before
// its first qualifying move does not fire it. A release with no press at all
// does. Set [Options.ReleaseMode] to [ReleaseAfterDrag] to fire DragStop only
// when a confirmed drag ends.
//
// # Hosts
//
// Events reach the engine through an [EventSource]:
//
//   - [EbitenSource] polls Ebitengine mouse and touch input each tick.
//   - [InjectSource] queues synthetic events for tests and headless replay.
//   - [TestRunner] drives an InjectSource from a JSON gesture script.
//
// Each delivers events one at a time. An Engine is not safe for concurrent
// use.
//
// # Document
//
// [Document] is a small element tree built on golang.org/x/net/html. Drop
// zones are found with a CSS selector through cascadia, and the placeholder
// by id, on every qualifying move. [ParseDocument] loads a fixture from HTML
// whose elements carry their bounds in an attribute.
//
// # After the drop
//
// [SettleTarget] picks where a dropped placeholder should rest and [Settle]
// tweens it there with gween.
package draggable
