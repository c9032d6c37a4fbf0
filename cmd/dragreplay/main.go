// Command dragreplay replays a scripted pointer gesture against an HTML
// fixture and prints the resulting drag events as JSON lines.
//
//	dragreplay --html board.html --script drag.json --config draggable.yaml
//
// Element bounds come from an attribute on each element (data-bounds by
// default) holding "left top width height". The replay acts as a minimal
// caller: it creates the placeholder on dragStart, moves it to each reported
// placeholder point and removes it on dragStop.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
