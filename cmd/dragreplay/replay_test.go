package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

const fixtureHTML = `<html><body>
<div class="bucket" data-bucket-id="todo" data-bounds="0 0 200 600"></div>
<div class="bucket" data-bucket-id="done" data-bounds="600 0 200 600"></div>
<div data-draggable-id="card-1" data-bounds="80 90 50 50"><span data-bounds="95 95 20 10">Card</span></div>
</body></html>`

const fixtureScript = `{"steps": [
	{"action": "mark", "label": "begin"},
	{"action": "press", "x": 100, "y": 100},
	{"action": "move", "x": 101, "y": 101},
	{"action": "move", "x": 400, "y": 100},
	{"action": "move", "x": 700, "y": 100},
	{"action": "move", "x": 710, "y": 100},
	{"action": "release", "x": 710, "y": 100}
]}`

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func runReplay(t *testing.T, args ...string) ([]map[string]any, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()

	var lines []map[string]any
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var m map[string]any
		if jerr := json.Unmarshal(sc.Bytes(), &m); jerr != nil {
			t.Fatalf("invalid output line %q: %v", sc.Text(), jerr)
		}
		lines = append(lines, m)
	}
	return lines, err
}

func events(lines []map[string]any) []string {
	var out []string
	for _, l := range lines {
		out = append(out, l["event"].(string))
	}
	return out
}

func TestReplay_EventStream(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"board.html": fixtureHTML, "drag.json": fixtureScript})
	lines, err := runReplay(t,
		"--html", filepath.Join(dir, "board.html"),
		"--script", filepath.Join(dir, "drag.json"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{"mark", "dragStart", "dragMove", "dragMove", "dragMove", "dragStop"}
	if diff := cmp.Diff(want, events(lines)); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	if got := lines[1]["draggableId"]; got != "card-1" {
		t.Errorf("draggableId = %v, want card-1", got)
	}
	// Bounds are read before the placeholder is moved, so overlap lags one
	// move behind the pointer.
	if _, ok := lines[3]["overlaps"]; ok {
		t.Errorf("move to 700 overlaps = %v, want none", lines[3]["overlaps"])
	}
	last := lines[4]
	overlaps, _ := last["overlaps"].([]any)
	if len(overlaps) != 1 || overlaps[0] != "done" {
		t.Errorf("overlaps = %v, want [done]", last["overlaps"])
	}
}

func TestReplay_ConfigFile(t *testing.T) {
	dir := writeFixtures(t, map[string]string{
		"board.html": fixtureHTML,
		"drag.json":  fixtureScript,
		"cfg.yaml": `
release_mode: after-drag
threshold: 1000
placeholder_id: ghost
`,
	})
	lines, err := runReplay(t,
		"--html", filepath.Join(dir, "board.html"),
		"--script", filepath.Join(dir, "drag.json"),
		"--config", filepath.Join(dir, "cfg.yaml"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// With a 1000px threshold no move qualifies after the press, and
	// after-drag mode suppresses the stop.
	if diff := cmp.Diff([]string{"mark"}, events(lines)); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestReplay_MissingFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := runReplay(t,
		"--html", filepath.Join(dir, "missing.html"),
		"--script", filepath.Join(dir, "missing.json"))
	if err == nil {
		t.Error("expected error for missing fixture")
	}
}

func TestReplay_RequiresFlags(t *testing.T) {
	if _, err := runReplay(t); err == nil {
		t.Error("expected error without --html and --script")
	}
}

func TestConfig_ReleaseMode(t *testing.T) {
	v := viper.New()
	cfg, err := loadConfig(v, "")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DraggableDataAttr != "draggableId" || cfg.BoundsAttr != "data-bounds" || !cfg.Follow {
		t.Errorf("defaults not applied: %+v", cfg)
	}

	cfg.ReleaseMode = "sometimes"
	if _, err := cfg.options(); !errors.Is(err, errReleaseMode) {
		t.Errorf("error = %v, want errReleaseMode", err)
	}
}

func TestConfig_Offsets(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"cfg.json": `{"offsets": {"mouse": {"x": 1, "y": 2}, "touch": {"x": -3, "y": 40}}}`})
	cfg, err := loadConfig(viper.New(), filepath.Join(dir, "cfg.json"))
	if err != nil {
		t.Fatal(err)
	}
	opts, err := cfg.options()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Offsets.Mouse.X != 1 || opts.Offsets.Mouse.Y != 2 || opts.Offsets.Touch.X != -3 || opts.Offsets.Touch.Y != 40 {
		t.Errorf("offsets = %+v", opts.Offsets)
	}
}

func TestReplay_LogFile(t *testing.T) {
	dir := writeFixtures(t, map[string]string{"board.html": fixtureHTML, "drag.json": fixtureScript})
	logFile := filepath.Join(dir, "replay.log")
	if _, err := runReplay(t,
		"--html", filepath.Join(dir, "board.html"),
		"--script", filepath.Join(dir, "drag.json"),
		"--log-file", logFile); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	var msgs []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		var entry struct {
			Level  string `json:"level"`
			Logger string `json:"logger"`
			Msg    string `json:"msg"`
		}
		if err := json.Unmarshal(sc.Bytes(), &entry); err != nil {
			t.Fatalf("log line %q is not JSON: %v", sc.Text(), err)
		}
		if entry.Logger != "dragreplay" {
			t.Errorf("logger = %q, want dragreplay", entry.Logger)
		}
		msgs = append(msgs, entry.Msg)
	}
	want := []string{"press", "drag confirmed", "release", "replay finished"}
	if diff := cmp.Diff(want, msgs); diff != "" {
		t.Errorf("log messages mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	if _, _, err := newLogger(logConfig{Level: "loud"}, nil); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNewLogger_NoSinks(t *testing.T) {
	logger, closeFn, err := newLogger(logConfig{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("logger without sinks should be a no-op")
	}
}

func TestReplay_PlaceholderSizedForUnusualID(t *testing.T) {
	board := `<html><body>
<div data-bucket-id="done" data-bounds="600 0 200 600"></div>
<div data-draggable-id='card "7"\ü' data-bounds="80 90 50 40"></div>
</body></html>`
	dir := writeFixtures(t, map[string]string{"board.html": board, "drag.json": fixtureScript})
	lines, err := runReplay(t,
		"--html", filepath.Join(dir, "board.html"),
		"--script", filepath.Join(dir, "drag.json"))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := lines[1]["draggableId"]; got != `card "7"\ü` {
		t.Fatalf("draggableId = %v", got)
	}
	ph, _ := lines[2]["placeholder"].(map[string]any)
	if ph["Width"] != 50.0 || ph["Height"] != 40.0 {
		t.Errorf("placeholder = %v, want the card's 50x40 size", ph)
	}
}
