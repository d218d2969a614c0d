package editor

import "testing"

func newSearchEditor(lines ...string) *Editor {
	e := newTestEditor()
	for i, line := range lines {
		e.InsertRow(i, []byte(line), len(line))
	}
	e.cx, e.cy = 0, 0
	e.dirty = 0
	return e
}

func TestFindCallbackFindsMatch(t *testing.T) {
	e := newSearchEditor("apple", "banana pie", "cherry")

	e.FindCallback([]byte("pie"), 'x')

	if e.cy != 1 {
		t.Fatalf("cy = %d, want 1", e.cy)
	}
	if e.cx != 7 {
		t.Fatalf("cx = %d, want 7", e.cx)
	}
}

func TestFindCallbackWrapsAround(t *testing.T) {
	e := newSearchEditor("needle here", "nothing", "nothing else")

	e.FindCallback([]byte("needle"), 'x')
	if e.search.lastMatch != 0 {
		t.Fatalf("first match at row %d, want 0", e.search.lastMatch)
	}

	// Searching forward again from the only match wraps around the
	// whole buffer and lands back on row 0.
	e.FindCallback([]byte("needle"), ARROW_DOWN)
	if e.search.lastMatch != 0 {
		t.Fatalf("wrapped match at row %d, want 0", e.search.lastMatch)
	}
}

func TestFindCallbackRestoresHighlightOnNextCall(t *testing.T) {
	e := newSearchEditor("xx match xx")

	e.FindCallback([]byte("match"), 'x')
	matched := false
	for _, h := range e.row[0].hl {
		if h == HL_MATCH {
			matched = true
		}
	}
	if !matched {
		t.Fatal("expected HL_MATCH to be set on the matched row")
	}

	// A subsequent callback call (simulating another keystroke) must
	// restore the saved highlight before applying a new one. The new
	// query matches at 0..1, so only the old "match" cells (3..7) are
	// checked for a stale HL_MATCH.
	e.FindCallback([]byte("xx"), 'x')
	for _, h := range e.row[0].hl[3:8] {
		if h == HL_MATCH {
			t.Error("stale HL_MATCH from the previous query was not restored")
			break
		}
	}
}

func TestFindCallbackResetsOnEscape(t *testing.T) {
	e := newSearchEditor("abc")
	e.search.lastMatch = 0

	e.FindCallback([]byte("abc"), '\x1b')

	if e.search.lastMatch != -1 {
		t.Errorf("lastMatch = %d, want -1 after escape", e.search.lastMatch)
	}
}
