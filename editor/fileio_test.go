package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newIOTestEditor(t *testing.T) *Editor {
	t.Helper()
	e := newTestEditor()
	e.log = zerolog.Nop()
	return e
}

func TestOpenSetsDirtyToZero(t *testing.T) {
	e := newIOTestEditor(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	if err := os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := e.Open(path); err != nil {
		t.Fatalf("Open: %v", err)
	}

	if e.dirty != 0 {
		t.Errorf("dirty = %d, want 0 immediately after Open", e.dirty)
	}
	if e.totalRows != 3 {
		t.Errorf("totalRows = %d, want 3", e.totalRows)
	}
	if e.syntax == nil || e.syntax.filetype != "go" {
		t.Errorf("expected go syntax selected, got %+v", e.syntax)
	}
	e.watch.Close()
}

func TestOpenMissingFileReturnsError(t *testing.T) {
	e := newIOTestEditor(t)

	err := e.Open(filepath.Join(t.TempDir(), "does-not-exist.txt"))
	if err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}

func TestRowsToStringRoundTrip(t *testing.T) {
	e := newIOTestEditor(t)
	e.InsertRow(0, []byte("line one"), 8)
	e.InsertRow(1, []byte("line two"), 8)

	buf, length := e.RowsToString()
	if length != len(buf) {
		t.Errorf("reported length %d != actual buffer length %d", length, len(buf))
	}

	want := "line one\nline two\n"
	if got := string(buf); got != want {
		t.Errorf("RowsToString = %q, want %q", got, want)
	}
}

func TestSaveWritesExactLengthAndClearsDirty(t *testing.T) {
	e := newIOTestEditor(t)
	dir := t.TempDir()
	e.filename = filepath.Join(dir, "out.txt")
	e.InsertRow(0, []byte("hello"), 5)
	e.dirty = 3

	e.Save()

	if e.dirty != 0 {
		t.Errorf("dirty = %d, want 0 after save", e.dirty)
	}

	contents, err := os.ReadFile(e.filename)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(contents) != "hello\n" {
		t.Errorf("saved contents = %q, want %q", string(contents), "hello\n")
	}
	e.watch.Close()
}

func TestSaveTruncatesShorterContent(t *testing.T) {
	e := newIOTestEditor(t)
	dir := t.TempDir()
	e.filename = filepath.Join(dir, "shrink.txt")

	e.InsertRow(0, []byte("a long first line"), 17)
	e.Save()
	e.watch.Close()

	e.row = e.row[:0]
	e.totalRows = 0
	e.InsertRow(0, []byte("x"), 1)
	e.Save()
	e.watch.Close()

	contents, err := os.ReadFile(e.filename)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(contents) != "x\n" {
		t.Errorf("saved contents = %q, want %q (stale bytes from the longer write must be truncated away)", string(contents), "x\n")
	}
}
