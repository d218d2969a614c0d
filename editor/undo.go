package editor

// undoKind tags an undo/redo record with the action that replays it.
// The name describes what applying the record does, not what the
// original edit was: a record pushed by InsertChar is tagged
// undoKindDelete because *undoing* an insert means deleting, grounded
// on the Action{actionType: "insert"|"delete"} tagged variant used by
// the pack's other kilo-family ports for the same journal.
type undoKind int

const (
	undoKindDelete undoKind = iota // replay by deleting length bytes at (x, y)
	undoKindInsert                 // replay by inserting text at (x, y)
)

// undoRecord is one journal entry: a small owned payload plus the
// position it applies to.
type undoRecord struct {
	kind   undoKind
	x, y   int
	text   []byte
	length int
}

// pushUndo appends rec to the undo stack, evicting the oldest entry
// once the stack is at MAX_UNDO capacity, and clears the redo stack —
// any new edit invalidates the previously undone future.
func (e *Editor) pushUndo(rec undoRecord) {
	if len(e.undoStack) == MAX_UNDO {
		e.undoStack = e.undoStack[1:]
	}
	e.undoStack = append(e.undoStack, rec)
	e.redoStack = e.redoStack[:0]
}

// applyInsert inserts text at (x, y), creating a sentinel empty row
// first if y is past the last line, and leaves the cursor just past
// the inserted text. Used by both Undo (for undoKindInsert records)
// and Redo (for undoKindDelete records) — it never itself pushes an
// undo entry.
func (e *Editor) applyInsert(x, y int, text []byte) {
	if y == e.totalRows {
		e.InsertRow(e.totalRows, []byte(""), 0)
	}
	row := &e.row[y]
	for i, b := range text {
		row.InsertChar(e, x+i, int(b))
	}
	e.cy = y
	e.cx = x + len(text)
}

// applyDelete deletes n bytes starting at (x, y) and leaves the cursor
// at x.
func (e *Editor) applyDelete(x, y, n int) {
	row := &e.row[y]
	for range n {
		row.deleteChar(e, x)
	}
	e.cy = y
	e.cx = x
}

// Undo pops the most recent undo record, replays its inverse, and
// pushes it onto the redo stack. A no-op on an empty stack.
func (e *Editor) Undo() {
	if len(e.undoStack) == 0 {
		return
	}
	rec := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]

	switch rec.kind {
	case undoKindInsert:
		e.applyInsert(rec.x, rec.y, rec.text)
	case undoKindDelete:
		e.applyDelete(rec.x, rec.y, rec.length)
	}

	e.redoStack = append(e.redoStack, rec)
}

// Redo pops the most recently undone record, replays the original
// edit it describes, and pushes it back onto the undo stack. A no-op
// on an empty redo stack.
func (e *Editor) Redo() {
	if len(e.redoStack) == 0 {
		return
	}
	rec := e.redoStack[len(e.redoStack)-1]
	e.redoStack = e.redoStack[:len(e.redoStack)-1]

	switch rec.kind {
	case undoKindDelete:
		e.applyInsert(rec.x, rec.y, rec.text)
	case undoKindInsert:
		e.applyDelete(rec.x, rec.y, rec.length)
	}

	if len(e.undoStack) == MAX_UNDO {
		e.undoStack = e.undoStack[1:]
	}
	e.undoStack = append(e.undoStack, rec)
}
