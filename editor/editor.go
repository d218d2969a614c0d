package editor

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/rs/zerolog"
)

// Editor holds the entire program state: cursor, viewport, the row
// buffer, the active syntax, the undo/redo journal and the collaborators
// (terminal, logger, file watcher) needed to drive one edit session. It
// is an ordinary owned value threaded through methods by pointer — no
// package-level mutable globals hold editor state.
type Editor struct {
	cx, cy            int
	rx                int
	rowOffset         int
	colOffset         int
	screenRows        int
	screenCols        int
	totalRows         int
	row               []editorRow
	dirty             int
	filename          string
	statusMessage     string
	statusMessageTime time.Time
	syntax            *editorSyntax
	mode              int
	quitTimes         int

	undoStack []undoRecord
	redoStack []undoRecord
	search    searchState

	terminal *Terminal
	log      zerolog.Logger
	watch    *fileWatcher
}

// NewEditor constructs an Editor ready for Init. log may be the zero
// value (a disabled logger); callers that care about diagnostics
// should pass one built by NewSessionLogger.
func NewEditor(log zerolog.Logger) *Editor {
	return &Editor{
		terminal: NewTerminal(),
		log:      log,
	}
}

// Init resets all editor state to a fresh empty buffer and probes the
// terminal window size. It must run after raw mode is enabled and
// before the first ProcessKeypress/RefreshScreen call.
func (e *Editor) Init() error {
	e.cx, e.cy = 0, 0
	e.rx = 0
	e.rowOffset = 0
	e.colOffset = 0
	e.totalRows = 0
	e.row = make([]editorRow, 0)
	e.dirty = 0
	e.filename = ""
	e.statusMessage = ""
	e.statusMessageTime = time.Time{}
	e.syntax = nil
	e.mode = EDIT_MODE
	e.quitTimes = QUIT_TIMES
	e.undoStack = nil
	e.redoStack = nil
	e.search = searchState{lastMatch: -1, direction: 1}

	var err error
	e.screenRows, e.screenCols, err = getWindowSize()
	if err != nil {
		return fmt.Errorf("getting window size: %w", err)
	}
	e.screenRows -= 2 // reserve the status bar and message bar
	return nil
}

// Die restores the terminal, prints a diagnostic to stderr and exits
// the process. Used only for startup/teardown failures the editor
// cannot recover from (§7 category 1 and 2).
func (e *Editor) Die(format string, args ...any) {
	e.log.Error().Msgf(format, args...)
	e.RestoreTerminal()
	os.Stdout.Write([]byte(CLEAR_SCREEN))
	os.Stdout.Write([]byte(CURSOR_HOME))
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	if e.watch != nil {
		e.watch.Close()
	}
	os.Exit(1)
}

// ShowError surfaces a non-fatal error in the prompt bar instead of
// terminating (§7 category 3 and 5).
func (e *Editor) ShowError(format string, args ...any) {
	e.log.Warn().Msgf(format, args...)
	e.SetStatusMessage("Warn: "+format, args...)
}

/*** row-buffer operations ***/

// InsertRow inserts a new row at index at holding rowlen bytes from s,
// re-indexing every successor row and bumping dirty.
func (e *Editor) InsertRow(at int, s []byte, rowlen int) {
	if at < 0 || at > e.totalRows {
		return
	}

	newRow := editorRow{
		idx:   at,
		chars: slices.Clone(s[:rowlen]),
	}

	e.row = slices.Insert(e.row, at, newRow)
	for j := at + 1; j < len(e.row); j++ {
		e.row[j].idx = j
	}

	e.row[at].Update(e)
	e.totalRows++
	e.dirty++
}

// DeleteRow removes row at, re-indexing successors and bumping dirty.
func (e *Editor) DeleteRow(at int) {
	if at < 0 || at >= e.totalRows {
		return
	}

	e.row = slices.Delete(e.row, at, at+1)
	for j := at; j < len(e.row); j++ {
		e.row[j].idx = j
	}

	e.totalRows--
	e.dirty++
}

/*** editor operations ***/

// InsertChar inserts c at the cursor, appending an empty sentinel row
// first if the cursor sits past the last line, then records the
// inverse (a delete) onto the undo stack.
func (e *Editor) InsertChar(c int) {
	if e.cy == e.totalRows {
		e.InsertRow(e.totalRows, []byte(""), 0)
	}

	x, y := e.cx, e.cy
	e.row[e.cy].InsertChar(e, e.cx, c)
	e.cx++

	e.pushUndo(undoRecord{kind: undoKindDelete, x: x, y: y, text: []byte{byte(c)}, length: 1})
}

// InsertNewline splits the current row at the cursor (or inserts an
// empty row when the cursor is at column 0). Newline insertion is
// intentionally not recorded on the undo journal (spec §4.8/§9).
func (e *Editor) InsertNewline() {
	if e.cx == 0 {
		e.InsertRow(e.cy, []byte(""), 0)
	} else {
		row := &e.row[e.cy]

		remainingText := make([]byte, len(row.chars)-e.cx)
		copy(remainingText, row.chars[e.cx:])
		e.InsertRow(e.cy+1, remainingText, len(row.chars)-e.cx)

		row = &e.row[e.cy]
		row.chars = row.chars[:e.cx]
		row.Update(e)
	}
	e.cy++
	e.cx = 0
}

// DeleteChar deletes the byte to the left of the cursor, or joins the
// current row onto the previous one at column 0. Only the in-row
// delete records an undo entry (spec §4.8/§9); the row-join is not
// recorded.
func (e *Editor) DeleteChar() {
	if e.cy == e.totalRows {
		return
	}
	if e.cx == 0 && e.cy == 0 {
		return
	}

	row := &e.row[e.cy]
	if e.cx > 0 {
		deleted := row.chars[e.cx-1]
		x, y := e.cx-1, e.cy
		row.deleteChar(e, e.cx-1)
		e.cx--

		e.pushUndo(undoRecord{kind: undoKindInsert, x: x, y: y, text: []byte{deleted}, length: 1})
	} else {
		e.cx = len(e.row[e.cy-1].chars)
		e.row[e.cy-1].appendString(e, row.chars)
		e.DeleteRow(e.cy)
		e.cy--
	}
}
