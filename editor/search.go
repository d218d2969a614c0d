package editor

import "bytes"

// searchState holds the fields the C original kept as function-local
// statics across calls to the find callback: the last matched row, the
// scan direction, and the single saved highlight run restored before
// painting the next match. Promoted onto Editor per spec.md §9.
type searchState struct {
	lastMatch   int
	direction   int
	savedLine   int
	savedHl     []int
	savedCx     int
	savedCy     int
	savedColOff int
	savedRowOff int
}

// FindCallback is invoked on every keypress of the search prompt. It
// restores the previous match's highlight, updates direction from
// arrow keys (resetting lastMatch on any other key), then scans at
// most totalRows rows starting from lastMatch+direction, wrapping, for
// the first row whose render contains query.
func (e *Editor) FindCallback(query []byte, key int) {
	if e.search.savedHl != nil {
		copy(e.row[e.search.savedLine].hl, e.search.savedHl)
		e.search.savedHl = nil
	}

	switch key {
	case '\r', '\x1b':
		e.search.lastMatch = -1
		e.search.direction = 1
		return
	case ARROW_RIGHT, ARROW_DOWN:
		e.search.direction = 1
	case ARROW_LEFT, ARROW_UP:
		e.search.direction = -1
	default:
		e.search.lastMatch = -1
		e.search.direction = 1
	}

	if e.search.lastMatch == -1 {
		e.search.direction = 1
	}
	current := e.search.lastMatch

	for range e.totalRows {
		current += e.search.direction
		if current == -1 {
			current = e.totalRows - 1
		} else if current == e.totalRows {
			current = 0
		}

		row := &e.row[current]
		match := bytes.Index(row.render, query)
		if match != -1 {
			e.search.lastMatch = current
			e.cy = current
			e.cx = row.rxToCx(match)
			e.rowOffset = e.totalRows // forces Scroll to bring the match row to the top of the window

			e.search.savedLine = current
			e.search.savedHl = make([]int, len(row.hl))
			copy(e.search.savedHl, row.hl)
			for k := match; k < match+len(query) && k < len(row.hl); k++ {
				row.hl[k] = HL_MATCH
			}
			break
		}
	}
}

// Find snapshots the cursor/viewport, runs the search prompt, and
// restores the snapshot on cancel (ESC) while keeping the new position
// on commit (Enter).
func (e *Editor) Find() {
	e.search.savedCx = e.cx
	e.search.savedCy = e.cy
	e.search.savedColOff = e.colOffset
	e.search.savedRowOff = e.rowOffset

	e.mode = SEARCH_MODE
	query := e.Prompt("Search: %s (Use ESC/Arrows/Enter)", e.FindCallback)
	e.mode = EDIT_MODE

	if query == "" {
		e.cx = e.search.savedCx
		e.cy = e.search.savedCy
		e.colOffset = e.search.savedColOff
		e.rowOffset = e.search.savedRowOff
	}
}
