package editor

import (
	"fmt"
	"os"
	"time"
)

// appendBuffer accumulates one frame's worth of output so it can be
// flushed in a single write, per spec.md §4.4/§6.
type appendBuffer struct {
	b []byte
}

func (ab *appendBuffer) append(s []byte) {
	ab.b = append(ab.b, s...)
}

// Scroll recomputes rx from the cursor's chars-column and adjusts
// rowOffset/colOffset so the cursor stays inside the visible window.
// Must run before every frame.
func (e *Editor) Scroll() {
	e.rx = 0
	if e.cy < e.totalRows {
		e.rx = e.row[e.cy].cxToRx(e.cx)
	}

	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.screenRows {
		e.rowOffset = e.cy - e.screenRows + 1
	}

	if e.rx < e.colOffset {
		e.colOffset = e.rx
	}
	if e.rx >= e.colOffset+e.screenCols {
		e.colOffset = e.rx - e.screenCols + 1
	}
}

// lineNumberGutter renders the dim line-number column for a drawn row,
// or LINENUM_WIDTH spaces for a filler line.
func (e *Editor) lineNumberGutter(abuf *appendBuffer, filerow int, hasRow bool) {
	if !hasRow {
		abuf.append([]byte("     "))
		return
	}
	abuf.append([]byte(COLORS_DIM))
	abuf.append(fmt.Appendf(nil, "%4d ", filerow+1))
	abuf.append(fmt.Appendf(nil, "\x1b[%dm", ANSI_COLOR_DEFAULT))
}

// DrawRows draws the text window: a line-number gutter plus either a
// slice of a row's render/hl, a `~` filler, or the welcome banner on
// an empty buffer.
func (e *Editor) DrawRows(abuf *appendBuffer) {
	for y := range e.screenRows {
		filerow := y + e.rowOffset
		if filerow >= e.totalRows {
			e.lineNumberGutter(abuf, filerow, false)
			if e.totalRows == 0 && y == e.screenRows/3 {
				welcome := "CCode editor -- version " + CCODE_VERSION
				welcomelen := min(len(welcome), e.screenCols)
				padding := (e.screenCols - welcomelen) / 2
				if padding > 0 {
					abuf.append([]byte("~"))
					padding--
				}
				for range padding {
					abuf.append([]byte(" "))
				}
				abuf.append([]byte(welcome[:welcomelen]))
			} else {
				abuf.append([]byte("~"))
			}
		} else {
			e.lineNumberGutter(abuf, filerow, true)
			e.drawRowText(abuf, filerow)
		}

		abuf.append([]byte(CLEAR_LINE))
		abuf.append([]byte("\r\n"))
	}
}

// drawRowText writes the visible slice of one row's render, emitting
// minimal SGR color runs and the caret-letter rendering of control
// bytes.
func (e *Editor) drawRowText(abuf *appendBuffer, filerow int) {
	lineLen := min(max(len(e.row[filerow].render)-e.colOffset, 0), e.screenCols)
	start := e.colOffset
	hl := e.row[filerow].hl
	render := e.row[filerow].render
	currentColor := -1
	currentStyle := 0

	for j := range lineLen {
		c := render[start+j]
		h := hl[start+j]

		if isControl(c) {
			sym := byte('?')
			if c <= 26 {
				sym = c + 'A' - 1
			}
			abuf.append(fmt.Appendf(nil, "\x1b[%dm%c", ANSI_REVERSE, sym))
			if resetCode := getStyleResetCode(ANSI_REVERSE); resetCode != 0 {
				abuf.append(fmt.Appendf(nil, "\x1b[%dm", resetCode))
			}
			if currentColor != -1 {
				abuf.append(fmt.Appendf(nil, "\x1b[%dm", currentColor))
			}
			continue
		}

		if h == HL_NORMAL {
			if currentColor != -1 {
				abuf.append(fmt.Appendf(nil, "\x1b[%dm", ANSI_COLOR_DEFAULT))
				currentColor = -1
			}
			if currentStyle != 0 {
				if resetCode := getStyleResetCode(currentStyle); resetCode != 0 {
					abuf.append(fmt.Appendf(nil, "\x1b[%dm", resetCode))
				}
				currentStyle = 0
			}
			abuf.append([]byte{c})
			continue
		}

		color, style := syntaxToGraphics(h)

		if currentStyle != style {
			if currentStyle != 0 {
				if resetCode := getStyleResetCode(currentStyle); resetCode != 0 {
					abuf.append(fmt.Appendf(nil, "\x1b[%dm", resetCode))
				}
			}
			if style != 0 {
				abuf.append(fmt.Appendf(nil, "\x1b[%dm", style))
			}
			currentStyle = style
		}

		if color != currentColor {
			currentColor = color
			abuf.append(fmt.Appendf(nil, "\x1b[%dm", color))
		}
		abuf.append([]byte{c})

		// HL_MATCH never stays sticky across cells: reset immediately
		// after painting so a control byte or plain run right after a
		// match is never drawn inverted by accident.
		if h == HL_MATCH {
			if resetCode := getStyleResetCode(style); resetCode != 0 {
				abuf.append(fmt.Appendf(nil, "\x1b[%dm", resetCode))
			}
			currentStyle = 0
		}
	}

	abuf.append(fmt.Appendf(nil, "\x1b[%dm", ANSI_COLOR_DEFAULT))
	if currentStyle != 0 {
		if resetCode := getStyleResetCode(currentStyle); resetCode != 0 {
			abuf.append(fmt.Appendf(nil, "\x1b[%dm", resetCode))
		}
	}
}

// DrawStatusBar draws the inverted status line: filename/dirty state
// left-justified, syntax/cursor-position right-justified.
func (e *Editor) DrawStatusBar(abuf *appendBuffer) {
	abuf.append([]byte(COLORS_INVERT))

	filename := "[No Name]"
	if e.filename != "" {
		filename = e.filename
		if len(filename) > 20 {
			filename = filename[:20]
		}
	}
	dirtyFlag := ""
	if e.dirty > 0 {
		dirtyFlag = " (modified)"
	}

	var status string
	switch e.mode {
	case EXPLORER_MODE:
		status = fmt.Sprintf("Explorer - %s%s", filename, dirtyFlag)
	case SEARCH_MODE:
		status = fmt.Sprintf("Searching - %s%s", filename, dirtyFlag)
	case SAVE_MODE:
		status = fmt.Sprintf("Saving - %s%s", filename, dirtyFlag)
	default:
		status = fmt.Sprintf("%.20s - %d lines%s", filename, e.totalRows, dirtyFlag)
	}
	statusLen := min(len(status), e.screenCols)

	filetype := "no ft"
	if e.syntax != nil {
		filetype = e.syntax.filetype
	}
	rstatus := fmt.Sprintf("%s | %d/%d", filetype, e.cy+1, e.totalRows)
	rstatusLen := len(rstatus)

	abuf.append([]byte(status[:statusLen]))

	for statusLen < e.screenCols {
		if e.screenCols-statusLen == rstatusLen {
			abuf.append([]byte(rstatus))
			break
		}
		abuf.append([]byte(" "))
		statusLen++
	}

	abuf.append([]byte(COLORS_RESET))
	abuf.append([]byte("\r\n"))
}

// DrawMessageBar writes the prompt-bar status message while it is
// younger than STATUS_MESSAGE_TIMEOUT seconds.
func (e *Editor) DrawMessageBar(abuf *appendBuffer) {
	abuf.append([]byte(CLEAR_LINE))
	messageLen := min(len(e.statusMessage), e.screenCols)
	if time.Since(e.statusMessageTime) < STATUS_MESSAGE_TIMEOUT*time.Second {
		abuf.append([]byte(e.statusMessage[:messageLen]))
	}
}

// RefreshScreen assembles and flushes one full frame: scroll, hide
// cursor, home, rows, status bar, message bar, place cursor, show
// cursor. Drains any pending file-watch notification first so an
// external-change warning can appear in this frame's message bar.
func (e *Editor) RefreshScreen() {
	e.drainWatch()
	e.Scroll()

	var abuf appendBuffer

	abuf.append([]byte(CURSOR_HIDE))
	abuf.append([]byte(CURSOR_HOME))

	e.DrawRows(&abuf)
	e.DrawStatusBar(&abuf)
	e.DrawMessageBar(&abuf)

	abuf.append(fmt.Appendf(nil, CURSOR_POSITION_FORMAT, e.cy-e.rowOffset+1, e.rx-e.colOffset+1+LINENUM_WIDTH))

	abuf.append([]byte(CURSOR_SHOW))

	os.Stdout.Write(abuf.b)
}

// SetStatusMessage sets the prompt-bar message and timestamps it.
func (e *Editor) SetStatusMessage(format string, args ...any) {
	e.statusMessage = fmt.Sprintf(format, args...)
	e.statusMessageTime = time.Now()
}

// Redraw re-probes the window size (e.g. after a SIGWINCH-equivalent
// manual refresh) and repaints.
func (e *Editor) Redraw() {
	rows, cols, err := getWindowSize()
	if err != nil {
		e.ShowError("%v", err)
	} else {
		e.screenRows, e.screenCols = rows-2, cols
	}
	e.RefreshScreen()
}
