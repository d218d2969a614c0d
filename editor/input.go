package editor

import (
	"os"
)

// Prompt runs the modal single-line input loop: format (with a %s hole
// for the growing buffer) is shown in the status line and repainted on
// every keypress. ESC cancels and returns "". Enter with a nonempty
// buffer commits. callback, if non-nil, is invoked after every
// keypress including the terminating one, so search can move the
// cursor live as the query grows.
func (e *Editor) Prompt(prompt string, callback func([]byte, int)) string {
	bufSize := 128
	buf := make([]byte, 0, bufSize)

	for {
		e.SetStatusMessage(prompt, string(buf))
		e.RefreshScreen()

		key, err := readKey()
		if err != nil {
			e.ShowError("%v", err)
			continue
		}

		switch key {
		case DELETE_KEY, BACKSPACE, withControlKey('h'):
			if len(buf) != 0 {
				buf = buf[:len(buf)-1]
			}

		case '\x1b':
			e.SetStatusMessage("")
			if callback != nil {
				callback(buf, key)
			}
			return ""

		case '\r':
			if len(buf) != 0 {
				e.SetStatusMessage("")
				if callback != nil {
					callback(buf, key)
				}
				return string(buf)
			}

		default:
			if !isControl(byte(key)) && key < 128 {
				if len(buf) == bufSize-1 {
					bufSize *= 2
					newBuf := make([]byte, len(buf), bufSize)
					copy(newBuf, buf)
					buf = newBuf
				}
				buf = append(buf, byte(key))
			}
		}
		if callback != nil {
			callback(buf, key)
		}
	}
}

// MoveCursor applies one arrow-key step, wrapping left-at-column-0 to
// the end of the previous row and right-at-end to the start of the
// next, then clamps cx to the landing row's size.
func (e *Editor) MoveCursor(key int) {
	var row *editorRow
	if e.cy < e.totalRows {
		row = &e.row[e.cy]
	}

	switch key {
	case ARROW_LEFT:
		if e.cx != 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = len(e.row[e.cy].chars)
		}
	case ARROW_RIGHT:
		if row != nil && e.cx < len(row.chars) {
			e.cx++
		} else if row != nil && e.cx == len(row.chars) {
			e.cy++
			e.cx = 0
		}
	case ARROW_UP:
		if e.cy != 0 {
			e.cy--
		}
	case ARROW_DOWN:
		if e.cy < e.totalRows {
			e.cy++
		}
	}

	rowlen := 0
	if e.cy < e.totalRows {
		rowlen = len(e.row[e.cy].chars)
	}
	if e.cx > rowlen {
		e.cx = rowlen
	}
}

// ProcessKeypress reads one logical key and dispatches it per the
// binding table of spec.md §4.5. Every dispatched key fully completes
// (content → render → highlight → cascade) before this call returns.
func (e *Editor) ProcessKeypress() {
	key, err := readKey()
	if err != nil {
		e.ShowError("%v", err)
		return
	}

	switch key {
	case '\r':
		e.InsertNewline()

	case withControlKey('q'):
		if e.dirty > 0 {
			e.quitTimes--
			if e.quitTimes > 0 {
				e.SetStatusMessage("WARNING: File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
				return
			}
		}

		e.RestoreTerminal()
		if e.watch != nil {
			e.watch.Close()
		}
		os.Stdout.Write([]byte(CLEAR_SCREEN))
		os.Stdout.Write([]byte(CURSOR_HOME))
		e.log.Info().Msg("clean exit")
		os.Exit(0)

	case withControlKey('s'):
		e.Save()

	case HOME_KEY:
		e.cx = 0

	case END_KEY:
		if e.cy < e.totalRows {
			e.cx = len(e.row[e.cy].chars)
		}

	case withControlKey('e'):
		e.Explorer()
		e.mode = EDIT_MODE

	case withControlKey('f'):
		e.Find()

	case withControlKey('r'):
		e.Redraw()

	case withControlKey('g'):
		e.Help()

	case withControlKey('z'):
		e.Undo()

	case withControlKey('y'):
		e.Redo()

	case BACKSPACE, DELETE_KEY, withControlKey('h'):
		if key == DELETE_KEY {
			e.MoveCursor(ARROW_RIGHT)
		}
		e.DeleteChar()

	case PAGE_UP:
		e.cy = e.rowOffset
		for range e.screenRows {
			e.MoveCursor(ARROW_UP)
		}

	case PAGE_DOWN:
		e.cy = min(e.rowOffset+e.screenRows-1, e.totalRows)
		for range e.screenRows {
			e.MoveCursor(ARROW_DOWN)
		}

	case ARROW_LEFT, ARROW_RIGHT, ARROW_UP, ARROW_DOWN:
		e.MoveCursor(key)

	case withControlKey('l'), '\x1b':
		// no-op

	default:
		if isControl(byte(key)) {
			e.log.Debug().Msgf("ignoring unbound control key %d", key)
			break
		}
		e.InsertChar(key)
	}

	e.quitTimes = QUIT_TIMES
}
