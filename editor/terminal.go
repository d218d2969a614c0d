package editor

import (
	"errors"
	"os"

	"golang.org/x/term"
)

// Terminal owns the raw-mode state needed to restore the caller's TTY
// on exit. It is the external collaborator spec.md §6 describes: raw
// mode setup/restore, a blocking single-byte reader, and window-size
// probing all live here, behind golang.org/x/term.
type Terminal struct {
	originalState *term.State
}

// NewTerminal constructs an unattached Terminal.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// EnableRawMode places stdin into raw mode via term.MakeRaw: no echo,
// no line buffering, no signal generation, 8-bit clean. Reads block
// until at least one byte arrives (VMIN=1, VTIME=0); no read timeout
// is set.
func (e *Editor) EnableRawMode() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("not running in a terminal")
	}

	var err error
	e.terminal.originalState, err = term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return errors.New("enabling terminal raw mode: " + err.Error())
	}
	return nil
}

// RestoreTerminal restores the terminal attributes captured by
// EnableRawMode. Safe to call more than once and safe to call before
// EnableRawMode ever succeeded.
func (e *Editor) RestoreTerminal() {
	if e.terminal != nil && e.terminal.originalState != nil {
		term.Restore(int(os.Stdin.Fd()), e.terminal.originalState)
		e.terminal.originalState = nil
	}
}

// readKey blocks for one logical keypress, decoding ESC-prefixed
// arrow/Home/End/PageUp/PageDown/Delete sequences into the synthetic
// codes declared in config.go. A bare, incomplete escape sequence
// degrades to returning '\x1b' alone.
func readKey() (int, error) {
	buf := make([]byte, 1)
	var nread int
	var err error

	for nread, err = os.Stdin.Read(buf); nread != 1; {
		if nread == -1 && err != nil {
			return 0, errors.New("reading keyboard input")
		}
		if err != nil {
			return 0, errors.New("reading keyboard input")
		}
	}

	c := buf[0]
	if c != '\x1b' {
		return int(c), nil
	}

	seq := make([]byte, 3)
	if n, err := os.Stdin.Read(seq[0:1]); n != 1 || err != nil {
		return '\x1b', nil
	}
	if n, err := os.Stdin.Read(seq[1:2]); n != 1 || err != nil {
		return '\x1b', nil
	}

	switch seq[0] {
	case '[':
		if seq[1] >= '0' && seq[1] <= '9' {
			if n, err := os.Stdin.Read(seq[2:3]); n != 1 || err != nil {
				return '\x1b', nil
			}
			if seq[2] == '~' {
				switch seq[1] {
				case '1':
					return HOME_KEY, nil
				case '3':
					return DELETE_KEY, nil
				case '4':
					return END_KEY, nil
				case '5':
					return PAGE_UP, nil
				case '6':
					return PAGE_DOWN, nil
				case '7':
					return HOME_KEY, nil
				case '8':
					return END_KEY, nil
				}
			}
		} else {
			switch seq[1] {
			case 'A':
				return ARROW_UP, nil
			case 'B':
				return ARROW_DOWN, nil
			case 'C':
				return ARROW_RIGHT, nil
			case 'D':
				return ARROW_LEFT, nil
			case 'H':
				return HOME_KEY, nil
			case 'F':
				return END_KEY, nil
			}
		}
	case 'O':
		switch seq[1] {
		case 'H':
			return HOME_KEY, nil
		case 'F':
			return END_KEY, nil
		}
	}
	return '\x1b', nil
}

// getWindowSize returns (rows, cols) for stdout as reported by
// term.GetSize. There is no cursor-position-probe fallback: when the
// size query fails, its error is returned.
func getWindowSize() (int, int, error) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	return rows, cols, err
}
