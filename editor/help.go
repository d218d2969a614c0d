package editor

import "fmt"

// helpScreen implements ModalScreen as a static, read-only page of
// keybindings. It never mutates the editor state it is shown over, so
// its HandleKey always restores on close.
type helpScreen struct {
	content []editorRow
}

func helpLines() []string {
	return []string{
		"=== ccode keybindings ===",
		"",
		fmt.Sprintf("Ctrl-Q       quit (press %d times with unsaved changes)", QUIT_TIMES),
		"Ctrl-S       save",
		"Ctrl-F       search (arrows to step matches, Enter/ESC to stop)",
		"Ctrl-Z       undo",
		"Ctrl-Y       redo",
		"Ctrl-E       file explorer",
		"Ctrl-G       this help screen",
		"Ctrl-R       force redraw",
		"Arrows, Home, End, Page Up/Down   move the cursor",
		"Backspace, Delete, Ctrl-H         delete a character",
		"Enter                             insert a newline",
		"",
		"Press any key to return to the editor.",
	}
}

func newHelpScreen(e *Editor) *helpScreen {
	lines := helpLines()
	rows := make([]editorRow, len(lines))
	syntax := e.syntax
	e.syntax = nil
	for i, line := range lines {
		rows[i] = editorRow{idx: i, chars: []byte(line)}
		rows[i].Update(e)
	}
	e.syntax = syntax
	return &helpScreen{content: rows}
}

func (h *helpScreen) GetContent() []editorRow { return h.content }

func (h *helpScreen) GetStatusMessage() string {
	return "Help (press any key to return)"
}

func (h *helpScreen) Initialize(e *Editor) {
	e.cx, e.cy = 0, 0
}

func (h *helpScreen) HandleKey(key int, e *Editor) (bool, bool) {
	return true, true
}

// Help opens the static keybinding reference modal.
func (e *Editor) Help() {
	NewModalManager(e, newHelpScreen(e)).Show(HELP_MODE)
}
