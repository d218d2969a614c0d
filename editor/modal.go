package editor

// ModalScreen is a read-mostly full-screen overlay (help, file
// explorer) that borrows the Editor's row/render/highlight pipeline
// instead of a parallel rendering path: its content is just another
// slice of editorRow.
type ModalScreen interface {
	// GetContent returns the rows to display in place of the buffer.
	GetContent() []editorRow

	// GetStatusMessage returns the message shown in the prompt bar
	// while this screen is active.
	GetStatusMessage() string

	// HandleKey processes one keypress. The first return value
	// reports whether the screen should close; the second, only
	// meaningful when the first is true, reports whether the prior
	// editor state should be restored (true) or the screen's own
	// mutations kept (false, e.g. the explorer having just opened a
	// file).
	HandleKey(key int, e *Editor) (close bool, restore bool)

	// Initialize positions the cursor and performs any other
	// screen-specific setup once the content is installed.
	Initialize(e *Editor)
}

// EditorState is the snapshot ModalManager restores the buffer to
// after a cancelled modal screen, the same shape search already uses
// for its own cancel path.
type EditorState struct {
	rows      []editorRow
	totalRows int
	cx, cy    int
	colOffset int
	rowOffset int
}

func (e *Editor) getEditorState() EditorState {
	return EditorState{
		rows:      e.row,
		totalRows: e.totalRows,
		cx:        e.cx,
		cy:        e.cy,
		colOffset: e.colOffset,
		rowOffset: e.rowOffset,
	}
}

func (e *Editor) setEditorState(state EditorState) {
	e.row = state.rows
	e.totalRows = state.totalRows
	e.cx = state.cx
	e.cy = state.cy
	e.colOffset = state.colOffset
	e.rowOffset = state.rowOffset
	e.mode = EDIT_MODE
}

// ModalManager runs a ModalScreen's blocking interaction loop. Like
// Prompt, it is a synchronous sub-loop of the same dispatch thread,
// never a background task.
type ModalManager struct {
	savedState EditorState
	screen     ModalScreen
	editor     *Editor
}

// NewModalManager snapshots the current buffer and wraps screen.
func NewModalManager(editor *Editor, screen ModalScreen) *ModalManager {
	return &ModalManager{
		savedState: editor.getEditorState(),
		screen:     screen,
		editor:     editor,
	}
}

// Show installs the screen's content, initializes it, and loops
// refresh/read-key/dispatch until the screen reports it should close.
func (m *ModalManager) Show(mode int) {
	content := m.screen.GetContent()
	m.setupModalDisplay(content, mode)

	m.screen.Initialize(m.editor)

	for {
		m.editor.RefreshScreen()

		key, err := readKey()
		if err != nil {
			m.editor.ShowError("%v", err)
			continue
		}

		shouldClose, shouldRestore := m.screen.HandleKey(key, m.editor)
		if shouldClose {
			if shouldRestore {
				m.restoreState()
			}
			return
		}
	}
}

func (m *ModalManager) setupModalDisplay(content []editorRow, mode int) {
	m.editor.mode = mode
	m.editor.row = content
	m.editor.totalRows = len(content)
	m.editor.cx = 0
	m.editor.cy = 0
	m.editor.colOffset = 0
	m.editor.rowOffset = 0
	m.editor.SetStatusMessage("%s", m.screen.GetStatusMessage())
}

func (m *ModalManager) restoreState() {
	m.editor.setEditorState(m.savedState)
	m.editor.SetStatusMessage("Returned to editor")
}
