package editor

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// explorerEntry is one browsable row: either the synthetic ".." parent
// link or a real directory entry. Folding both into one shape lets the
// screen index rows directly (row N <-> entries[N-1]) instead of
// branching on a separate parent-link flag at every lookup.
type explorerEntry struct {
	name  string
	isDir bool
	isUp  bool
	size  int64
}

func (ent explorerEntry) label() string {
	if ent.isUp {
		return ".. (parent directory)"
	}
	if ent.isDir {
		return ent.name + "/"
	}
	return fmt.Sprintf("%s (%d bytes)", ent.name, ent.size)
}

// explorerScreen implements ModalScreen for directory browsing: each
// entry becomes a row, arrow keys move a highlighted (HL_MATCH)
// selection, and Enter either descends into a directory or opens a
// regular file through the same Editor.Open the CLI path uses.
type explorerScreen struct {
	currentDir string
	entries    []explorerEntry
	content    []editorRow
	editor     *Editor
}

// newExplorerScreen reads startDir and builds its display rows.
func newExplorerScreen(editor *Editor, startDir string) *explorerScreen {
	ex := &explorerScreen{
		currentDir: startDir,
		editor:     editor,
	}
	if err := ex.load(); err != nil {
		editor.ShowError("Failed to read directory: %v", err)
		return nil
	}
	return ex
}

// load re-reads currentDir and rebuilds entries with directories
// sorted ahead of files, each group alphabetical, and the parent link
// pinned first. The parent link is omitted at a filesystem root and in
// the starting "." directory.
func (ex *explorerScreen) load() error {
	listing, err := os.ReadDir(ex.currentDir)
	if err != nil {
		return err
	}

	entries := make([]explorerEntry, 0, len(listing)+1)
	for _, d := range listing {
		var size int64
		if info, err := d.Info(); err == nil {
			size = info.Size()
		}
		entries = append(entries, explorerEntry{name: d.Name(), isDir: d.IsDir(), size: size})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].isDir != entries[j].isDir {
			return entries[i].isDir
		}
		return entries[i].name < entries[j].name
	})

	clean := filepath.Clean(ex.currentDir)
	if clean != "." && clean != string(filepath.Separator) {
		entries = append([]explorerEntry{{isUp: true}}, entries...)
	}

	ex.entries = entries
	ex.content = ex.buildRows()
	return nil
}

func (ex *explorerScreen) buildRows() []editorRow {
	rows := make([]editorRow, 0, len(ex.entries)+1)

	header := editorRow{idx: 0, chars: []byte(fmt.Sprintf("=== File Explorer: %s ===", ex.currentDir))}
	header.Update(ex.editor)
	rows = append(rows, header)

	for _, ent := range ex.entries {
		row := editorRow{idx: len(rows), chars: []byte(ent.label())}
		row.Update(ex.editor)
		rows = append(rows, row)
	}

	return rows
}

func (ex *explorerScreen) GetContent() []editorRow { return ex.content }

func (ex *explorerScreen) GetStatusMessage() string {
	return fmt.Sprintf("File Explorer: %s - %d items (Enter=open/navigate, ESC/q=quit)", ex.currentDir, len(ex.entries))
}

func (ex *explorerScreen) Initialize(e *Editor) {
	e.cy = ex.firstSelectable()
	ex.highlightSelected(e)
}

// firstSelectable is row 1 whenever there is at least one entry; the
// header at row 0 is never a valid selection.
func (ex *explorerScreen) firstSelectable() int {
	if len(ex.entries) == 0 {
		return 0
	}
	return 1
}

func (ex *explorerScreen) HandleKey(key int, e *Editor) (bool, bool) {
	switch key {
	case 'q', 'Q', '\x1b':
		return true, true

	case ARROW_UP:
		if e.cy > ex.firstSelectable() {
			e.cy--
		}
		ex.highlightSelected(e)

	case ARROW_DOWN:
		if e.cy < len(ex.entries) {
			e.cy++
		}
		ex.highlightSelected(e)

	case '\r':
		if ex.openSelected(e) {
			return true, false
		}
		e.cy = ex.firstSelectable()
		e.rowOffset = 0
		e.row = ex.content
		e.totalRows = len(ex.content)
		e.SetStatusMessage("%s", ex.GetStatusMessage())
	}

	return false, false
}

func (ex *explorerScreen) selected(e *Editor) (explorerEntry, bool) {
	i := e.cy - 1
	if i < 0 || i >= len(ex.entries) {
		return explorerEntry{}, false
	}
	return ex.entries[i], true
}

func (ex *explorerScreen) highlightSelected(e *Editor) {
	for i := 1; i < len(ex.content); i++ {
		for j := range ex.content[i].hl {
			ex.content[i].hl[j] = HL_NORMAL
		}
	}
	if e.cy > 0 && e.cy < len(ex.content) {
		for j := range ex.content[e.cy].hl {
			ex.content[e.cy].hl[j] = HL_MATCH
		}
	}
	e.row = ex.content
}

// openSelected either descends into a selected directory (returning
// false, since the explorer stays open) or opens a selected file
// (returning true once Editor.Open succeeds). A dirty buffer blocks
// opening a new file, mirroring the Ctrl-Q unsaved-changes guard.
func (ex *explorerScreen) openSelected(e *Editor) bool {
	ent, ok := ex.selected(e)
	if !ok {
		return false
	}

	if ent.isUp {
		ex.currentDir = filepath.Dir(filepath.Clean(ex.currentDir))
		if err := ex.load(); err != nil {
			e.ShowError("Failed to read directory: %v", err)
		}
		return false
	}

	path := filepath.Join(ex.currentDir, ent.name)

	if ent.isDir {
		ex.currentDir = path
		if err := ex.load(); err != nil {
			e.ShowError("Failed to read directory: %v", err)
		}
		return false
	}

	if e.dirty > 0 {
		e.SetStatusMessage("File has unsaved changes")
		return false
	}

	if err := e.Open(path); err != nil {
		e.ShowError("Failed to open file: %v", err)
		return false
	}
	return true
}

// Explorer opens the file explorer modal rooted at the working
// directory.
func (e *Editor) Explorer() {
	screen := newExplorerScreen(e, ".")
	if screen == nil {
		return
	}
	NewModalManager(e, screen).Show(EXPLORER_MODE)
}
