package editor

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// getLineEnding returns the line ending RowsToString writes, matching
// the host OS convention the way kigo's file-I/O layer already does.
func getLineEnding() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}

// RowsToString flattens the buffer back into a single byte slice for
// saving, one line-ending-terminated row at a time.
func (e *Editor) RowsToString() ([]byte, int) {
	var buf strings.Builder
	lineEnding := getLineEnding()

	totalSize := 0
	for _, row := range e.row {
		totalSize += len(row.chars) + len(lineEnding)
	}
	buf.Grow(totalSize)

	for _, row := range e.row {
		buf.Write(row.chars)
		buf.WriteString(lineEnding)
	}

	result := buf.String()
	return []byte(result), len(result)
}

// Open loads filename into a fresh buffer, selects syntax highlighting,
// resets dirty to 0, and (re)starts the external-change watch on the
// new path. A read failure is returned as an error: the CLI entry
// point treats it as fatal (Die), the explorer reports it in the
// status bar.
func (e *Editor) Open(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("could not open file %q: %w", filename, err)
	}
	defer file.Close()

	e.filename = filename
	e.row = make([]editorRow, 0)
	e.totalRows = 0
	e.cx = 0
	e.cy = 0
	e.rowOffset = 0
	e.colOffset = 0
	e.rx = 0
	e.SelectSyntaxHighlight()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		e.InsertRow(e.totalRows, []byte(line), len(line))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading file %q: %w", filename, err)
	}

	e.dirty = 0
	e.log.Info().Str("file", filename).Int("rows", e.totalRows).Msg("opened file")
	e.watchFile(filename)
	return nil
}

// Save writes the buffer back to e.filename, prompting for a name
// first if the buffer is unnamed. Per spec.md §6, the file is opened
// O_RDWR|O_CREATE, truncated to the exact new length, and then
// written in full — truncate-then-write, never O_TRUNC, so a failed
// write leaves some of the old content intact rather than none of it.
func (e *Editor) Save() {
	if e.filename == "" {
		e.mode = SAVE_MODE
		filename := e.Prompt("Save as: %s (ESC to cancel)", nil)
		e.mode = EDIT_MODE
		if filename == "" {
			e.SetStatusMessage("Save aborted")
			return
		}
		e.filename = filename
		e.SelectSyntaxHighlight()
	}

	buf, length := e.RowsToString()

	file, err := os.OpenFile(e.filename, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		e.ShowError("Can't save! I/O error: %v", err)
		return
	}
	defer file.Close()

	if err := file.Truncate(int64(length)); err != nil {
		e.ShowError("Can't save! I/O error: %v", err)
		return
	}

	bytesWritten, err := file.Write(buf)
	if err != nil {
		e.ShowError("Can't save! I/O error: %v", err)
		return
	}
	if bytesWritten != length {
		e.ShowError("Can't save! Partial write: %d/%d bytes", bytesWritten, length)
		return
	}

	e.SetStatusMessage("%d bytes written to disk", length)
	e.dirty = 0
	e.log.Info().Str("file", e.filename).Int("bytes", length).Msg("saved file")
	e.watchFile(e.filename)
}

// fileWatcher wraps an fsnotify.Watcher scoped to exactly the one file
// currently open, so a Write event on disk can be surfaced as an
// advisory status message without ever auto-reloading the buffer.
type fileWatcher struct {
	w    *fsnotify.Watcher
	path string
}

// watchFile (re)starts the watch on path, replacing any prior watcher.
// Failure to start a watch is non-fatal — it only disables the
// advisory notice, per spec.md §7's "never a crash" posture for
// collaborator failures outside the core engine.
func (e *Editor) watchFile(path string) {
	if e.watch != nil {
		e.watch.Close()
		e.watch = nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		e.log.Warn().Err(err).Msg("file watch disabled")
		return
	}
	if err := w.Add(path); err != nil {
		e.log.Warn().Err(err).Msg("file watch disabled")
		w.Close()
		return
	}
	e.watch = &fileWatcher{w: w, path: path}
}

// Close releases the underlying fsnotify watcher.
func (fw *fileWatcher) Close() {
	fw.w.Close()
}

// drainWatch is called once per frame from RefreshScreen with a
// non-blocking select, so an external-change notification is
// surfaced between keypresses rather than interleaved with dispatch.
func (e *Editor) drainWatch() {
	if e.watch == nil {
		return
	}
	select {
	case ev, ok := <-e.watch.w.Events:
		if !ok {
			return
		}
		if ev.Has(fsnotify.Write) && e.dirty == 0 {
			e.SetStatusMessage("file changed on disk, reload with Ctrl-E")
		}
	case err, ok := <-e.watch.w.Errors:
		if ok {
			e.log.Warn().Err(err).Msg("file watch error")
		}
	default:
	}
}
