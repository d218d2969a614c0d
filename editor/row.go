package editor

import "slices"

// editorRow is one logical line: the authoritative byte content
// (chars), the tab-expanded display form (render), and the per-cell
// highlight classes (hl). idx always equals the row's position in
// Editor.row. hlOpenComment records whether this row ends inside an
// unterminated multi-line comment, which is what lets UpdateSyntax
// cascade correctly into the next row.
type editorRow struct {
	idx           int
	chars         []byte
	render        []byte
	hl            []int
	hlOpenComment bool
}

// cxToRx converts a chars-column to its render-column, expanding tabs
// to the next TAB_STOP boundary. It is strictly increasing in cx.
func (row *editorRow) cxToRx(cx int) int {
	rx := 0
	for j := range cx {
		if row.chars[j] == '\t' {
			rx += TAB_STOP - (rx % TAB_STOP)
		} else {
			rx++
		}
	}
	return rx
}

// rxToCx is the inverse mapping: the first cx whose render-column
// strictly exceeds rx, or len(chars) if rx is never exceeded.
func (row *editorRow) rxToCx(rx int) int {
	curRx := 0
	var cx int
	for cx = 0; cx < len(row.chars); cx++ {
		if row.chars[cx] == '\t' {
			curRx += (TAB_STOP - 1) - (curRx % TAB_STOP)
		}
		curRx++
		if curRx > rx {
			return cx
		}
	}
	return cx
}

// Update recomputes render from chars (tab expansion) and then
// rebuilds hl via UpdateSyntax. chars must already hold its final
// value for this edit before Update runs.
func (row *editorRow) Update(e *Editor) {
	tabs := 0
	for _, char := range row.chars {
		if char == '\t' {
			tabs++
		}
	}

	row.render = make([]byte, len(row.chars)+tabs*(TAB_STOP-1))

	idx := 0
	for _, char := range row.chars {
		if char == '\t' {
			row.render[idx] = ' '
			idx++
			for idx%TAB_STOP != 0 {
				row.render[idx] = ' '
				idx++
			}
		} else {
			row.render[idx] = char
			idx++
		}
	}

	row.render = row.render[:idx]
	row.UpdateSyntax(e)
}

// InsertChar inserts byte c at chars-offset at, clamping at into
// [0, len(chars)].
func (row *editorRow) InsertChar(e *Editor, at int, c int) {
	if at < 0 || at > len(row.chars) {
		at = len(row.chars)
	}

	row.chars = slices.Insert(row.chars, at, byte(c))

	row.Update(e)
	e.dirty++
}

// appendString concatenates s onto the row (used by the backspace
// row-join).
func (row *editorRow) appendString(e *Editor, s []byte) {
	row.chars = append(row.chars, s...)

	row.Update(e)
	e.dirty++
}

// deleteChar removes the byte at chars-offset at; out of range is a
// silent no-op.
func (row *editorRow) deleteChar(e *Editor, at int) {
	if at < 0 || at >= len(row.chars) {
		return
	}

	row.chars = slices.Delete(row.chars, at, at+1)

	row.Update(e)
	e.dirty++
}
