package editor

import (
	"bytes"
	"strings"
)

// editorSyntax describes one filetype's highlighting rules: the
// patterns used to select it, its keyword classes, comment tokens and
// feature flags. The database below is immutable and compiled in.
type editorSyntax struct {
	filetype               string
	filematch              []string
	keywords               [][]string // keywords[0] -> HL_KEYWORD1, keywords[1] -> HL_KEYWORD2
	singlelineCommentStart string
	multilineCommentStart  string
	multilineCommentEnd    string
	flags                  int
}

// HLDB_ENTRIES is the compiled-in syntax database. At minimum it
// carries a C-family entry, as spec.md requires; a Go entry is added
// since this module's own source is Go.
var HLDB_ENTRIES = []editorSyntax{
	{
		filetype:  "c",
		filematch: []string{".c", ".h", ".cpp", ".php", ".js", ".py"},
		keywords: [][]string{
			{"switch", "if", "while", "for", "break", "continue", "return", "else",
				"struct", "union", "typedef", "static", "enum", "class", "case"},
			{"int", "long", "double", "float", "char", "unsigned", "signed", "void"},
		},
		singlelineCommentStart: "//",
		multilineCommentStart:  "/*",
		multilineCommentEnd:    "*/",
		flags:                  HL_HIGHLIGHT_NUMBERS | HL_HIGHLIGHT_STRINGS,
	},
	{
		filetype:  "go",
		filematch: []string{".go", ".mod", ".sum"},
		keywords: [][]string{
			{"break", "case", "chan", "const", "continue", "default", "defer", "else",
				"fallthrough", "for", "go", "goto", "if", "import", "map", "package",
				"range", "return", "select", "struct", "switch", "type", "var"},
			{"interface", "func"},
		},
		singlelineCommentStart: "//",
		multilineCommentStart:  "/*",
		multilineCommentEnd:    "*/",
		flags:                  HL_HIGHLIGHT_NUMBERS | HL_HIGHLIGHT_STRINGS,
	},
}

// UpdateSyntax recomputes row.hl from row.render using the active
// syntax definition. It is the only place open_comment is assigned;
// a change cascades into the next row so a newly typed /* or */
// propagates, and the cascade is bounded because it only recurses when
// the successor's open_comment flag actually flips.
func (row *editorRow) UpdateSyntax(e *Editor) {
	row.hl = make([]int, len(row.render))

	if e.syntax == nil {
		return
	}

	keywords := e.syntax.keywords

	scsBytes := []byte(e.syntax.singlelineCommentStart)
	mcsBytes := []byte(e.syntax.multilineCommentStart)
	mceBytes := []byte(e.syntax.multilineCommentEnd)

	scsLen := len(scsBytes)
	mcsLen := len(mcsBytes)
	mceLen := len(mceBytes)

	prevSep := true
	var inString byte = 0
	var inComment bool = row.idx > 0 && row.idx-1 < len(e.row) && e.row[row.idx-1].hlOpenComment

	for i := 0; i < len(row.render); {
		c := row.render[i]
		prevHl := HL_NORMAL
		if i > 0 {
			prevHl = row.hl[i-1]
		}

		if scsLen > 0 && inString == 0 && !inComment {
			if bytes.HasPrefix(row.render[i:], scsBytes) {
				for j := i; j < len(row.render); j++ {
					row.hl[j] = HL_COMMENT
				}
				break
			}
		}

		if mcsLen > 0 && mceLen > 0 && inString == 0 {
			if inComment {
				row.hl[i] = HL_MLCOMMENT
				if bytes.HasPrefix(row.render[i:], mceBytes) {
					for j := range mceLen {
						if i+j < len(row.render) {
							row.hl[i+j] = HL_MLCOMMENT
						} else {
							break
						}
					}
					inComment = false
					i += mceLen
					continue
				}
				i++
				continue
			} else if bytes.HasPrefix(row.render[i:], mcsBytes) {
				inComment = true
				for j := range mcsLen {
					if i+j < len(row.render) {
						row.hl[i+j] = HL_MLCOMMENT
					} else {
						break
					}
				}
				i += mcsLen
				continue
			}
		}

		if e.syntax.flags&HL_HIGHLIGHT_STRINGS != 0 {
			if inString != 0 {
				row.hl[i] = HL_STRING
				if c == '\\' && i+1 < len(row.render) {
					row.hl[i+1] = HL_STRING
					i += 2
					continue
				}
				if c == inString {
					inString = 0
				}
				i++
				prevSep = true
				continue
			} else if c == '"' || c == '\'' {
				inString = c
				row.hl[i] = HL_STRING
				i++
				continue
			}
		}

		if e.syntax.flags&HL_HIGHLIGHT_NUMBERS != 0 {
			if (isDigit(c) && (prevSep || prevHl == HL_NUMBER)) || (c == '.' && prevHl == HL_NUMBER) {
				row.hl[i] = HL_NUMBER
				i++
				prevSep = false
				continue
			}
		}

		if prevSep {
			matched := false
			for class, sublist := range keywords {
				for _, keyword := range sublist {
					klen := len(keyword)
					if klen == 0 || i+klen > len(row.render) {
						continue
					}
					if bytes.Equal(row.render[i:i+klen], []byte(keyword)) &&
						(i+klen >= len(row.render) || isSeparator(int(row.render[i+klen]))) {
						for k := range klen {
							row.hl[i+k] = HL_KEYWORD1 + class
						}
						i += klen
						matched = true
						break
					}
				}
				if matched {
					break
				}
			}
			if matched {
				prevSep = false
				continue
			}
		}
		prevSep = isSeparator(int(c))
		i++
	}

	changed := row.hlOpenComment != inComment
	row.hlOpenComment = inComment
	if changed && row.idx+1 < e.totalRows {
		e.row[row.idx+1].UpdateSyntax(e)
	}
}

// syntaxToGraphics maps a highlight class to an SGR foreground color
// and an optional style code (0 meaning none).
func syntaxToGraphics(hl int) (int, int) {
	switch hl {
	case HL_COMMENT, HL_MLCOMMENT:
		return ANSI_COLOR_CYAN, 0
	case HL_KEYWORD1:
		return ANSI_COLOR_YELLOW, 0
	case HL_KEYWORD2:
		return ANSI_COLOR_GREEN, 0
	case HL_STRING:
		return ANSI_COLOR_MAGENTA, 0
	case HL_NUMBER:
		return ANSI_COLOR_RED, 0
	case HL_MATCH:
		return ANSI_COLOR_BLUE, ANSI_REVERSE
	default:
		return ANSI_COLOR_DEFAULT, 0
	}
}

// SelectSyntaxHighlight picks a syntax definition for e.filename by
// dotted-extension or substring match, first entry wins, and
// re-highlights every existing row. Called on load and on first save
// of an unnamed buffer.
func (e *Editor) SelectSyntaxHighlight() {
	e.syntax = nil
	if e.filename == "" {
		return
	}

	filename := e.filename
	var ext string
	if lastDot := strings.LastIndex(filename, "."); lastDot != -1 {
		ext = filename[lastDot:]
	}

	for j := range HLDB_ENTRIES {
		s := &HLDB_ENTRIES[j]
		for _, pattern := range s.filematch {
			isExt := pattern[0] == '.'
			if (isExt && ext != "" && ext == pattern) ||
				(!isExt && strings.Contains(filename, pattern)) {
				e.syntax = s
				for filerow := range e.totalRows {
					e.row[filerow].UpdateSyntax(e)
				}
				return
			}
		}
	}
}
