package editor

import "testing"

func newGoEditor() *Editor {
	e := newTestEditor()
	e.syntax = &HLDB_ENTRIES[1] // go
	return e
}

func TestUpdateSyntaxKeyword(t *testing.T) {
	e := newGoEditor()
	row := &editorRow{idx: 0, chars: []byte("return 1")}
	e.row = []editorRow{*row}
	e.totalRows = 1
	e.row[0].Update(e)

	for i := range "return" {
		if e.row[0].hl[i] != HL_KEYWORD1 {
			t.Errorf("hl[%d] = %d, want HL_KEYWORD1", i, e.row[0].hl[i])
		}
	}
}

func TestUpdateSyntaxCommentCascade(t *testing.T) {
	e := newGoEditor()
	e.row = []editorRow{
		{idx: 0, chars: []byte("/* start")},
		{idx: 1, chars: []byte("still in comment")},
		{idx: 2, chars: []byte("end */ code")},
	}
	e.totalRows = 3

	// Updating the rows in order lets each row start from its
	// predecessor's hlOpenComment; row 0's flip also cascades into
	// rows 1 and 2, since UpdateSyntax recurses whenever a row's
	// hlOpenComment flips.
	for i := range e.row {
		e.row[i].Update(e)
	}

	if !e.row[0].hlOpenComment {
		t.Error("row 0 should end inside the open comment")
	}
	if !e.row[1].hlOpenComment {
		t.Error("row 1 should still be inside the comment")
	}
	if e.row[2].hlOpenComment {
		t.Error("row 2 should have closed the comment")
	}

	for i, h := range e.row[1].hl {
		if h != HL_MLCOMMENT {
			t.Errorf("row 1 hl[%d] = %d, want HL_MLCOMMENT", i, h)
		}
	}
}

func TestUpdateSyntaxCommentCascadeConvergence(t *testing.T) {
	e := newGoEditor()
	e.row = []editorRow{
		{idx: 0, chars: []byte("code /*")},
		{idx: 1, chars: []byte("more code")},
	}
	e.totalRows = 2
	for i := range e.row {
		e.row[i].Update(e)
	}

	if !e.row[0].hlOpenComment || !e.row[1].hlOpenComment {
		t.Fatal("both rows should be inside the unterminated comment")
	}

	// Closing the comment on row 0 must cascade and close row 1 too.
	e.row[0].chars = []byte("code /* */")
	e.row[0].Update(e)

	if e.row[0].hlOpenComment {
		t.Error("row 0 should have closed its own comment")
	}
	if e.row[1].hlOpenComment {
		t.Error("row 1 should have been un-cascaded to closed")
	}
}

func TestUpdateSyntaxStringNotKeyword(t *testing.T) {
	e := newGoEditor()
	e.row = []editorRow{{idx: 0, chars: []byte(`"return"`)}}
	e.totalRows = 1
	e.row[0].Update(e)

	for i, h := range e.row[0].hl {
		if h != HL_STRING {
			t.Errorf("hl[%d] = %d, want HL_STRING (keyword text inside a string must not highlight as a keyword)", i, h)
		}
	}
}

func TestUpdateSyntaxNumber(t *testing.T) {
	e := newGoEditor()
	e.row = []editorRow{{idx: 0, chars: []byte("x := 42")}}
	e.totalRows = 1
	e.row[0].Update(e)

	hl := e.row[0].hl
	for i := 5; i < 7; i++ {
		if hl[i] != HL_NUMBER {
			t.Errorf("hl[%d] = %d, want HL_NUMBER", i, hl[i])
		}
	}
}

func TestSelectSyntaxHighlightByExtension(t *testing.T) {
	e := newTestEditor()
	e.filename = "main.go"
	e.row = []editorRow{{idx: 0, chars: []byte("x")}}
	e.totalRows = 1
	e.row[0].Update(e)

	e.SelectSyntaxHighlight()

	if e.syntax == nil || e.syntax.filetype != "go" {
		t.Fatalf("expected go syntax selected, got %+v", e.syntax)
	}
}

func TestSelectSyntaxHighlightNoMatch(t *testing.T) {
	e := newTestEditor()
	e.filename = "README.txt"

	e.SelectSyntaxHighlight()

	if e.syntax != nil {
		t.Errorf("expected nil syntax for unmatched extension, got %+v", e.syntax)
	}
}
