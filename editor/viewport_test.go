package editor

import "testing"

func TestScrollAdjustsRowOffsetDown(t *testing.T) {
	e := newTestEditor()
	e.screenRows = 5
	for i := range 20 {
		e.InsertRow(i, []byte("line"), 4)
	}
	e.cy = 12

	e.Scroll()

	if e.rowOffset != e.cy-e.screenRows+1 {
		t.Errorf("rowOffset = %d, want %d", e.rowOffset, e.cy-e.screenRows+1)
	}
}

func TestScrollAdjustsRowOffsetUp(t *testing.T) {
	e := newTestEditor()
	e.screenRows = 5
	for i := range 20 {
		e.InsertRow(i, []byte("line"), 4)
	}
	e.rowOffset = 10
	e.cy = 3

	e.Scroll()

	if e.rowOffset != e.cy {
		t.Errorf("rowOffset = %d, want %d", e.rowOffset, e.cy)
	}
}

func TestScrollComputesRxFromTabs(t *testing.T) {
	e := newTestEditor()
	e.InsertRow(0, []byte("a\tb"), 3)
	e.cx = 2

	e.Scroll()

	want := e.row[0].cxToRx(2)
	if e.rx != want {
		t.Errorf("rx = %d, want %d", e.rx, want)
	}
}

func TestScrollColOffsetFollowsCursorOnWideLine(t *testing.T) {
	e := newTestEditor()
	e.screenCols = 10
	line := make([]byte, 50)
	for i := range line {
		line[i] = 'x'
	}
	e.InsertRow(0, line, len(line))
	e.cx = 40

	e.Scroll()

	if e.colOffset != e.rx-e.screenCols+1 {
		t.Errorf("colOffset = %d, want %d", e.colOffset, e.rx-e.screenCols+1)
	}
}
