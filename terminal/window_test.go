package terminal

import (
	"strings"
	"testing"
)

func TestSetCellClips(t *testing.T) {
	s, _ := testScreen(5, 10)
	w := s.Root()

	w.SetCell(-1, 0, 'x', 0)
	w.SetCell(0, -1, 'x', 0)
	w.SetCell(5, 0, 'x', 0)
	w.SetCell(0, 10, 'x', 0)

	if s.dirty.hasChanges() {
		t.Error("out-of-range writes marked cells dirty")
	}
	for i, c := range s.cells {
		if c != ' ' {
			t.Fatalf("cell %d modified by clipped write", i)
		}
	}
}

func TestSubWindowOffset(t *testing.T) {
	s, _ := testScreen(10, 20)
	w := s.NewWindow(3, 5, 2, 4)

	w.SetCell(1, 2, 'm', 0)
	if s.cells[3*20+6] != 'm' {
		t.Error("sub-window write landed at wrong grid cell")
	}
	if !w.dirtyRows[1] {
		t.Error("sub-window row not marked dirty")
	}

	// Past the sub-window edge, inside the screen
	w.SetCell(1, 5, 'n', 0)
	if s.cells[3*20+9] == 'n' {
		t.Error("write past window edge not clipped")
	}
}

func TestSubWindowOverhangClips(t *testing.T) {
	s, _ := testScreen(5, 10)
	w := s.NewWindow(3, 6, 3, 7)

	// Local (2,4) would be screen (5,11): off both edges
	w.SetCell(2, 4, 'x', 0)
	w.SetCell(0, 5, 'y', 0) // screen (3,12), off the right edge
	w.SetCell(0, 0, 'z', 0) // screen (3,7), valid

	if s.cells[3*10+7] != 'z' {
		t.Error("valid overhang-window write lost")
	}
}

func TestPrintAdvancesAndWraps(t *testing.T) {
	s, _ := testScreen(3, 5)
	w := s.Root()

	w.Move(0, 3)
	w.Print("abcd")

	if s.cells[3] != 'a' || s.cells[4] != 'b' {
		t.Error("print did not start at cursor")
	}
	if s.cells[5] != 'c' || s.cells[6] != 'd' {
		t.Error("print did not wrap to next row")
	}
	if y, x := w.CursorYX(); y != 1 || x != 2 {
		t.Errorf("cursor = (%d,%d), want (1,2)", y, x)
	}
}

func TestPrintNewline(t *testing.T) {
	s, _ := testScreen(3, 10)
	w := s.Root()

	w.Print("ab\ncd")
	if s.cells[0] != 'a' || s.cells[1] != 'b' {
		t.Error("first line wrong")
	}
	if s.cells[10] != 'c' || s.cells[11] != 'd' {
		t.Error("newline did not move to row start")
	}
}

func TestPrintMultibyteContinuation(t *testing.T) {
	s, _ := testScreen(3, 10)
	w := s.Root()

	w.Print("é")
	if s.attrs[0]&attrContinuation != 0 {
		t.Error("lead byte flagged as continuation")
	}
	if s.attrs[1]&attrContinuation == 0 {
		t.Error("trail byte not flagged as continuation")
	}
}

func TestAttrOnReplacesColorPair(t *testing.T) {
	s, _ := testScreen(3, 10)
	w := s.Root()

	w.AttrOn(ColorPair(3) | AttrBold)
	w.AttrOn(ColorPair(5))
	if pairNumber(w.attr) != 5 {
		t.Errorf("pair = %d, want 5", pairNumber(w.attr))
	}
	if w.attr&AttrBold == 0 {
		t.Error("style bit lost when switching pairs")
	}

	w.AttrOff(AttrBold)
	if w.attr&AttrBold != 0 {
		t.Error("AttrOff did not clear bold")
	}
}

func TestWindowClear(t *testing.T) {
	s, buf := testScreen(5, 10)
	converge(s, buf, 0, 0, 4, 9)

	w := s.NewWindow(2, 4, 1, 1)
	w.SetBackground(ColorPair(2))
	w.Clear()
	s.refresh(w)

	out := buf.String()
	if !strings.Contains(out, "\x1b[0;32m") {
		t.Errorf("clear output %q missing background rendition", out)
	}
	for y := 1; y <= 2; y++ {
		for x := 1; x <= 4; x++ {
			i := y*10 + x
			if s.cells[i] != ' ' || s.attrs[i] != ColorPair(2) {
				t.Fatalf("cell (%d,%d) not cleared to background", y, x)
			}
		}
	}
}

func TestWindowRefreshThenRootIsQuiet(t *testing.T) {
	s, buf := testScreen(5, 10)
	converge(s, buf, 0, 0, 4, 9)

	w := s.NewWindow(2, 4, 1, 1)
	w.SetCell(0, 0, 'v', AttrNormal)
	s.refresh(w)
	if buf.Len() == 0 {
		t.Fatal("window refresh emitted nothing")
	}

	buf.Reset()
	s.Refresh()
	if buf.Len() != 0 {
		t.Errorf("root refresh after window refresh emitted %q", buf.String())
	}
}

func TestWindowRefreshUsesPositionedCache(t *testing.T) {
	s, buf := testScreen(5, 10)
	converge(s, buf, 0, 0, 4, 9)

	w := s.NewWindow(2, 4, 1, 1)
	w.SetCell(0, 0, 'v', ColorPair(3))
	s.refresh(w)

	w.SetCell(0, 0, 'u', ColorPair(3))
	s.refresh(w)
	if s.lru.hits == 0 {
		t.Error("repeated window redraw missed the positioned cache")
	}
}

func TestNewWindowRejectsBadGeometry(t *testing.T) {
	s, _ := testScreen(5, 10)
	if s.NewWindow(0, 4, 0, 0) != nil {
		t.Error("zero-height window created")
	}
	if s.NewWindow(2, -1, 0, 0) != nil {
		t.Error("negative-width window created")
	}
}
