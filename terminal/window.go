// @focus: #terminal { window }
package terminal

import "fmt"

// Window is a positioned view onto the screen grid. The root window
// covers the whole grid; sub-windows track their own dirty rows so they
// can be refreshed independently of the main diff pass.
type Window struct {
	screen *Screen

	begY, begX int
	maxY, maxX int
	curY, curX int

	keypad  bool
	delayMs int

	attr Attr
	bkgd Attr

	// nil for the root window
	dirtyRows []bool
}

// NewWindow creates a sub-window of the given geometry. Coordinates are
// screen-absolute; the window may extend past the screen edge, in which
// case writes to the overhang are clipped.
func (s *Screen) NewWindow(rows, cols, y, x int) *Window {
	if rows <= 0 || cols <= 0 {
		return nil
	}
	return &Window{
		screen:    s,
		begY:      y,
		begX:      x,
		maxY:      rows,
		maxX:      cols,
		delayMs:   -1,
		dirtyRows: make([]bool, rows),
	}
}

// Size returns the window geometry
func (w *Window) Size() (rows, cols int) {
	return w.maxY, w.maxX
}

// Move sets the window cursor; out-of-range positions clamp
func (w *Window) Move(y, x int) {
	if y < 0 {
		y = 0
	}
	if y >= w.maxY {
		y = w.maxY - 1
	}
	if x < 0 {
		x = 0
	}
	if x >= w.maxX {
		x = w.maxX - 1
	}
	w.curY, w.curX = y, x
}

// CursorYX returns the window cursor position
func (w *Window) CursorYX() (y, x int) {
	return w.curY, w.curX
}

// AttrOn merges attribute bits into the working attribute. Turning on a
// color pair replaces any previous pair.
func (w *Window) AttrOn(a Attr) {
	if a&attrColorMask != 0 {
		w.attr &^= attrColorMask
	}
	w.attr |= a
}

// AttrOff clears attribute bits from the working attribute
func (w *Window) AttrOff(a Attr) {
	w.attr &^= a
}

// SetAttr replaces the working attribute
func (w *Window) SetAttr(a Attr) {
	w.attr = a
}

// SetBackground sets the attribute used by Clear
func (w *Window) SetBackground(a Attr) {
	w.bkgd = a
}

// cellIndex maps window-local coordinates to a grid index, or -1 when
// the cell falls outside the window or the screen
func (w *Window) cellIndex(y, x int) int {
	if y < 0 || y >= w.maxY || x < 0 || x >= w.maxX {
		return -1
	}
	s := w.screen
	row, col := w.begY+y, w.begX+x
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return -1
	}
	return row*s.cols + col
}

// SetCell writes one byte with an attribute at window-local
// coordinates. Out-of-range writes are silently dropped. The snapshot
// is untouched; the next refresh decides whether output is needed.
func (w *Window) SetCell(y, x int, ch byte, attr Attr) {
	i := w.cellIndex(y, x)
	if i < 0 {
		return
	}
	s := w.screen
	s.cells[i] = ch
	s.attrs[i] = attr
	s.dirty.markCell(w.begY+y, w.begX+x)
	if w.dirtyRows != nil {
		w.dirtyRows[y] = true
	}
}

// Print writes a string at the window cursor using the working
// attribute, advancing the cursor. Bytes past the window edge are
// dropped. Multi-byte runes occupy one cell per byte, with trailing
// bytes flagged as continuations so the diff engine keeps a rune's
// bytes in one run.
func (w *Window) Print(text string) {
	for i := 0; i < len(text); i++ {
		b := text[i]
		if b == '\n' {
			w.curY++
			w.curX = 0
			if w.curY >= w.maxY {
				w.curY = w.maxY - 1
			}
			continue
		}
		// A wide glyph that cannot fit before the window edge becomes
		// a space rather than a half-rendered rune
		if b >= 0xC0 {
			rest := text[i:]
			if !validUTF8Seq(rest) {
				b = ' '
			} else if displayWidth(rest) > w.maxX-w.curX {
				for n := utf8SeqLen(b) - 1; n > 0 && i+1 < len(text); n-- {
					i++
				}
				b = ' '
			}
		}
		attr := w.attr
		if b&0xC0 == 0x80 {
			attr |= attrContinuation
		}
		w.SetCell(w.curY, w.curX, b, attr)
		w.curX++
		if w.curX >= w.maxX {
			w.curX = 0
			w.curY++
			if w.curY >= w.maxY {
				w.curY = w.maxY - 1
				w.curX = w.maxX - 1
				return
			}
		}
	}
}

// Printf formats and prints at the window cursor
func (w *Window) Printf(format string, args ...any) {
	w.Print(fmt.Sprintf(format, args...))
}

// PrintAt moves the cursor then prints
func (w *Window) PrintAt(y, x int, text string) {
	w.Move(y, x)
	w.Print(text)
}

// Clear fills the window with spaces in the background attribute and
// invalidates the covered snapshot so the next refresh repaints it
func (w *Window) Clear() {
	s := w.screen
	for y := 0; y < w.maxY; y++ {
		for x := 0; x < w.maxX; x++ {
			i := w.cellIndex(y, x)
			if i < 0 {
				continue
			}
			s.cells[i] = ' '
			s.attrs[i] = w.bkgd
			s.prevCells[i] = 0
			s.prevAttrs[i] = attrInvalid
			s.dirty.markCell(w.begY+y, w.begX+x)
		}
		if w.dirtyRows != nil {
			w.dirtyRows[y] = true
		}
	}
	w.curY, w.curX = 0, 0
}

// Refresh flushes this window's pending changes
func (w *Window) Refresh() {
	w.screen.refresh(w)
}

// SetTimeout sets the Getch wait in milliseconds; negative blocks
// indefinitely, zero polls
func (w *Window) SetTimeout(ms int) {
	w.delayMs = ms
}

// SetKeypad enables arrow-key decoding in Getch
func (w *Window) SetKeypad(on bool) {
	w.keypad = on
}
