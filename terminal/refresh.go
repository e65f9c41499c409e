// @focus: #terminal { refresh }
package terminal

import "bytes"

// Up to this many unchanged cells are absorbed into a run when doing so
// is cheaper than a fresh cursor motion
const maxRunGap = 3

// Refresh flushes pending logical changes on the root window to the
// terminal
func (s *Screen) Refresh() {
	s.refresh(s.root)
}

func (s *Screen) refresh(w *Window) {
	if w == nil || s.out == nil {
		return
	}
	if w == s.root {
		s.refreshRoot()
	} else {
		s.refreshWindow(w)
	}
}

func (s *Screen) refreshRoot() {
	s.checkResize()

	d := s.dirty
	if !d.hasChanges() {
		return
	}

	s.out.setAutoFlush(false)

	minRow, maxRow, minCol, maxCol := s.tightenRect()
	if minRow > maxRow {
		s.out.setAutoFlush(true)
		d.reset()
		return
	}

	area := (maxRow - minRow + 1) * (maxCol - minCol + 1)
	emitted := false
	if d.useSparse(area) {
		emitted = s.scanSparse(minRow, maxRow, minCol, maxCol)
	} else {
		for row := minRow; row <= maxRow; row++ {
			if s.scanRowBlocks(row, minCol, maxCol) {
				emitted = true
			}
		}
	}

	if emitted {
		s.out.writeStable(escReset)
		s.resetAttrState()
	}
	s.out.flush()
	s.out.setAutoFlush(true)
	d.reset()
}

// tightenRect clamps the recorded bounding rectangle to the grid and
// shrinks it inward past rows and columns that turn out identical to
// the snapshot
func (s *Screen) tightenRect() (minRow, maxRow, minCol, maxCol int) {
	d := s.dirty
	minRow = max(d.minRow, 0)
	minCol = max(d.minCol, 0)
	maxRow = min(d.maxRow, s.rows-1)
	maxCol = min(d.maxCol, s.cols-1)

	for minRow <= maxRow && !s.rowChanged(minRow, minCol, maxCol) {
		minRow++
	}
	for maxRow >= minRow && !s.rowChanged(maxRow, minCol, maxCol) {
		maxRow--
	}
	if minRow > maxRow {
		return
	}
	for minCol <= maxCol && !s.colChanged(minCol, minRow, maxRow) {
		minCol++
	}
	for maxCol >= minCol && !s.colChanged(maxCol, minRow, maxRow) {
		maxCol--
	}
	return
}

func (s *Screen) rowChanged(row, c0, c1 int) bool {
	base := row * s.cols
	if !bytes.Equal(s.cells[base+c0:base+c1+1], s.prevCells[base+c0:base+c1+1]) {
		return true
	}
	for i := base + c0; i <= base+c1; i++ {
		if s.attrs[i] != s.prevAttrs[i] {
			return true
		}
	}
	return false
}

func (s *Screen) colChanged(col, r0, r1 int) bool {
	for r := r0; r <= r1; r++ {
		i := r*s.cols + col
		if s.cells[i] != s.prevCells[i] || s.attrs[i] != s.prevAttrs[i] {
			return true
		}
	}
	return false
}

// scanSparse walks the L1 tile list, scanning only tile rows that
// intersect the tightened rectangle. Tile scans skip gap coalescing;
// tiles are small enough that split runs cost little.
func (s *Screen) scanSparse(minRow, maxRow, minCol, maxCol int) bool {
	emitted := false
	for idx := s.dirty.l1Head; idx != nilTile; idx = s.dirty.pool[idx].next {
		t := s.dirty.pool[idx]
		r0 := max(int(t.row)*tileL1Size, minRow)
		r1 := min(int(t.row)*tileL1Size+tileL1Size-1, maxRow)
		c0 := max(int(t.col)*tileL1Size, minCol)
		c1 := min(int(t.col)*tileL1Size+tileL1Size-1, maxCol)
		for row := r0; row <= r1; row++ {
			if s.scanRow(row, c0, c1, 0) {
				emitted = true
			}
		}
	}
	return emitted
}

// scanRowBlocks scans one row of the dense path, consulting the L2
// block bitmap to skip 32-column stretches that saw no marks. Adjacent
// dirty stretches merge into one segment so runs still coalesce across
// block boundaries.
func (s *Screen) scanRowBlocks(row, c0, c1 int) bool {
	d := s.dirty
	if !d.sparseComplete {
		return s.scanRow(row, c0, c1, maxRunGap)
	}

	emitted := false
	segStart := -1
	for c := c0; c <= c1; {
		blockEnd := min((c/tileL2Size+1)*tileL2Size-1, c1)
		if d.l2Dirty(row, c) {
			if segStart < 0 {
				segStart = c
			}
		} else if segStart >= 0 {
			if s.scanRow(row, segStart, c-1, maxRunGap) {
				emitted = true
			}
			segStart = -1
		}
		c = blockEnd + 1
	}
	if segStart >= 0 && s.scanRow(row, segStart, c1, maxRunGap) {
		emitted = true
	}
	return emitted
}

// scanRow finds changed runs in one row segment and emits them. A run
// extends across changed cells sharing an attribute, absorbing up to
// gap unchanged cells whose attribute also matches; trailing absorbed
// cells are trimmed before emission.
func (s *Screen) scanRow(row, c0, c1, gap int) bool {
	base := row * s.cols
	emitted := false

	runStart := -1
	runEnd := -1
	var runAttr Attr
	pending := 0

	flush := func() {
		if runStart >= 0 {
			s.emitRun(row, runStart, runEnd, runAttr)
			emitted = true
			runStart = -1
		}
	}

	for x := c0; x <= c1; x++ {
		i := base + x
		changed := s.cells[i] != s.prevCells[i] || s.attrs[i] != s.prevAttrs[i]
		a := s.attrs[i] &^ attrContinuation

		if runStart < 0 {
			if changed {
				runStart, runEnd, runAttr = x, x, a
				pending = 0
			}
			continue
		}

		if a != runAttr {
			flush()
			if changed {
				runStart, runEnd, runAttr = x, x, a
				pending = 0
			}
			continue
		}

		if changed {
			runEnd = x
			pending = 0
			continue
		}
		pending++
		if pending > gap {
			flush()
			pending = 0
		}
	}
	flush()
	return emitted
}

// emitRun positions the cursor, applies the run attribute, and writes
// the cell bytes, committing them to the snapshot
func (s *Screen) emitRun(row, startX, endX int, attr Attr) {
	s.cursor.moveTo(s.out, s.intern, row, startX)
	s.applyAttributes(attr)

	base := row * s.cols
	buf := s.scratch[:0]
	for x := startX; x <= endX; x++ {
		i := base + x
		buf = append(buf, s.cells[i])
		s.prevCells[i] = s.cells[i]
		s.prevAttrs[i] = s.attrs[i]
	}
	s.scratch = buf[:0]
	s.out.writeBytes(buf)

	// Writing the last column leaves the terminal in a pending-wrap
	// state; forget the position rather than reason about it
	if endX+1 >= s.cols {
		s.cursor.reset()
	} else {
		s.cursor.lastRow = row
		s.cursor.lastCol = endX + 1
	}
}

// refreshWindow re-emits every dirty row of a sub-window in full,
// grouped into attribute runs. Emitted cells are committed to the
// snapshot so a following root refresh has nothing left to do.
func (s *Screen) refreshWindow(w *Window) {
	if w.dirtyRows == nil {
		return
	}

	s.out.setAutoFlush(false)
	emitted := false

	for r := 0; r < w.maxY; r++ {
		if !w.dirtyRows[r] {
			continue
		}
		w.dirtyRows[r] = false

		row := w.begY + r
		if row < 0 || row >= s.rows {
			continue
		}
		c0 := max(w.begX, 0)
		c1 := min(w.begX+w.maxX-1, s.cols-1)
		if c0 > c1 {
			continue
		}

		base := row * s.cols
		x := c0
		for x <= c1 {
			runAttr := s.attrs[base+x] &^ attrContinuation
			end := x
			for end+1 <= c1 && s.attrs[base+end+1]&^attrContinuation == runAttr {
				end++
			}
			buf := s.scratch[:0]
			for i := base + x; i <= base+end; i++ {
				buf = append(buf, s.cells[i])
				s.prevCells[i] = s.cells[i]
				s.prevAttrs[i] = s.attrs[i]
			}
			s.scratch = buf[:0]
			s.emitPositionedRun(row, x, runAttr, buf)
			emitted = true
			x = end + 1
		}
	}

	if emitted {
		s.out.writeStable(escReset)
		s.resetAttrState()
	}
	s.out.flush()
	s.out.setAutoFlush(true)
}

// emitPositionedRun writes a run whose start position and rendition are
// cached together, cutting per-row overhead for repeatedly redrawn
// window regions
func (s *Screen) emitPositionedRun(row, col int, attr Attr, chars []byte) {
	style := attr & attrStyleMask
	var fg, bg Color = ColorWhite, ColorBlack
	if s.colorsOn && attr&attrColorMask != 0 {
		fg, bg = s.pairs.colors(pairNumber(attr))
	}

	if s.attrValid && fg == s.attrFg && bg == s.attrBg && style == s.attrStyle {
		s.cursor.moveTo(s.out, s.intern, row, col)
	} else {
		key := renditionKey{fg: fg, bg: bg, style: style, row: int16(row), col: int16(col)}
		seq := s.lru.get(key)
		if seq == nil {
			seq = appendCursorPos(nil, row, col)
			seq = append(seq, s.renditionFor(fg, bg, style)...)
			s.lru.put(key, seq)
		}
		s.out.writeStable(seq)
		s.attrFg, s.attrBg, s.attrStyle = fg, bg, style
		s.attrValid = true
	}

	s.out.writeBytes(chars)
	if col+len(chars) >= s.cols {
		s.cursor.reset()
	} else {
		s.cursor.lastRow = row
		s.cursor.lastCol = col + len(chars)
	}
}
