// @focus: #terminal { screen }
package terminal

import (
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/term"
)

// Screen owns the logical grid, the physical snapshot, and every cache
// involved in turning the difference between the two into terminal
// output. All rendering methods are single-threaded; only lifecycle
// (Init/Fini) and resize notification are safe from other goroutines.
type Screen struct {
	rows, cols int

	// Logical grid and last-known physical state, flat row-major
	cells     []byte
	attrs     []Attr
	prevCells []byte
	prevAttrs []Attr

	dirty  *dirtyTracker
	cursor *cursorTracker
	intern *internPool
	combos map[comboKey][]byte
	lru    *lruCache
	pairs  *pairAllocator
	out    *vecWriter

	// Last attribute state applied to the terminal
	attrFg, attrBg Color
	attrStyle      Attr
	attrValid      bool

	colorMode ColorMode
	colorDefs [maxColors]colorDef
	colorsOn  bool
	altScreen bool

	root *Window

	inFd, outFd int
	oldState    *term.State

	cursorVisible bool
	initialized   bool
	finalized     bool
	mu            sync.Mutex

	resizePending atomic.Bool
	resizeRows    atomic.Int32
	resizeCols    atomic.Int32

	stopCh chan struct{}

	scratch []byte
}

// New creates an uninitialized Screen. Color capability defaults to
// environment detection; pass an explicit mode to override.
func New(mode ...ColorMode) *Screen {
	m := DetectColorMode()
	if len(mode) > 0 {
		m = mode[0]
	}
	return newScreen(m)
}

func newScreen(mode ColorMode) *Screen {
	s := &Screen{
		dirty:     newDirtyTracker(),
		cursor:    newCursorTracker(),
		intern:    newInternPool(),
		combos:    make(map[comboKey][]byte, 64),
		lru:       newLRUCache(lruCacheSize),
		pairs:     newPairAllocator(),
		colorMode: mode,
		scratch:   make([]byte, 0, 512),
	}
	for i, d := range defaultColorDefs {
		s.colorDefs[i] = d
	}
	return s
}

// setupGrids allocates the grids for the given geometry. The logical
// grid starts blank; the snapshot starts invalid so the first refresh
// repaints everything it touches.
func (s *Screen) setupGrids(rows, cols int) {
	s.rows, s.cols = rows, cols
	n := rows * cols
	s.cells = make([]byte, n)
	s.attrs = make([]Attr, n)
	s.prevCells = make([]byte, n)
	s.prevAttrs = make([]Attr, n)
	for i := range s.cells {
		s.cells[i] = ' '
		s.prevAttrs[i] = attrInvalid
	}
	if s.root == nil {
		s.root = &Window{screen: s, maxY: rows, maxX: cols, delayMs: -1}
	} else {
		s.root.maxY, s.root.maxX = rows, cols
		if s.root.curY >= rows {
			s.root.curY = rows - 1
		}
		if s.root.curX >= cols {
			s.root.curX = cols - 1
		}
	}
}

// Root returns the full-screen window
func (s *Screen) Root() *Window {
	return s.root
}

// Size returns the current grid geometry
func (s *Screen) Size() (rows, cols int) {
	return s.rows, s.cols
}

// StartColor enables colored output when the mode allows it
func (s *Screen) StartColor() {
	s.colorsOn = s.colorMode != ColorModeMono
}

// InitColor redefines a palette entry using 0-1000 channel intensities
func (s *Screen) InitColor(c Color, r, g, b int16) error {
	if c < 0 || c >= maxColors {
		return fmt.Errorf("color %d out of range [0,%d)", c, maxColors)
	}
	if r < 0 || r > 1000 || g < 0 || g > 1000 || b < 0 || b > 1000 {
		return fmt.Errorf("color %d components out of range [0,1000]", c)
	}
	s.colorDefs[c] = colorDef{r, g, b}
	// Cached renditions built from the old definition are stale
	s.invalidateRenditions()
	return nil
}

// InitPair binds a pair number to a fg/bg combination
func (s *Screen) InitPair(pair, fg, bg Color) error {
	if pair < 1 || pair >= maxColorPairs {
		return fmt.Errorf("pair %d out of range [1,%d)", pair, maxColorPairs)
	}
	if fg < 0 || fg >= maxColors || bg < 0 || bg >= maxColors {
		return fmt.Errorf("pair %d colors out of range [0,%d)", pair, maxColors)
	}
	s.pairs.define(pair, fg, bg)
	s.invalidateRenditions()
	return nil
}

// AllocPair returns a pair number for the combination, allocating one
// when needed; degrades to pair 0 when the table is full
func (s *Screen) AllocPair(fg, bg Color) Color {
	return s.pairs.getOrAlloc(fg, bg)
}

func (s *Screen) invalidateRenditions() {
	for k := range s.combos {
		delete(s.combos, k)
	}
	s.lru = newLRUCache(lruCacheSize)
	s.attrValid = false
}

// SetCursorVisible shows or hides the terminal cursor
func (s *Screen) SetCursorVisible(visible bool) {
	if visible == s.cursorVisible {
		return
	}
	s.cursorVisible = visible
	if s.out == nil {
		return
	}
	if visible {
		s.out.writeStable(escCursorShow)
	} else {
		s.out.writeStable(escCursorHide)
	}
	s.out.flush()
}

// ClearScreen blanks both planes: the physical terminal is erased
// immediately, the logical grid resets to spaces, and everything is
// marked dirty so the next refresh re-derives a consistent state
func (s *Screen) ClearScreen() {
	if s.out != nil {
		s.out.writeStable(escClear)
		s.out.flush()
	}
	for i := range s.cells {
		s.cells[i] = ' '
		s.attrs[i] = 0
		s.prevCells[i] = 0
		s.prevAttrs[i] = attrInvalid
	}
	s.dirty.reset()
	s.dirty.markRegion(0, 0, s.rows-1, s.cols-1)
	s.cursor.reset()
	s.attrValid = false
}

// ResizeNotify records new terminal dimensions; the grids are rebuilt
// on the next refresh. Safe to call from a signal handling goroutine.
func (s *Screen) ResizeNotify(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	s.resizeRows.Store(int32(rows))
	s.resizeCols.Store(int32(cols))
	s.resizePending.Store(true)
}

// checkResize applies a pending resize before a refresh pass
func (s *Screen) checkResize() {
	if !s.resizePending.Swap(false) {
		return
	}
	rows := int(s.resizeRows.Load())
	cols := int(s.resizeCols.Load())
	if rows == s.rows && cols == s.cols {
		return
	}
	s.resizeTo(rows, cols)
}

// resizeTo rebuilds the grids, preserving overlapping logical content
// and invalidating the whole snapshot
func (s *Screen) resizeTo(rows, cols int) {
	oldCells, oldAttrs := s.cells, s.attrs
	oldRows, oldCols := s.rows, s.cols

	s.setupGrids(rows, cols)

	copyRows := min(rows, oldRows)
	copyCols := min(cols, oldCols)
	for r := 0; r < copyRows; r++ {
		copy(s.cells[r*cols:r*cols+copyCols], oldCells[r*oldCols:r*oldCols+copyCols])
		copy(s.attrs[r*cols:r*cols+copyCols], oldAttrs[r*oldCols:r*oldCols+copyCols])
	}

	s.dirty.reset()
	s.dirty.markRegion(0, 0, rows-1, cols-1)
	s.cursor.reset()
	s.attrValid = false

	if s.out != nil {
		s.out.writeStable(escClear)
	}
}

// applyAttributes emits the rendition for attr if it differs from the
// terminal's current state
func (s *Screen) applyAttributes(attr Attr) {
	style := attr & attrStyleMask
	var fg, bg Color = ColorWhite, ColorBlack
	if s.colorsOn && attr&attrColorMask != 0 {
		fg, bg = s.pairs.colors(pairNumber(attr))
	}
	if s.attrValid && fg == s.attrFg && bg == s.attrBg && style == s.attrStyle {
		return
	}
	s.out.writeStable(s.renditionFor(fg, bg, style))
	s.attrFg, s.attrBg, s.attrStyle = fg, bg, style
	s.attrValid = true
}

// renditionFor builds (or recalls) the SGR sequence for a resolved
// fg/bg/style combination
func (s *Screen) renditionFor(fg, bg Color, style Attr) []byte {
	key := comboKey{fg: fg, bg: bg, style: style}
	if seq, ok := s.combos[key]; ok {
		return seq
	}

	buf := make([]byte, 0, 48)
	buf = append(buf, csi...)
	buf = append(buf, '0')
	if style&AttrBold != 0 {
		buf = append(buf, ";1"...)
	}
	if style&AttrDim != 0 {
		buf = append(buf, ";2"...)
	}
	if style&AttrUnderline != 0 {
		buf = append(buf, ";4"...)
	}
	if style&AttrBlink != 0 {
		buf = append(buf, ";5"...)
	}
	if style&AttrReverse != 0 {
		buf = append(buf, ";7"...)
	}
	if s.colorMode != ColorModeMono {
		if fg != ColorWhite {
			if fg < 8 {
				buf = append(buf, ";3"...)
				buf = appendInt(buf, int(fg))
			} else {
				r, g, b := s.colorDefs[fg].scaled()
				buf = append(buf, ";38;2;"...)
				buf = appendInt(buf, r)
				buf = append(buf, ';')
				buf = appendInt(buf, g)
				buf = append(buf, ';')
				buf = appendInt(buf, b)
			}
		}
		if bg != ColorBlack {
			if bg < 8 {
				buf = append(buf, ";4"...)
				buf = appendInt(buf, int(bg))
			} else {
				r, g, b := s.colorDefs[bg].scaled()
				buf = append(buf, ";48;2;"...)
				buf = appendInt(buf, r)
				buf = append(buf, ';')
				buf = appendInt(buf, g)
				buf = append(buf, ';')
				buf = appendInt(buf, b)
			}
		}
	}
	buf = append(buf, 'm')

	seq := s.intern.intern(buf)
	if len(s.combos) < comboCacheSize {
		s.combos[key] = seq
	}
	return seq
}

func (s *Screen) resetAttrState() {
	s.attrValid = false
}
