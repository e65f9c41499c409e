// @focus: #terminal { dirty }
package terminal

// Tile geometry for hierarchical dirty tracking. L1 tiles are 8x8 cells,
// L2 blocks are 32x32. The bitmaps bound the largest trackable screen;
// cells past the bitmap edge still widen the bounding rectangle.
const (
	tileL1Size = 8
	tileL2Size = 32

	maxL1TilesX  = 128
	maxL1TilesY  = 64
	maxL2BlocksX = 32
	maxL2BlocksY = 16

	l1BitmapWords = maxL1TilesX * maxL1TilesY / 64
	l2BitmapWords = maxL2BlocksX * maxL2BlocksY / 64

	dirtyTilePoolSize = 512

	// Strategy re-evaluation window in frames
	strategyWindow = 60
)

const nilTile = -1

// dirtyTile is a node in the sparse tile list, allocated from a fixed arena
type dirtyTile struct {
	row, col uint16
	next     int16
}

type dirtyStats struct {
	cellsMarked  uint64
	sparseScans  uint64
	denseScans   uint64
	poolExhausts uint64
}

// dirtyTracker records modified cells at three granularities: a bounding
// rectangle, 8x8 L1 tiles, and 32x32 L2 blocks. The tile lists give the
// sparse scan path; the bounding rectangle backs the dense path and is
// always correct even when the tile pool runs dry.
type dirtyTracker struct {
	minRow, maxRow int
	minCol, maxCol int

	l1Bitmap [l1BitmapWords]uint64
	l2Bitmap [l2BitmapWords]uint64

	pool     [dirtyTilePoolSize]dirtyTile
	freeHead int16
	l1Head   int16
	l2Head   int16
	l1Count  int

	// sparseComplete is cleared when tile allocation fails; the sparse
	// scan would then miss cells, so only the dense path may be used
	sparseComplete bool

	frameCount            int
	sparseBeneficialCount int
	preferSparse          bool

	stats dirtyStats
}

func newDirtyTracker() *dirtyTracker {
	d := &dirtyTracker{}
	d.initPool()
	d.resetRect()
	d.sparseComplete = true
	d.preferSparse = true
	return d
}

func (d *dirtyTracker) initPool() {
	for i := range d.pool {
		d.pool[i].next = int16(i + 1)
	}
	d.pool[dirtyTilePoolSize-1].next = nilTile
	d.freeHead = 0
	d.l1Head = nilTile
	d.l2Head = nilTile
	d.l1Count = 0
}

func (d *dirtyTracker) resetRect() {
	d.minRow = 1 << 30
	d.minCol = 1 << 30
	d.maxRow = -1
	d.maxCol = -1
}

func (d *dirtyTracker) hasChanges() bool {
	return d.maxRow >= d.minRow
}

func (d *dirtyTracker) allocTile(row, col uint16, head *int16) bool {
	idx := d.freeHead
	if idx == nilTile {
		d.stats.poolExhausts++
		return false
	}
	d.freeHead = d.pool[idx].next
	d.pool[idx] = dirtyTile{row: row, col: col, next: *head}
	*head = idx
	return true
}

// markCell records one modified cell
func (d *dirtyTracker) markCell(row, col int) {
	d.stats.cellsMarked++

	if row < d.minRow {
		d.minRow = row
	}
	if row > d.maxRow {
		d.maxRow = row
	}
	if col < d.minCol {
		d.minCol = col
	}
	if col > d.maxCol {
		d.maxCol = col
	}

	// Bitmap bits are set only once a list node exists; reset clears
	// bits by walking the lists, so a bit without a node would leak
	// and dedupe marks in that tile forever
	t1r, t1c := row/tileL1Size, col/tileL1Size
	if t1r < maxL1TilesY && t1c < maxL1TilesX {
		bit := t1r*maxL1TilesX + t1c
		word, mask := bit/64, uint64(1)<<(bit%64)
		if d.l1Bitmap[word]&mask == 0 {
			if d.allocTile(uint16(t1r), uint16(t1c), &d.l1Head) {
				d.l1Bitmap[word] |= mask
				d.l1Count++
			} else {
				d.sparseComplete = false
			}
		}
	} else {
		d.sparseComplete = false
	}

	t2r, t2c := row/tileL2Size, col/tileL2Size
	if t2r < maxL2BlocksY && t2c < maxL2BlocksX {
		bit := t2r*maxL2BlocksX + t2c
		word, mask := bit/64, uint64(1)<<(bit%64)
		if d.l2Bitmap[word]&mask == 0 {
			if d.allocTile(uint16(t2r), uint16(t2c), &d.l2Head) {
				d.l2Bitmap[word] |= mask
			} else {
				d.sparseComplete = false
			}
		}
	}
}

// markRegion records a rectangular cell range, inclusive of both corners
func (d *dirtyTracker) markRegion(r0, c0, r1, c1 int) {
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			d.markCell(r, c)
		}
	}
}

// reset returns all tiles to the free list and clears per-tile bitmap
// bits by walking the lists, so cost is proportional to tiles used
func (d *dirtyTracker) reset() {
	for idx := d.l1Head; idx != nilTile; {
		t := &d.pool[idx]
		bit := int(t.row)*maxL1TilesX + int(t.col)
		d.l1Bitmap[bit/64] &^= uint64(1) << (bit % 64)
		next := t.next
		t.next = d.freeHead
		d.freeHead = idx
		idx = next
	}
	for idx := d.l2Head; idx != nilTile; {
		t := &d.pool[idx]
		bit := int(t.row)*maxL2BlocksX + int(t.col)
		d.l2Bitmap[bit/64] &^= uint64(1) << (bit % 64)
		next := t.next
		t.next = d.freeHead
		d.freeHead = idx
		idx = next
	}
	d.l1Head = nilTile
	d.l2Head = nilTile
	d.l1Count = 0
	d.sparseComplete = true
	d.resetRect()
}

// l2Dirty reports whether the 32x32 block containing (row, col) saw
// any marks this frame; off-bitmap positions read dirty
func (d *dirtyTracker) l2Dirty(row, col int) bool {
	t2r, t2c := row/tileL2Size, col/tileL2Size
	if t2r >= maxL2BlocksY || t2c >= maxL2BlocksX {
		return true
	}
	bit := t2r*maxL2BlocksX + t2c
	return d.l2Bitmap[bit/64]&(uint64(1)<<(bit%64)) != 0
}

// useSparse decides the scan strategy for a frame, given the area of
// the tightened bounding rectangle. A frame is sparse-beneficial when
// the tiles cover under a third of the rectangle; the preference
// adapts every 60 frames with hysteresis so one outlier frame cannot
// flip the strategy.
func (d *dirtyTracker) useSparse(rectArea int) bool {
	if !d.sparseComplete || d.l1Count == 0 {
		d.stats.denseScans++
		return false
	}

	tileArea := d.l1Count * tileL1Size * tileL1Size
	beneficial := tileArea*3 < rectArea

	d.frameCount++
	if beneficial {
		d.sparseBeneficialCount++
	}
	if d.frameCount >= strategyWindow {
		switch {
		case d.sparseBeneficialCount > strategyWindow/2:
			d.preferSparse = true
		case d.sparseBeneficialCount < strategyWindow/4:
			d.preferSparse = false
		}
		d.frameCount = 0
		d.sparseBeneficialCount = 0
	}

	if d.preferSparse && beneficial {
		d.stats.sparseScans++
		return true
	}
	d.stats.denseScans++
	return false
}
