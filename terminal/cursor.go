// @focus: #terminal { cursor }
package terminal

const (
	cursorCacheRows = 100
	cursorCacheCols = 200
	cursorPoolSize  = 256

	// Above this Manhattan distance per axis, absolute positioning is
	// shorter than counted relative steps
	relativeMoveMax = 5
)

type cursorStats struct {
	noops     uint64
	relative  uint64
	poolHits  uint64
	cacheHits uint64
	absolutes uint64
}

// cursorTracker memoizes the physical cursor position and emits the
// cheapest motion sequence to reach a target cell. Hot positions near
// the screen origin and status rows come from a precomputed pool;
// other absolute positions are cached on first use.
type cursorTracker struct {
	lastRow, lastCol int

	pool  [cursorPoolSize][]byte
	cache [][]byte // lazily filled, cursorCacheRows*cursorCacheCols

	stats cursorStats
}

func newCursorTracker() *cursorTracker {
	c := &cursorTracker{
		lastRow: -1,
		lastCol: -1,
		cache:   make([][]byte, cursorCacheRows*cursorCacheCols),
	}
	for row := 0; row < 2; row++ {
		for col := 0; col < 40; col++ {
			c.pool[row*40+col] = appendCursorPos(nil, row, col)
		}
	}
	for row := 10; row < 16; row++ {
		for col := 0; col < 80; col += 5 {
			c.pool[80+(row-10)*16+col/5] = appendCursorPos(nil, row, col)
		}
	}
	return c
}

// poolIndex maps hot positions to a pool slot, -1 otherwise. Covered:
// the top two rows (menus, headers) and every fifth column of rows
// 10-15 (status areas).
func poolIndex(row, col int) int {
	if row < 2 && col < 40 {
		return row*40 + col
	}
	if row >= 10 && row < 16 && col < 80 && col%5 == 0 {
		return 80 + (row-10)*16 + col/5
	}
	return -1
}

// reset forgets the physical position, forcing the next move to be absolute
func (c *cursorTracker) reset() {
	c.lastRow = -1
	c.lastCol = -1
}

// moveTo writes the motion sequence for (row, col) and updates the
// tracked position
func (c *cursorTracker) moveTo(out *vecWriter, pool *internPool, row, col int) {
	if row == c.lastRow && col == c.lastCol {
		c.stats.noops++
		return
	}

	if c.lastRow >= 0 {
		dr, dc := row-c.lastRow, col-c.lastCol
		if abs(dr) <= relativeMoveMax && abs(dc) <= relativeMoveMax {
			c.stats.relative++
			var buf [16]byte
			seq := buf[:0]
			switch {
			case dr == 1 && col == 0:
				seq = append(seq, escCRLF...)
			case dr == 0 && col == 0 && c.lastCol > 0:
				seq = append(seq, escCR...)
			default:
				if dr > 0 {
					seq = appendCursorStep(seq, dr, 'B')
				} else if dr < 0 {
					seq = appendCursorStep(seq, -dr, 'A')
				}
				if dc > 0 {
					seq = appendCursorStep(seq, dc, 'C')
				} else if dc < 0 {
					seq = appendCursorStep(seq, -dc, 'D')
				}
			}
			out.writeBytes(seq)
			c.lastRow, c.lastCol = row, col
			return
		}
	}

	c.absolute(out, pool, row, col)
	c.lastRow, c.lastCol = row, col
}

func (c *cursorTracker) absolute(out *vecWriter, pool *internPool, row, col int) {
	if idx := poolIndex(row, col); idx >= 0 {
		c.stats.poolHits++
		out.writeBytes(c.pool[idx])
		return
	}
	if row < cursorCacheRows && col < cursorCacheCols {
		slot := row*cursorCacheCols + col
		seq := c.cache[slot]
		if seq == nil {
			seq = pool.intern(appendCursorPos(nil, row, col))
			c.cache[slot] = seq
		} else {
			c.stats.cacheHits++
		}
		out.writeBytes(seq)
		return
	}
	c.stats.absolutes++
	var buf [16]byte
	out.writeBytes(appendCursorPos(buf[:0], row, col))
}
