// @focus: #terminal { pair }
package terminal

const (
	maxColorPairs  = 256
	commonPairsCap = 16
)

type commonPair struct {
	fg, bg Color
	pair   Color
}

// pairAllocator maps fg/bg combinations to pair numbers. Pair 0 is
// reserved for white on black. A small fixed table serves the most
// frequent combinations without hashing; everything else goes through
// the map. Allocation is bounded; past the limit combinations degrade
// to pair 0 rather than fail.
type pairAllocator struct {
	common   [commonPairsCap]commonPair
	commonN  int
	byColors map[uint16]Color
	defs     [maxColorPairs]struct{ fg, bg Color }
	nextPair Color

	degraded uint64
}

// Seed combinations, allocated pair numbers 1..10 in order
var seedPairs = [...]struct{ fg, bg Color }{
	{ColorWhite, ColorBlack},
	{ColorGreen, ColorBlack},
	{ColorRed, ColorBlack},
	{ColorYellow, ColorBlack},
	{ColorBlue, ColorBlack},
	{ColorCyan, ColorBlack},
	{ColorMagenta, ColorBlack},
	{ColorWhite, ColorRed},
	{ColorBlack, ColorWhite},
	{ColorBlack, ColorGreen},
}

func newPairAllocator() *pairAllocator {
	p := &pairAllocator{
		byColors: make(map[uint16]Color, 64),
	}
	p.defs[0] = struct{ fg, bg Color }{ColorWhite, ColorBlack}
	for i, s := range seedPairs {
		pair := Color(i + 1)
		p.common[p.commonN] = commonPair{fg: s.fg, bg: s.bg, pair: pair}
		p.commonN++
		p.defs[pair] = struct{ fg, bg Color }{s.fg, s.bg}
	}
	// Dynamic allocation starts past the seeded range
	p.nextPair = Color(len(seedPairs) + 1)
	return p
}

func pairKey(fg, bg Color) uint16 {
	return uint16(fg)<<8 | uint16(bg)&0xFF
}

// getOrAlloc returns the pair number for a combination, allocating a
// new one if needed. Returns 0 when the pair table is full or either
// color is out of palette range.
func (p *pairAllocator) getOrAlloc(fg, bg Color) Color {
	if fg < 0 || fg >= maxColors || bg < 0 || bg >= maxColors {
		p.degraded++
		return 0
	}
	if fg == ColorWhite && bg == ColorBlack {
		return 0
	}
	for i := 0; i < p.commonN; i++ {
		if p.common[i].fg == fg && p.common[i].bg == bg {
			return p.common[i].pair
		}
	}
	key := pairKey(fg, bg)
	if pair, ok := p.byColors[key]; ok {
		return pair
	}
	if p.nextPair >= maxColorPairs {
		p.degraded++
		return 0
	}
	pair := p.nextPair
	p.nextPair++
	p.byColors[key] = pair
	p.defs[pair] = struct{ fg, bg Color }{fg, bg}
	return pair
}

// colors returns the fg/bg of a pair number; out-of-range numbers read
// as the default white on black
func (p *pairAllocator) colors(pair Color) (fg, bg Color) {
	if pair < 0 || pair >= maxColorPairs {
		return ColorWhite, ColorBlack
	}
	d := p.defs[pair]
	return d.fg, d.bg
}

// define sets an explicit pair number to a combination
func (p *pairAllocator) define(pair, fg, bg Color) {
	p.defs[pair] = struct{ fg, bg Color }{fg, bg}
	p.byColors[pairKey(fg, bg)] = pair
}
