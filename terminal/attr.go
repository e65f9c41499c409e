// @focus: #terminal { attr }
package terminal

// Attr packs a color pair number and style flags into a single word.
// Bits 8-15 carry the pair number, bits 17-21 carry styles, bit 31
// marks a wide-rune continuation cell.
type Attr uint32

const (
	AttrNormal    Attr = 0
	AttrUnderline Attr = 1 << 17
	AttrReverse   Attr = 1 << 18
	AttrBlink     Attr = 1 << 19
	AttrDim       Attr = 1 << 20
	AttrBold      Attr = 1 << 21
)

const (
	attrColorMask Attr = 0xFF00
	attrStyleMask      = AttrUnderline | AttrReverse | AttrBlink | AttrDim | AttrBold

	// attrContinuation flags trailing cells of a multi-column rune
	attrContinuation Attr = 1 << 31

	// attrInvalid is the snapshot sentinel; no valid attribute has all bits set
	attrInvalid Attr = ^Attr(0)
)

// ColorPair converts a pair number to its attribute representation
func ColorPair(n Color) Attr {
	return Attr(n) << 8 & attrColorMask
}

// pairNumber extracts the pair number from an attribute
func pairNumber(a Attr) Color {
	return Color(a & attrColorMask >> 8)
}
