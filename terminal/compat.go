// @focus: #terminal { compat }
package terminal

import "github.com/gdamore/tcell/v2"

// Bridging helpers for code written against tcell's style model.

// AttrFromTcell converts tcell style flags to the packed attribute form
func AttrFromTcell(m tcell.AttrMask) Attr {
	var a Attr
	if m&tcell.AttrBold != 0 {
		a |= AttrBold
	}
	if m&tcell.AttrDim != 0 {
		a |= AttrDim
	}
	if m&tcell.AttrUnderline != 0 {
		a |= AttrUnderline
	}
	if m&tcell.AttrBlink != 0 {
		a |= AttrBlink
	}
	if m&tcell.AttrReverse != 0 {
		a |= AttrReverse
	}
	return a
}

// AttrToTcell converts packed style flags back to tcell's mask
func AttrToTcell(a Attr) tcell.AttrMask {
	var m tcell.AttrMask
	if a&AttrBold != 0 {
		m |= tcell.AttrBold
	}
	if a&AttrDim != 0 {
		m |= tcell.AttrDim
	}
	if a&AttrUnderline != 0 {
		m |= tcell.AttrUnderline
	}
	if a&AttrBlink != 0 {
		m |= tcell.AttrBlink
	}
	if a&AttrReverse != 0 {
		m |= tcell.AttrReverse
	}
	return m
}

// basicFromRGB snaps an RGB triple to the nearest of the 8 basic colors
func basicFromRGB(r, g, b int32) Color {
	var c Color
	if r >= 128 {
		c |= 1
	}
	if g >= 128 {
		c |= 2
	}
	if b >= 128 {
		c |= 4
	}
	return c
}

// ColorFromTcell maps a tcell color to the basic palette; default or
// invalid colors become white
func ColorFromTcell(c tcell.Color) Color {
	if !c.Valid() {
		return ColorWhite
	}
	r, g, b := c.RGB()
	return basicFromRGB(r, g, b)
}

// StyleFromTcell resolves a tcell style to a packed attribute, using
// the screen's pair allocator for the color combination
func (s *Screen) StyleFromTcell(st tcell.Style) Attr {
	fgc, bgc, mask := st.Decompose()

	fg, bg := ColorWhite, ColorBlack
	if fgc.Valid() {
		fg = ColorFromTcell(fgc)
	}
	if bgc.Valid() {
		bg = ColorFromTcell(bgc)
	}

	a := AttrFromTcell(mask)
	if pair := s.pairs.getOrAlloc(fg, bg); pair != 0 {
		a |= ColorPair(pair)
	}
	return a
}
