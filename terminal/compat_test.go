package terminal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestAttrMaskRoundTrip(t *testing.T) {
	masks := []tcell.AttrMask{
		tcell.AttrBold,
		tcell.AttrDim | tcell.AttrUnderline,
		tcell.AttrBlink | tcell.AttrReverse | tcell.AttrBold,
	}
	for _, m := range masks {
		if got := AttrToTcell(AttrFromTcell(m)); got != m {
			t.Errorf("round trip %v = %v", m, got)
		}
	}
}

func TestBasicFromRGB(t *testing.T) {
	tests := []struct {
		r, g, b int32
		want    Color
	}{
		{0, 0, 0, ColorBlack},
		{255, 0, 0, ColorRed},
		{0, 255, 0, ColorGreen},
		{255, 255, 0, ColorYellow},
		{0, 0, 255, ColorBlue},
		{255, 0, 255, ColorMagenta},
		{0, 255, 255, ColorCyan},
		{255, 255, 255, ColorWhite},
		{127, 127, 127, ColorBlack},
		{128, 128, 128, ColorWhite},
	}
	for _, tt := range tests {
		if got := basicFromRGB(tt.r, tt.g, tt.b); got != tt.want {
			t.Errorf("basicFromRGB(%d,%d,%d) = %d, want %d",
				tt.r, tt.g, tt.b, got, tt.want)
		}
	}
}

func TestStyleFromTcell(t *testing.T) {
	s, _ := testScreen(3, 10)

	st := tcell.StyleDefault.
		Foreground(tcell.NewRGBColor(255, 0, 0)).
		Background(tcell.NewRGBColor(0, 0, 0)).
		Bold(true)
	a := s.StyleFromTcell(st)

	if a&AttrBold == 0 {
		t.Error("bold flag lost")
	}
	fg, bg := s.pairs.colors(pairNumber(a))
	if fg != ColorRed || bg != ColorBlack {
		t.Errorf("resolved colors = %d/%d, want red/black", fg, bg)
	}
}

func TestColorFromTcell(t *testing.T) {
	if got := ColorFromTcell(tcell.ColorDefault); got != ColorWhite {
		t.Errorf("default color = %d, want white", got)
	}
	if got := ColorFromTcell(tcell.NewRGBColor(0, 0, 255)); got != ColorBlue {
		t.Errorf("blue = %d", got)
	}
}

func TestStyleFromTcellDefaultColors(t *testing.T) {
	s, _ := testScreen(3, 10)
	a := s.StyleFromTcell(tcell.StyleDefault)
	if pairNumber(a) != 0 {
		t.Errorf("default style pair = %d, want 0", pairNumber(a))
	}
}
