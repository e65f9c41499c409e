// @focus: #terminal { color }
package terminal

// ColorMode describes the terminal's color capability
type ColorMode int

const (
	ColorModeMono ColorMode = iota
	ColorMode16
	ColorMode256
	ColorModeTrueColor
)

func (m ColorMode) String() string {
	switch m {
	case ColorModeMono:
		return "mono"
	case ColorMode16:
		return "16"
	case ColorMode256:
		return "256"
	case ColorModeTrueColor:
		return "truecolor"
	}
	return "unknown"
}

// Color indexes a palette entry or color pair
type Color int16

const (
	ColorBlack Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

const maxColors = 256

// colorDef stores channel intensities in the 0-1000 range; values
// already in 0-255 pass through unscaled
type colorDef struct {
	r, g, b int16
}

// scaled returns 0-255 channel values
func (c colorDef) scaled() (r, g, b int) {
	if c.r > 255 || c.g > 255 || c.b > 255 {
		return int(c.r) * 255 / 1000, int(c.g) * 255 / 1000, int(c.b) * 255 / 1000
	}
	return int(c.r), int(c.g), int(c.b)
}

// defaultColorDefs seeds the first 8 palette entries
var defaultColorDefs = [8]colorDef{
	{0, 0, 0},          // black
	{1000, 0, 0},       // red
	{0, 1000, 0},       // green
	{1000, 1000, 0},    // yellow
	{0, 0, 1000},       // blue
	{1000, 0, 1000},    // magenta
	{0, 1000, 1000},    // cyan
	{1000, 1000, 1000}, // white
}
