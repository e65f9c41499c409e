// @focus: #terminal { input }
package terminal

// Key codes returned by Getch. Printable bytes come back as themselves;
// decoded special keys use values above the byte range.
const (
	KeyErr   = -1
	KeyDown  = 258
	KeyUp    = 259
	KeyLeft  = 260
	KeyRight = 261
	KeyEnter = 0x10C
)
