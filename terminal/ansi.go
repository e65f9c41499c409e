// @focus: #terminal { ansi }
package terminal

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	csi = []byte("\x1b[")

	escReset = []byte("\x1b[0m")
	escClear = []byte("\x1b[2J\x1b[H")

	escCursorHide = []byte("\x1b[?25l")
	escCursorShow = []byte("\x1b[?25h")

	escAltScreenEnter = []byte("\x1b[?1049h")
	escAltScreenExit  = []byte("\x1b[?1049l")

	// Relative motion special cases
	escCRLF = []byte("\r\n")
	escCR   = []byte("\r")
)

// appendInt appends n in decimal without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func appendInt(buf []byte, n int) []byte {
	if n < 0 {
		n = 0
	}
	switch {
	case n < 10:
		return append(buf, byte(n)+'0')
	case n < 100:
		return append(buf, byte(n/10)+'0', byte(n%10)+'0')
	case n < 1000:
		return append(buf, byte(n/100)+'0', byte(n/10%10)+'0', byte(n%10)+'0')
	}
	// Fallback for >999 (rare)
	var tmp [8]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte(n%10) + '0'
		n /= 10
	}
	return append(buf, tmp[i:]...)
}

// appendCursorPos appends an absolute positioning sequence (0-indexed input)
func appendCursorPos(buf []byte, row, col int) []byte {
	buf = append(buf, csi...)
	buf = appendInt(buf, row+1)
	buf = append(buf, ';')
	buf = appendInt(buf, col+1)
	return append(buf, 'H')
}

// appendCursorStep appends a counted single-direction motion; dir is the
// final CSI byte (A up, B down, C forward, D back)
func appendCursorStep(buf []byte, n int, dir byte) []byte {
	if n <= 0 {
		return buf
	}
	if n == 1 {
		return append(buf, 0x1b, '[', dir)
	}
	buf = append(buf, csi...)
	buf = appendInt(buf, n)
	return append(buf, dir)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
