// @focus: #terminal { width }
package terminal

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// utf8SeqLen returns the byte length of the UTF-8 sequence starting
// with b, or 1 for invalid lead bytes
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 1
}

// validUTF8Seq reports whether s begins with a complete, well-formed
// UTF-8 sequence
func validUTF8Seq(s string) bool {
	if len(s) == 0 {
		return false
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s[0] < 0x80
	}
	return size >= utf8SeqLen(s[0])
}

// displayWidth returns the terminal column count of the first rune in
// s; never less than 1 so layout arithmetic cannot stall
func displayWidth(s string) int {
	if len(s) == 0 {
		return 0
	}
	if s[0] < 0x80 {
		return 1
	}
	r, _ := utf8.DecodeRuneInString(s)
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	return w
}

// StringWidth returns the terminal column count of a whole string
func StringWidth(s string) int {
	total := 0
	for len(s) > 0 {
		if s[0] < 0x80 {
			total++
			s = s[1:]
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		w := runewidth.RuneWidth(r)
		if w < 1 {
			w = 1
		}
		total += w
		s = s[size:]
	}
	return total
}
