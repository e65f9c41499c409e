//go:build unix

// @focus: #terminal { detect }
package terminal

import (
	"os"
	"strings"
)

// Terminals known to support 24-bit color even when COLORTERM is unset
var truecolorTerminals = []string{
	"xterm-kitty",
	"alacritty",
	"wezterm",
	"foot",
	"contour",
}

// DetectColorMode inspects the environment to pick a color capability.
// Detection is env-only; no terminfo database is consulted.
func DetectColorMode() ColorMode {
	term := os.Getenv("TERM")
	if term == "" || term == "dumb" {
		return ColorModeMono
	}

	colorterm := os.Getenv("COLORTERM")
	if colorterm == "truecolor" || colorterm == "24bit" {
		return ColorModeTrueColor
	}

	// Terminal-specific env markers
	if os.Getenv("KITTY_WINDOW_ID") != "" ||
		os.Getenv("KONSOLE_VERSION") != "" ||
		os.Getenv("ITERM_SESSION_ID") != "" ||
		os.Getenv("WEZTERM_EXECUTABLE") != "" ||
		os.Getenv("ALACRITTY_WINDOW_ID") != "" {
		return ColorModeTrueColor
	}

	for _, t := range truecolorTerminals {
		if term == t {
			return ColorModeTrueColor
		}
	}

	if strings.Contains(term, "256") {
		return ColorMode256
	}

	return ColorMode16
}

// altScreenSupported reports whether the alternate screen buffer is safe
// to use with the current TERM
func altScreenSupported() bool {
	term := os.Getenv("TERM")
	return term != "" && term != "dumb"
}
