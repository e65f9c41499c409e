package terminal

import "testing"

func TestUTF8SeqLen(t *testing.T) {
	tests := []struct {
		b    byte
		want int
	}{
		{'a', 1},
		{0xC3, 2},
		{0xE4, 3},
		{0xF0, 4},
		{0x80, 1}, // bare continuation byte
		{0xFF, 1},
	}
	for _, tt := range tests {
		if got := utf8SeqLen(tt.b); got != tt.want {
			t.Errorf("utf8SeqLen(%#x) = %d, want %d", tt.b, got, tt.want)
		}
	}
}

func TestValidUTF8Seq(t *testing.T) {
	if !validUTF8Seq("a") {
		t.Error("ASCII rejected")
	}
	if !validUTF8Seq("é") {
		t.Error("two-byte sequence rejected")
	}
	if !validUTF8Seq("世") {
		t.Error("three-byte sequence rejected")
	}
	if validUTF8Seq("") {
		t.Error("empty string accepted")
	}
	if validUTF8Seq("\xC3") {
		t.Error("truncated sequence accepted")
	}
	if validUTF8Seq("\x80a") {
		t.Error("bare continuation byte accepted")
	}
}

func TestDisplayWidth(t *testing.T) {
	if got := displayWidth("a"); got != 1 {
		t.Errorf("width(a) = %d", got)
	}
	if got := displayWidth("é"); got != 1 {
		t.Errorf("width(é) = %d", got)
	}
	if got := displayWidth("世"); got != 2 {
		t.Errorf("width(世) = %d", got)
	}
	if got := displayWidth(""); got != 0 {
		t.Errorf("width(empty) = %d", got)
	}
}

func TestStringWidth(t *testing.T) {
	tests := []struct {
		s    string
		want int
	}{
		{"", 0},
		{"hello", 5},
		{"héllo", 5},
		{"日本語", 6},
		{"ab日", 4},
	}
	for _, tt := range tests {
		if got := StringWidth(tt.s); got != tt.want {
			t.Errorf("StringWidth(%q) = %d, want %d", tt.s, got, tt.want)
		}
	}
}

func TestPrintWideGlyphAtEdge(t *testing.T) {
	s, _ := testScreen(3, 4)
	w := s.Root()

	// One column left; the two-column glyph degrades to a space
	w.Move(0, 3)
	w.Print("世")
	if s.cells[3] != ' ' {
		t.Errorf("edge cell = %#x, want space", s.cells[3])
	}
}
