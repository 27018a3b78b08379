package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#d5ffea", RGB(0xd5, 0xff, 0xea)},
		{"000000", RGB(0, 0, 0)},
		{"#fff", NoColor},
		{"#zzzzzz", NoColor},
	}
	for _, tt := range tests {
		if got := Hex(tt.in); got != tt.want {
			t.Errorf("Hex(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}

	if RGB(0, 0, 0) == NoColor || !RGB(0, 0, 0).IsSet() {
		t.Error("black must be distinguishable from NoColor")
	}
	r, g, b := Hex("#102030").RGB()
	if r != 0x10 || g != 0x20 || b != 0x30 {
		t.Errorf("RGB() = %d,%d,%d", r, g, b)
	}
}

func pixelAt(c *Canvas, x, y int) Color {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return NoColor
	}
	return c.pixels[y*c.termWidth+x]
}

func TestFillCircleCoversCenter(t *testing.T) {
	// 1 logical unit per sub-pixel.
	c := NewScaledCanvas(20, 10, 20, 20)
	red := RGB(255, 0, 0)
	c.FillCircle(10, 10, 3, red)

	if pixelAt(c, 10, 10) != red {
		t.Error("center pixel not filled")
	}
	if pixelAt(c, 10, 12) != red || pixelAt(c, 8, 10) != red {
		t.Error("pixels inside the radius not filled")
	}
	if pixelAt(c, 10, 15) != NoColor || pixelAt(c, 4, 10) != NoColor {
		t.Error("pixels outside the radius were filled")
	}

	c.Clear()
	c.FillCircle(5.5, 5.5, 0.1, red)
	if pixelAt(c, 5, 5) != red {
		t.Error("tiny circle did not cover its center pixel")
	}
}

func TestRenderOnlySendsChanges(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	green := Hex("#8cd17d")
	c.FillRect(0, 0, 1, 2, green)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	first := out.String()
	if !strings.Contains(first, "\033[1;1H") || !strings.Contains(first, string(BlockFull)) {
		t.Fatalf("first render missing the filled cell: %q", first)
	}
	if !strings.Contains(first, "\033[38;2;140;209;125m") {
		t.Errorf("first render missing the colour escape: %q", first)
	}

	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("unchanged canvas re-sent %q", out.String())
	}

	c.Clear()
	out.Reset()
	c.Render(&out)
	if !strings.Contains(out.String(), "\033[1;1H") || !strings.Contains(out.String(), " ") {
		t.Errorf("cleared cell was not blanked: %q", out.String())
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(1, 1, 1, 2)
	top := RGB(1, 2, 3)
	bottom := RGB(4, 5, 6)
	c.SetFloat(0, 0, top)
	c.SetFloat(0, 1, bottom)

	var out bytes.Buffer
	c.Render(&out)
	got := out.String()
	if !strings.Contains(got, "\033[38;2;1;2;3m") || !strings.Contains(got, "\033[48;2;4;5;6m") {
		t.Errorf("two-colour cell should set fg and bg: %q", got)
	}
	if !strings.Contains(got, string(BlockUpperHalf)) {
		t.Errorf("two-colour cell should use the upper half block: %q", got)
	}
}

func TestFitAspect(t *testing.T) {
	tests := []struct {
		name                   string
		termW, termH           int
		wantW, wantH           int
		wantOffCol, wantOffRow int
	}{
		// 480x640 field: width = height * 2 * 0.75.
		{"wide terminal", 200, 40, 60, 40, 70, 0},
		{"narrow terminal", 30, 40, 30, 20, 0, 10},
		{"exact", 60, 40, 60, 40, 0, 0},
		{"degenerate", 0, 0, 1, 1, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := FitAspect(tt.termW, tt.termH, 480, 640)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffRow {
				t.Errorf("FitAspect(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
					tt.termW, tt.termH, w, h, oc, or, tt.wantW, tt.wantH, tt.wantOffCol, tt.wantOffRow)
			}
		})
	}
}

func TestChunkWriterOffsets(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 10, 5)
	cw.WriteAt(1, 1, "hi")
	cw.WriteCentered(10, 2, "ab", NoColor)
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	want := "\033[6;11Hhi\033[7;15Hab"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if cw.Len() != 0 {
		t.Error("Flush did not reset the buffer")
	}
}
