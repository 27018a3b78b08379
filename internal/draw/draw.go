// Package draw renders to ANSI terminals: a colour half-block Canvas scaled from
// logical field coordinates, a ChunkWriter for network-friendly output and a few
// cursor helpers.
package draw

import (
	"strconv"
	"strings"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is a 24-bit terminal colour. The zero Color is transparent.
type Color uint32

// NoColor leaves a pixel empty.
const NoColor Color = 0

const colorSet = 1 << 24

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color {
	return Color(colorSet | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// Hex parses "#rrggbb" (the leading # is optional). Invalid input yields NoColor.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return NoColor
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return NoColor
	}
	return Color(colorSet | uint32(v))
}

// IsSet reports whether the colour is opaque.
func (c Color) IsSet() bool {
	return c&colorSet != 0
}

// RGB returns the colour's components.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
