// Package render draws loop frames: Terminal for ANSI terminals (local or over
// SSH) and Raster for images written by headless replays.
package render

import (
	"image/color"
	"math/rand/v2"

	"github.com/tomz197/forestshooter/internal/draw"
	"github.com/tomz197/forestshooter/internal/object"
)

// Forest palettes.
var (
	ForestGreens  = []string{"#8cd17d", "#6ab97d", "#599c4e", "#b0e19c", "#3e7d48"}
	ForestFlowers = []string{"#e4d6f8", "#f7e9a0", "#f8b5d6", "#aef8e1", "#fadcda"}
	MushroomCaps  = []string{"#ee6d84", "#ffc94c", "#9d71e7", "#6ee7b7"}
)

// Fixed colours.
const (
	skyTop        = "#eafbe1"
	skyUpper      = "#c3efb2"
	skyLower      = "#8cd17d"
	skyBottom     = "#4b794d"
	treeColor     = "#284f34"
	spiritBody    = "#d7f7c2"
	spiritAura    = "#e6ffe7"
	bossBody      = "#c8fcdb"
	bossAura      = "#c0fbe8"
	spiritEye     = "#1a4932"
	spiritMouth   = "#2d5e3b"
	blush         = "#f8b5d6"
	moonGlow      = "#fffbe7"
	seedCore      = "#fffbe7"
	seedGlow      = "#bfffad"
	stemColor     = "#fffbe7"
	mushroomEye   = "#37291e"
	mushroomMouth = "#6a4733"
	scoreColor    = "#c1ffd7"
	scoreShadow   = "#23e083"
	savedColor    = "#34d39b"
)

// decorRand returns the random source for a frame's decorations. It is seeded
// from the session, so decorations hold still from frame to frame.
func decorRand(seed uint64) *rand.Rand {
	return object.NewRand(seed ^ 0x5eed)
}

// variantColor picks a palette entry for an enemy variant.
func variantColor(palette []string, variant, i int) string {
	return palette[(variant+i)%len(palette)]
}

// capColor picks the session's mushroom cap colour.
func capColor(seed uint64) string {
	return MushroomCaps[seed%uint64(len(MushroomCaps))]
}

// nrgba converts a hex colour and an opacity in [0, 1] to a color.Color.
func nrgba(hex string, alpha float64) color.NRGBA {
	r, g, b := draw.Hex(hex).RGB()
	alpha = max(0, min(alpha, 1))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}
}
