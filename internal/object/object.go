// Package object holds the entities of a forest shooter session: the player, the
// projectiles it fires, the descending enemies and the particle bursts they leave.
//
// Entities are plain state with per-tick Update methods. They never draw themselves;
// renderers read copies of them from a loop.Frame.
package object

import (
	"math/rand/v2"

	"github.com/tomz197/forestshooter/internal/physics"
)

// Rand is the single source of randomness for spawns, bursts and visual variety.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a deterministic random source for the given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Field is the rectangular play area. The origin is the top-left corner and y grows
// downward.
type Field struct {
	Width  float64
	Height float64
}

// CenterX returns the horizontal center of the field.
func (f Field) CenterX() float64 {
	return f.Width / 2
}

// ClampX keeps a circle of the given radius fully inside the field horizontally.
func (f Field) ClampX(x, radius float64) float64 {
	return physics.Clamp(x, radius, f.Width-radius)
}

// GlowColors is the particle palette.
var GlowColors = []string{"#d5ffea", "#fff7be", "#e7e2ff", "#ffe6f4"}

// pick returns a random element of a palette.
func pick(rng Rand, palette []string) string {
	return palette[rng.IntN(len(palette))]
}
