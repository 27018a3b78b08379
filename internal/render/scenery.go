package render

import (
	"github.com/tomz197/forestshooter/internal/draw"
	"github.com/tomz197/forestshooter/internal/object"
)

// skyStops is the vertical background gradient, top to bottom.
var skyStops = []struct {
	at  float64
	hex string
}{
	{0, skyTop},
	{0.2, skyUpper},
	{0.6, skyLower},
	{1, skyBottom},
}

// skyAt returns the background colour at relative height t in [0, 1].
func skyAt(t float64) draw.Color {
	t = max(0, min(t, 1))
	for i := 1; i < len(skyStops); i++ {
		lo, hi := skyStops[i-1], skyStops[i]
		if t <= hi.at {
			return blend(draw.Hex(lo.hex), draw.Hex(hi.hex), (t-lo.at)/(hi.at-lo.at))
		}
	}
	return draw.Hex(skyStops[len(skyStops)-1].hex)
}

// blend mixes over into base with opacity alpha.
func blend(base, over draw.Color, alpha float64) draw.Color {
	alpha = max(0, min(alpha, 1))
	br, bg, bb := base.RGB()
	or, og, ob := over.RGB()
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*alpha + 0.5)
	}
	return draw.RGB(mix(br, or), mix(bg, og), mix(bb, ob))
}

type firefly struct {
	x, y, radius float64
	alpha        float64
	color        string
}

type tree struct {
	x, height, width float64
	alpha            float64
}

// scenery is the static forest backdrop of a session.
type scenery struct {
	seed      uint64
	fireflies []firefly
	trees     []tree
}

const (
	fireflyCount = 8
	treeCount    = 4
)

func newScenery(field object.Field, seed uint64) *scenery {
	rng := decorRand(seed)
	s := &scenery{seed: seed}
	for range fireflyCount {
		s.fireflies = append(s.fireflies, firefly{
			x:      rng.Float64() * field.Width,
			y:      rng.Float64() * field.Height * 0.7,
			radius: 16 + rng.Float64()*24,
			color:  object.GlowColors[rng.IntN(len(object.GlowColors))],
			alpha:  0.13 + rng.Float64()*0.1,
		})
	}
	for range treeCount {
		s.trees = append(s.trees, tree{
			x:      30 + rng.Float64()*(field.Width-60),
			height: 120 + rng.Float64()*70,
			width:  22 + rng.Float64()*22,
			alpha:  0.22 + rng.Float64()*0.11,
		})
	}
	return s
}

// sceneryFor returns s when it was built for seed, or a fresh scenery.
func sceneryFor(s *scenery, field object.Field, seed uint64) *scenery {
	if s != nil && s.seed == seed {
		return s
	}
	return newScenery(field, seed)
}
