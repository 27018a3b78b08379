package object

import (
	"math"
)

// Particle tuning. A particle glows, drifts downward and fades out within
// roughly half a second at 60 ticks per second.
const (
	particleJitter     = 26.0  // spread of the spawn point around the burst origin
	particleDampX      = 0.97  // per-tick horizontal velocity damping
	particleDampY      = 0.98  // per-tick vertical velocity damping
	particleGravity    = 0.07  // per-tick downward drift
	particleShrink     = 0.992 // per-tick radius factor
	particleFadeMin    = 0.012 // minimum alpha lost per tick
	particleFadeJitter = 0.012

	// Expiry thresholds.
	ParticleMinAlpha  = 0.01
	ParticleMinRadius = 0.8
)

// Particle is a single decaying glow point.
type Particle struct {
	X, Y     float64 // Position
	VX, VY   float64 // Velocity per tick
	Alpha    float64 // Opacity, may start above 1
	Radius   float64 // Glow radius
	Age      int     // Ticks lived
	Lifetime float64 // Maximum age in ticks
	Color    string  // Hex colour from GlowColors
}

// NewParticle creates a particle near (x, y) flying in a random direction with an
// upward kick.
func NewParticle(x, y float64, rng Rand) Particle {
	angle := rng.Float64() * 2 * math.Pi
	speed := 0.5 + rng.Float64()*1.4

	return Particle{
		X:        x + (rng.Float64()-0.5)*particleJitter,
		Y:        y + (rng.Float64()-0.5)*particleJitter,
		VX:       math.Cos(angle) * speed * 0.5,
		VY:       math.Sin(angle)*speed*0.5 - (0.5 + rng.Float64()*0.7),
		Alpha:    0.7 + rng.Float64()*0.5,
		Radius:   2 + rng.Float64()*2.3,
		Lifetime: 22 + rng.Float64()*10,
		Color:    pick(rng, GlowColors),
	}
}

// Update advances the particle by one tick.
func (p *Particle) Update(rng Rand) {
	p.X += p.VX
	p.Y += p.VY
	p.VX *= particleDampX
	p.VY *= particleDampY
	p.VY += particleGravity
	p.Alpha -= particleFadeMin + rng.Float64()*particleFadeJitter
	p.Radius *= particleShrink
	p.Age++
}

// IsExpired reports whether the particle has faded, shrunk or outlived its lifetime.
func (p *Particle) IsExpired() bool {
	return p.Alpha <= ParticleMinAlpha || p.Radius <= ParticleMinRadius || float64(p.Age) > p.Lifetime
}
