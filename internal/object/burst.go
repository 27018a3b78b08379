package object

// Burst owns a group of particles created together at one point. It lives until the
// last of its particles expires.
type Burst struct {
	X, Y      float64 // Origin
	particles []Particle
}

// NewBurst creates count particles around (x, y).
func NewBurst(x, y float64, count int, rng Rand) *Burst {
	if count < 0 {
		count = 0
	}
	b := &Burst{
		X:         x,
		Y:         y,
		particles: make([]Particle, count),
	}
	for i := range b.particles {
		b.particles[i] = NewParticle(x, y, rng)
	}
	return b
}

// Update advances every particle, then drops the expired ones.
func (b *Burst) Update(rng Rand) {
	for i := range b.particles {
		b.particles[i].Update(rng)
	}

	kept := b.particles[:0] // reuse backing array
	for _, p := range b.particles {
		if !p.IsExpired() {
			kept = append(kept, p)
		}
	}
	clear(b.particles[len(kept):])
	b.particles = kept
}

// IsEmpty reports whether every particle has expired.
func (b *Burst) IsEmpty() bool {
	return len(b.particles) == 0
}

// Len returns the number of live particles.
func (b *Burst) Len() int {
	return len(b.particles)
}

// AppendParticles appends copies of the live particles to dst.
func (b *Burst) AppendParticles(dst []Particle) []Particle {
	return append(dst, b.particles...)
}
