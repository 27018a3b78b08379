package loop

import (
	"github.com/tomz197/forestshooter/internal/object"
)

// Frame is the read-only view of a session handed to renderers once per tick.
// Slices hold value copies and are reused between ticks: a renderer that keeps
// data past its Render call must copy it.
type Frame struct {
	Field          object.Field
	Tick           uint64
	BackgroundSeed uint64 // Stable for the whole session
	Score          int
	BossDefeated   bool
	Ended          bool

	Player      object.Player
	Enemies     []object.Enemy      // Creation order
	Projectiles []object.Projectile // Creation order
	Particles   []object.Particle   // All live burst particles
}

// BossActive reports whether a boss is on the field.
func (f *Frame) BossActive() bool {
	for i := range f.Enemies {
		if f.Enemies[i].IsBoss() {
			return true
		}
	}
	return false
}

// Stats counts the live entities of a frame.
type Stats struct {
	Enemies     int
	Projectiles int
	Particles   int
}

// Stats returns the entity counts of the frame.
func (f *Frame) Stats() Stats {
	return Stats{
		Enemies:     len(f.Enemies),
		Projectiles: len(f.Projectiles),
		Particles:   len(f.Particles),
	}
}

// buildFrame copies the finalized simulation state into the reusable frame.
func (g *Game) buildFrame() *Frame {
	f := &g.frame
	f.Field = g.field
	f.Tick = g.session.tick
	f.BackgroundSeed = g.seed
	f.Score = g.session.score
	f.BossDefeated = g.session.bossDefeated
	f.Ended = false
	f.Player = *g.player

	f.Enemies = f.Enemies[:0]
	for _, e := range g.enemies {
		f.Enemies = append(f.Enemies, *e)
	}

	f.Projectiles = f.Projectiles[:0]
	for _, p := range g.projectiles {
		f.Projectiles = append(f.Projectiles, *p)
	}

	f.Particles = f.Particles[:0]
	for _, b := range g.bursts {
		f.Particles = b.AppendParticles(f.Particles)
	}
	return f
}

// publish stores the outcome of the tick for Result.
func (g *Game) publish(ended bool) Result {
	res := Result{
		Score:        g.session.score,
		BossDefeated: g.session.bossDefeated,
		Ticks:        g.session.tick,
		Ended:        ended,
	}

	g.mu.Lock()
	g.result = res
	g.mu.Unlock()
	return res
}
