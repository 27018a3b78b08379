package object

import (
	"math"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// fixedRand returns the same values on every call, which makes particle decay exact.
type fixedRand struct {
	f float64
	n int
}

func (r fixedRand) Float64() float64 { return r.f }
func (r fixedRand) IntN(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

func TestParticleExpiresAfterLifetime(t *testing.T) {
	rng := fixedRand{f: 0}
	p := NewParticle(100, 100, rng)

	// With zero randomness: alpha 0.7, radius 2, lifetime 22.
	if p.Lifetime != 22 {
		t.Fatalf("Lifetime = %v, want 22", p.Lifetime)
	}

	// Keep alpha and radius high so only age can expire the particle.
	for i := 0; i < 22; i++ {
		p.Alpha = 1
		p.Radius = 4
		p.Update(rng)
		if p.IsExpired() {
			t.Fatalf("particle expired early at age %d", p.Age)
		}
	}

	p.Alpha = 1
	p.Radius = 4
	p.Update(rng)
	if !p.IsExpired() {
		t.Errorf("particle at age %d with lifetime %v should be expired", p.Age, p.Lifetime)
	}
}

func TestParticleExpiryThresholds(t *testing.T) {
	tests := []struct {
		name string
		p    Particle
		want bool
	}{
		{"fresh", Particle{Alpha: 1, Radius: 3, Lifetime: 30}, false},
		{"faded", Particle{Alpha: 0.01, Radius: 3, Lifetime: 30}, true},
		{"shrunk", Particle{Alpha: 1, Radius: 0.8, Lifetime: 30}, true},
		{"old", Particle{Alpha: 1, Radius: 3, Age: 31, Lifetime: 30}, true},
		{"at lifetime", Particle{Alpha: 1, Radius: 3, Age: 30, Lifetime: 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.IsExpired(); got != tt.want {
				t.Errorf("IsExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParticleUpdateDampingAndDrift(t *testing.T) {
	p := Particle{X: 10, Y: 10, VX: 1, VY: -1, Alpha: 1, Radius: 2, Lifetime: 30}
	p.Update(fixedRand{f: 0})

	if p.X != 11 || p.Y != 9 {
		t.Errorf("position = (%v, %v), want (11, 9)", p.X, p.Y)
	}
	if !approx(p.VX, 0.97) {
		t.Errorf("VX = %v, want 0.97", p.VX)
	}
	if want := -0.98 + 0.07; !approx(p.VY, want) {
		t.Errorf("VY = %v, want %v", p.VY, want)
	}
	if want := 1 - 0.012; !approx(p.Alpha, want) {
		t.Errorf("Alpha = %v, want %v", p.Alpha, want)
	}
	if p.Age != 1 {
		t.Errorf("Age = %d, want 1", p.Age)
	}
}

func TestBurstEmptiesWhenLastParticleExpires(t *testing.T) {
	rng := NewRand(7)
	b := NewBurst(50, 50, 12, rng)
	if b.IsEmpty() || b.Len() != 12 {
		t.Fatalf("new burst has %d particles, want 12", b.Len())
	}

	// Lifetime is at most 32 ticks, so everything is gone after 33 updates.
	for i := 0; i < 40; i++ {
		before := b.Len()
		b.Update(rng)
		if b.Len() > before {
			t.Fatalf("burst grew from %d to %d", before, b.Len())
		}
		if b.IsEmpty() != (b.Len() == 0) {
			t.Fatalf("IsEmpty() = %v with %d particles", b.IsEmpty(), b.Len())
		}
	}
	if !b.IsEmpty() {
		t.Errorf("burst still has %d particles after 40 ticks", b.Len())
	}
}

func TestBurstAppendParticlesCopies(t *testing.T) {
	b := NewBurst(0, 0, 3, NewRand(1))
	got := b.AppendParticles(nil)
	if len(got) != 3 {
		t.Fatalf("AppendParticles returned %d particles, want 3", len(got))
	}
	got[0].X = 9999
	if again := b.AppendParticles(nil); again[0].X == 9999 {
		t.Error("mutating a copied particle changed the burst")
	}
}

func TestEnemyDamage(t *testing.T) {
	e := NewEnemy(100, 0, EnemyBoss, DefaultBossStats, NewRand(1))

	for hit := 1; hit < DefaultBossStats.Health; hit++ {
		if killed := e.ApplyDamage(1); killed {
			t.Fatalf("boss died after %d hits", hit)
		}
		if want := DefaultBossStats.Health - hit; e.Health != want {
			t.Fatalf("Health = %d after %d hits, want %d", e.Health, hit, want)
		}
	}

	if killed := e.ApplyDamage(1); !killed || !e.IsDead() {
		t.Fatalf("boss should die on hit %d", DefaultBossStats.Health)
	}
	if e.ApplyDamage(1) {
		t.Error("a dead enemy cannot be killed again")
	}

	y := e.Y
	e.Update()
	if e.Y != y {
		t.Error("dead enemy kept moving")
	}
}

func TestEnemyDescent(t *testing.T) {
	field := Field{Width: 480, Height: 640}
	basic := NewEnemy(100, -20, EnemyBasic, DefaultBasicStats, NewRand(1))
	boss := NewEnemy(240, 60, EnemyBoss, DefaultBossStats, NewRand(1))

	basic.Update()
	boss.Update()

	if !approx(basic.Y, -20+2.15) {
		t.Errorf("basic Y = %v, want %v", basic.Y, -20+2.15)
	}
	if !approx(boss.Y, 60+0.85) {
		t.Errorf("boss Y = %v, want %v", boss.Y, 60+0.85)
	}

	basic.Y = 640 + 17
	if basic.Below(field) {
		t.Error("enemy still overlapping the bottom edge reported below")
	}
	basic.Y = 640 + 18
	if !basic.Below(field) {
		t.Error("enemy fully past the bottom edge not reported below")
	}
}

func TestPlayerMoveAndClamp(t *testing.T) {
	field := Field{Width: 480, Height: 640}
	p := NewPlayer(field, PlayerRadius, PlayerStep, PlayerBottomOffset)

	if p.X != 240 || p.Y != 590 {
		t.Fatalf("player starts at (%v, %v), want (240, 590)", p.X, p.Y)
	}

	p.Move(true, true)
	if p.X != 240 {
		t.Errorf("holding both directions moved the player to %v", p.X)
	}

	for i := 0; i < 100; i++ {
		p.Move(true, false)
		p.Clamp(field)
	}
	if p.X != PlayerRadius {
		t.Errorf("X = %v after running left, want %v", p.X, PlayerRadius)
	}

	for i := 0; i < 100; i++ {
		p.Move(false, true)
		p.Clamp(field)
	}
	if want := field.Width - PlayerRadius; p.X != want {
		t.Errorf("X = %v after running right, want %v", p.X, want)
	}

	mx, my := p.Muzzle()
	if mx != p.X || my != p.Y-PlayerRadius {
		t.Errorf("Muzzle = (%v, %v), want (%v, %v)", mx, my, p.X, p.Y-PlayerRadius)
	}
}

func TestProjectileLeavesTop(t *testing.T) {
	p := NewProjectile(100, 10, ProjectileSpeed, ProjectileRadius)
	p.Update()
	if p.Y != 3 {
		t.Fatalf("Y = %v, want 3", p.Y)
	}
	if p.AboveTop() {
		t.Error("projectile still overlapping the top edge reported above")
	}
	p.Update()
	if !p.AboveTop() {
		t.Errorf("projectile at Y=%v should be above the top", p.Y)
	}
}
