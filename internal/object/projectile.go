package object

// Default projectile properties.
const (
	ProjectileSpeed  = 7.0 // Upward speed per tick
	ProjectileRadius = 4.0 // Collision radius
)

// Projectile is a seed shot fired straight up by the player.
type Projectile struct {
	X, Y     float64 // Position
	VY       float64 // Vertical velocity per tick (negative is up)
	Radius   float64 // Collision radius
	consumed bool    // Spent on a hit, removed at the next prune
}

// NewProjectile creates a projectile at (x, y) travelling upward at speed.
func NewProjectile(x, y, speed, radius float64) *Projectile {
	return &Projectile{
		X:      x,
		Y:      y,
		VY:     -speed,
		Radius: radius,
	}
}

// Update moves the projectile by its velocity.
func (p *Projectile) Update() {
	p.Y += p.VY
}

// Consume marks the projectile as spent.
func (p *Projectile) Consume() {
	p.consumed = true
}

// IsConsumed reports whether the projectile already hit something.
func (p *Projectile) IsConsumed() bool {
	return p.consumed
}

// AboveTop reports whether the projectile has fully left the field through the top.
func (p *Projectile) AboveTop() bool {
	return p.Y+p.Radius <= 0
}
