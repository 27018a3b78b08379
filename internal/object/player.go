package object

// Default player properties.
const (
	PlayerRadius       = 18.0 // Collision/draw radius
	PlayerStep         = 5.4  // Horizontal movement per tick while a direction is held
	PlayerBottomOffset = 50.0 // Distance of the player's center from the field bottom
)

// Player is the mushroom at the bottom of the field. It only moves sideways.
type Player struct {
	X, Y   float64 // Position (center)
	Radius float64 // Collision/draw radius
	Step   float64 // Movement per tick
}

// NewPlayer creates a player centered horizontally, bottomOffset above the field's
// bottom edge.
func NewPlayer(field Field, radius, step, bottomOffset float64) *Player {
	return &Player{
		X:      field.CenterX(),
		Y:      field.Height - bottomOffset,
		Radius: radius,
		Step:   step,
	}
}

// Move shifts the player by one step. Holding both directions cancels out.
func (p *Player) Move(left, right bool) {
	if left {
		p.X -= p.Step
	}
	if right {
		p.X += p.Step
	}
}

// Clamp keeps the player inside the field.
func (p *Player) Clamp(field Field) {
	p.X = field.ClampX(p.X, p.Radius)
}

// Muzzle returns the point projectiles are fired from.
func (p *Player) Muzzle() (float64, float64) {
	return p.X, p.Y - p.Radius
}
