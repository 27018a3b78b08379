package object

// EnemyKind is the category of a descending enemy.
type EnemyKind int

const (
	EnemyBasic EnemyKind = iota
	EnemyBoss
)

// String returns the kind's name, used for logs and metric labels.
func (k EnemyKind) String() string {
	switch k {
	case EnemyBoss:
		return "boss"
	default:
		return "basic"
	}
}

// EnemyStats holds the per-kind properties of an enemy.
type EnemyStats struct {
	Radius float64 // Collision/draw radius
	Health int     // Hits needed to destroy
	Speed  float64 // Descent per tick
	Points int     // Score for a kill
}

// Default stats for each enemy kind.
var (
	DefaultBasicStats = EnemyStats{Radius: 18, Health: 1, Speed: 2.15, Points: 10}
	DefaultBossStats  = EnemyStats{Radius: 38, Health: 60, Speed: 0.85, Points: 100}
)

// enemyVariants is the number of distinct flower/leaf arrangements renderers pick from.
const enemyVariants = 8

// Enemy is a forest spirit drifting straight down the field.
type Enemy struct {
	X, Y    float64   // Position (center)
	Kind    EnemyKind // Basic or boss
	Radius  float64   // Collision/draw radius
	Health  int       // Remaining hits
	Speed   float64   // Descent per tick
	Points  int       // Score awarded on kill
	Variant int       // Visual variation chosen at creation
	dead    bool
}

// NewEnemy creates an enemy of the given kind at (x, y).
func NewEnemy(x, y float64, kind EnemyKind, stats EnemyStats, rng Rand) *Enemy {
	health := stats.Health
	if health < 1 {
		health = 1
	}
	return &Enemy{
		X:       x,
		Y:       y,
		Kind:    kind,
		Radius:  stats.Radius,
		Health:  health,
		Speed:   stats.Speed,
		Points:  stats.Points,
		Variant: rng.IntN(enemyVariants),
	}
}

// Update moves the enemy down by its speed. Dead enemies stay put.
func (e *Enemy) Update() {
	if e.dead {
		return
	}
	e.Y += e.Speed
}

// ApplyDamage subtracts n from the enemy's health and kills it at zero.
// It reports whether this call killed the enemy.
func (e *Enemy) ApplyDamage(n int) bool {
	if e.dead {
		return false
	}
	e.Health -= n
	if e.Health <= 0 {
		e.dead = true
		return true
	}
	return false
}

// IsDead reports whether the enemy has been destroyed.
func (e *Enemy) IsDead() bool {
	return e.dead
}

// IsBoss reports whether the enemy is the boss.
func (e *Enemy) IsBoss() bool {
	return e.Kind == EnemyBoss
}

// Below reports whether the enemy has fully left the field through the bottom edge.
func (e *Enemy) Below(field Field) bool {
	return e.Y-e.Radius >= field.Height
}
