package loop

import (
	"github.com/tomz197/forestshooter/internal/object"
	"github.com/tomz197/forestshooter/internal/physics"
)

// handleCollisions resolves projectile hits. Projectiles are checked newest
// first against enemies newest first, and each projectile hits at most one
// enemy. Spent projectiles and dead enemies are skipped here and removed by
// prune.
func (g *Game) handleCollisions() {
	for pi := len(g.projectiles) - 1; pi >= 0; pi-- {
		p := g.projectiles[pi]
		if p.IsConsumed() {
			continue
		}
		for ei := len(g.enemies) - 1; ei >= 0; ei-- {
			e := g.enemies[ei]
			if e.IsDead() {
				continue
			}
			if !physics.CirclesOverlap(p.X, p.Y, p.Radius, e.X, e.Y, e.Radius) {
				continue
			}

			if e.ApplyDamage(1) {
				g.killEnemy(e)
			} else {
				count := g.tuning.HitSparkMin + randInt(g.rng, g.tuning.HitSparkJitter)
				g.bursts = append(g.bursts, object.NewBurst(p.X, p.Y, count, g.rng))
			}
			p.Consume()
			break
		}
	}
}

// killEnemy awards points and leaves a death burst where the enemy was.
func (g *Game) killEnemy(e *object.Enemy) {
	count := g.tuning.DeathBurstMin + randInt(g.rng, g.tuning.DeathBurstJitter)
	if e.IsBoss() {
		count = g.tuning.BossBurst
	}
	g.bursts = append(g.bursts, object.NewBurst(e.X, e.Y, count, g.rng))

	g.session.score += e.Points
	if e.IsBoss() {
		g.session.bossDefeated = true
		g.logger.Info("boss defeated", "score", g.session.score, "tick", g.session.tick)
	}
	g.observer.EnemyKilled(e.Kind, e.Points)
}
