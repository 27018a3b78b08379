package loop

import (
	"time"

	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/object"
)

// tick advances the session by one frame. It reports whether the session keeps
// running.
func (g *Game) tick() bool {
	frameStart := time.Now()

	// ===== INPUT PHASE =====
	var in input.State
	if g.source != nil {
		in = g.source.Poll()
	}
	g.applyInput(in)
	g.player.Clamp(g.field)

	// ===== UPDATE PHASE =====
	g.spawnEnemies()
	g.updateEntities()
	g.handleCollisions()
	g.prune()
	g.session.tick++

	// ===== DRAW PHASE =====
	frame := g.buildFrame()
	ended := g.endCond(frame)
	frame.Ended = ended
	if g.renderer != nil {
		g.renderer.Render(frame)
	}

	res := g.publish(ended)
	g.observer.TickCompleted(time.Since(frameStart), frame.Stats())

	if !ended {
		return true
	}

	g.session.running = false
	g.logger.Info("session ended", "score", res.Score, "boss_defeated", res.BossDefeated, "ticks", res.Ticks)
	g.observer.SessionEnded(res)
	g.finish(res)
	return false
}

// applyInput moves the player and fires on the press edge of Fire.
func (g *Game) applyInput(in input.State) {
	g.player.Move(in.Left, in.Right)

	if in.Fire && !g.session.fireHeld {
		x, y := g.player.Muzzle()
		g.projectiles = append(g.projectiles, object.NewProjectile(x, y, g.tuning.ProjectileSpeed, g.tuning.ProjectileRadius))
	}
	g.session.fireHeld = in.Fire
}

// spawnEnemies counts down to the next spawn. The boss takes the place of a
// basic spawn once the score reaches the threshold.
func (g *Game) spawnEnemies() {
	g.session.spawnCountdown--
	if g.session.spawnCountdown > 0 {
		return
	}

	var e *object.Enemy
	if g.bossDue() {
		e = object.NewEnemy(g.field.CenterX(), g.tuning.BossSpawnY, object.EnemyBoss, g.tuning.Boss.Stats(), g.rng)
		g.session.bossSpawned = true
		g.logger.Info("boss spawned", "score", g.session.score, "tick", g.session.tick)
	} else {
		margin := g.tuning.SpawnMargin
		x := margin + g.rng.Float64()*(g.field.Width-2*margin)
		e = object.NewEnemy(x, g.tuning.BasicSpawnY, object.EnemyBasic, g.tuning.Basic.Stats(), g.rng)
		g.logger.Debug("enemy spawned", "x", x)
	}
	g.enemies = append(g.enemies, e)
	g.observer.EnemySpawned(e.Kind)

	g.session.spawnCountdown = g.tuning.SpawnInterval + randInt(g.rng, g.tuning.SpawnJitter)
}

// bossDue reports whether the next spawn is the boss.
func (g *Game) bossDue() bool {
	return !g.session.bossSpawned &&
		!g.session.bossDefeated &&
		g.session.score >= g.tuning.BossScoreThreshold
}

// updateEntities moves enemies and projectiles and advances bursts. Bursts are
// dropped once their last particle has expired.
func (g *Game) updateEntities() {
	for _, e := range g.enemies {
		e.Update()
	}
	for _, p := range g.projectiles {
		p.Update()
	}

	kept := g.bursts[:0]
	for _, b := range g.bursts {
		b.Update(g.rng)
		if !b.IsEmpty() {
			kept = append(kept, b)
		}
	}
	clear(g.bursts[len(kept):])
	g.bursts = kept
}

// prune drops spent or escaped projectiles and dead or escaped enemies.
func (g *Game) prune() {
	projectiles := g.projectiles[:0]
	for _, p := range g.projectiles {
		if !p.IsConsumed() && !p.AboveTop() {
			projectiles = append(projectiles, p)
		}
	}
	clear(g.projectiles[len(projectiles):])
	g.projectiles = projectiles

	enemies := g.enemies[:0]
	for _, e := range g.enemies {
		if !e.IsDead() && !e.Below(g.field) {
			enemies = append(enemies, e)
		}
	}
	clear(g.enemies[len(enemies):])
	g.enemies = enemies
}

// randInt returns a value in [0, n), or 0 when n is not positive.
func randInt(rng object.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.IntN(n)
}
