// Package loop provides the game loop and session state of a forest shooter
// session.
//
// A Game owns the player, the enemies, the projectiles and the particle bursts.
// Once started it runs one tick per frame interval on its own goroutine: input,
// clamp, spawn, update, collide, prune, render, end check. Renderers receive a
// finalized Frame after the simulation step and must not mutate it.
package loop

import (
	"fmt"
	"io"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/loop/config"
	"github.com/tomz197/forestshooter/internal/object"
)

// GameOverFunc is notified once when a session ends.
type GameOverFunc func(score int, bossDefeated bool)

// Options configures a Game. Every field is optional.
type Options struct {
	Tuning       *config.Tuning // nil uses config.DefaultTuning
	Source       input.Source   // Polled once per tick; released on Destroy if it has a Release method
	Renderer     Renderer       // Called once per tick with the finalized frame
	Observer     Observer       // Receives spawn, kill and tick events
	EndCondition EndCondition   // nil never ends
	Seed         uint64         // Zero picks a random seed
	Logger       *log.Logger    // nil discards
}

// Result is the outcome of a session so far.
type Result struct {
	Score        int
	BossDefeated bool
	Ticks        uint64
	Ended        bool // The end condition fired
}

// Game is a single forest shooter session.
type Game struct {
	field      object.Field
	tuning     config.Tuning
	onGameOver GameOverFunc
	source     input.Source
	renderer   Renderer
	observer   Observer
	endCond    EndCondition
	logger     *log.Logger
	seed       uint64
	rng        *rand.Rand

	// Simulation state, touched only by the tick goroutine.
	player      *object.Player
	enemies     []*object.Enemy
	projectiles []*object.Projectile
	bursts      []*object.Burst
	session     session
	frame       Frame

	mu            sync.Mutex
	result        Result
	started       bool
	destroyed     bool
	notified      bool
	gameOverTimer *time.Timer
	stop          chan struct{}
	done          chan struct{}
}

// session is the scalar state of a running session.
type session struct {
	running        bool
	score          int
	bossDefeated   bool
	bossSpawned    bool
	spawnCountdown int
	tick           uint64
	fireHeld       bool
}

// New creates a session on a width x height field. onGameOver may be nil.
func New(width, height float64, onGameOver GameOverFunc, opts Options) (*Game, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("field %vx%v must have positive size", width, height)
	}

	tuning := config.DefaultTuning()
	if opts.Tuning != nil {
		tuning = *opts.Tuning
	}
	if err := tuning.Validate(); err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	observer := opts.Observer
	if observer == nil {
		observer = nopObserver{}
	}
	endCond := opts.EndCondition
	if endCond == nil {
		endCond = NeverEnds
	}

	field := object.Field{Width: width, Height: height}
	g := &Game{
		field:      field,
		tuning:     tuning,
		onGameOver: onGameOver,
		source:     opts.Source,
		renderer:   opts.Renderer,
		observer:   observer,
		endCond:    endCond,
		logger:     logger,
		seed:       seed,
		rng:        object.NewRand(seed),
		player:     object.NewPlayer(field, tuning.PlayerRadius, tuning.PlayerStep, tuning.PlayerBottomOffset),
		session:    session{running: true},
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	return g, nil
}

// Start begins the tick cycle. It is a no-op if the game is already running,
// has ended or was destroyed.
func (g *Game) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.started || g.destroyed {
		return
	}
	g.started = true
	go g.run()

	g.logger.Debug("session started", "seed", g.seed, "fps", g.tuning.FPS)
}

// Destroy stops the tick cycle, cancels a pending game-over notification and
// releases the input binding. No tick runs after Destroy returns. It is safe to
// call more than once, but never from a Renderer.
func (g *Game) Destroy() {
	g.mu.Lock()
	if g.destroyed {
		g.mu.Unlock()
		return
	}
	g.destroyed = true
	started := g.started
	if g.gameOverTimer != nil {
		g.gameOverTimer.Stop()
	}
	g.mu.Unlock()

	close(g.stop)
	if started {
		<-g.done
	}

	if r, ok := g.source.(interface{ Release() }); ok {
		r.Release()
	}

	res := g.Result()
	g.logger.Debug("session destroyed", "score", res.Score, "ticks", res.Ticks)
}

// Stop is an alias for Destroy.
func (g *Game) Stop() {
	g.Destroy()
}

// Done is closed once the tick goroutine has exited, either because the session
// ended or because it was destroyed.
func (g *Game) Done() <-chan struct{} {
	return g.done
}

// Result returns the session outcome as of the last completed tick.
func (g *Game) Result() Result {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result
}

// Seed returns the seed of the session's random source.
func (g *Game) Seed() uint64 {
	return g.seed
}

// run ticks back to back at the frame interval until the session ends or the
// game is destroyed.
func (g *Game) run() {
	defer close(g.done)

	interval := g.tuning.FrameInterval()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-g.stop:
			return
		case <-timer.C:
		}

		// Destroy may have raced the timer.
		select {
		case <-g.stop:
			return
		default:
		}

		frameStart := time.Now()
		if !g.tick() {
			return
		}

		elapsed := time.Since(frameStart)
		timer.Reset(max(interval-elapsed, 0))
	}
}

// finish schedules the game-over notification after the configured delay.
func (g *Game) finish(res Result) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.destroyed {
		return
	}
	g.gameOverTimer = time.AfterFunc(g.tuning.GameOverDelay, func() {
		g.notify(res)
	})
}

// notify calls onGameOver at most once, and never after Destroy.
func (g *Game) notify(res Result) {
	g.mu.Lock()
	if g.destroyed || g.notified {
		g.mu.Unlock()
		return
	}
	g.notified = true
	g.mu.Unlock()

	if g.onGameOver != nil {
		g.onGameOver(res.Score, res.BossDefeated)
	}
}
