// Package host runs forest shooter sessions for a single player terminal: the
// menu, the game itself and the game-over screen, restarting on request.
package host

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/loop"
	loopconfig "github.com/tomz197/forestshooter/internal/loop/config"
	"github.com/tomz197/forestshooter/internal/object"
	"github.com/tomz197/forestshooter/internal/render"
)

// ShellState is the phase of a shell.
type ShellState int

const (
	StateMenu     ShellState = iota // Title screen
	StatePlaying                    // A Game is running
	StateGameOver                   // Score screen with restart prompt
	StateClosed                     // Player left
)

func (s ShellState) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game over"
	default:
		return "closed"
	}
}

// Screen is where a shell draws: game frames and full-screen messages.
// *render.Terminal implements it.
type Screen interface {
	loop.Renderer
	ShowScreen(lines []render.Line) error
}

// Options configures a Shell.
type Options struct {
	Tuning       *loopconfig.Tuning // nil uses the defaults
	EndCondition loop.EndCondition  // nil never ends
	Observer     loop.Observer
	Seed         uint64        // Non-zero makes every round reproducible
	IdleTimeout  time.Duration // Leave after this long on a menu; zero waits forever
	PollInterval time.Duration // Menu key polling; zero uses the frame interval
	Logger       *log.Logger
}

// Shell is the per-player state machine around loop.Game.
type Shell struct {
	dev    input.Device
	screen Screen
	opts   Options
	logger *log.Logger

	state  ShellState
	round  int
	last   loop.Result
	states chan ShellState // Optional transition feed for tests
}

// NewShell creates a shell reading dev and drawing on screen.
func NewShell(dev input.Device, screen Screen, opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = loopconfig.TargetFrameTime
	}
	return &Shell{
		dev:    dev,
		screen: screen,
		opts:   opts,
		logger: logger,
		state:  StateMenu,
	}
}

// Run shows the menu and plays rounds until the player quits, the idle timeout
// expires or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.notifyState()
		switch s.state {
		case StateMenu:
			if err := s.screen.ShowScreen(menuLines()); err != nil {
				return fmt.Errorf("show menu: %w", err)
			}
			s.state = s.await(ctx, StatePlaying)

		case StatePlaying:
			res, quit, err := s.play(ctx)
			if err != nil {
				return err
			}
			s.last = res
			s.state = StateGameOver
			if quit {
				s.state = StateClosed
			}

		case StateGameOver:
			if err := s.screen.ShowScreen(gameOverLines(s.last)); err != nil {
				return fmt.Errorf("show game over: %w", err)
			}
			s.state = s.await(ctx, StatePlaying)

		case StateClosed:
			s.logger.Info("player left", "rounds", s.round, "score", s.last.Score)
			return nil
		}
	}
}

// LastResult returns the outcome of the latest round.
func (s *Shell) LastResult() loop.Result {
	return s.last
}

func (s *Shell) notifyState() {
	if s.states != nil {
		s.states <- s.state
	}
}

// await waits on a message screen for ENTER (next) or quit (StateClosed).
// ENTER must be pressed after the screen appeared: a key still held from the
// previous screen does not count.
func (s *Shell) await(ctx context.Context, next ShellState) ShellState {
	b, err := s.dev.Bind()
	if err != nil {
		s.logger.Error("bind input", "err", err)
		return StateClosed
	}
	defer b.Release()

	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	var idle <-chan time.Time
	if s.opts.IdleTimeout > 0 {
		t := time.NewTimer(s.opts.IdleTimeout)
		defer t.Stop()
		idle = t.C
	}

	armed := false
	for {
		select {
		case <-ctx.Done():
			return StateClosed
		case <-idle:
			s.logger.Info("idle timeout", "state", s.state)
			return StateClosed
		case <-ticker.C:
		}

		st := b.Poll()
		switch {
		case st.Quit:
			return StateClosed
		case st.Confirm && armed:
			return next
		case !st.Confirm:
			armed = true
		}
	}
}

// play runs one round and reports whether the player left during it. The Game
// is always destroyed, its input binding released and the device's held keys
// forgotten before play returns.
func (s *Shell) play(ctx context.Context) (res loop.Result, quit bool, err error) {
	b, err := s.dev.Bind()
	if err != nil {
		return loop.Result{}, false, fmt.Errorf("bind input: %w", err)
	}
	src := newQuitWatcher(b)

	s.round++
	var seed uint64
	if s.opts.Seed != 0 {
		seed = s.opts.Seed + uint64(s.round-1)
	}

	over := make(chan struct{})
	g, err := loop.New(Field.Width, Field.Height, func(int, bool) {
		close(over)
	}, loop.Options{
		Tuning:       s.opts.Tuning,
		Source:       src,
		Renderer:     s.screen,
		Observer:     s.opts.Observer,
		EndCondition: s.opts.EndCondition,
		Seed:         seed,
		Logger:       s.logger.With("round", s.round),
	})
	if err != nil {
		b.Release()
		return loop.Result{}, false, fmt.Errorf("new game: %w", err)
	}

	g.Start()
	s.logger.Debug("round started", "round", s.round, "seed", g.Seed())

	select {
	case <-over:
	case <-src.Quit():
		quit = true
	case <-ctx.Done():
		quit = true
	}
	g.Destroy()
	res = g.Result()
	s.dev.Reset()

	s.logger.Info("round over", "round", s.round, "score", res.Score, "boss_defeated", res.BossDefeated, "quit", quit)
	return res, quit, nil
}

// Field is the play area every shell round uses.
var Field = object.Field{Width: loopconfig.FieldWidth, Height: loopconfig.FieldHeight}

// Screen texts.
const (
	colorTitle = "#c1ffd7"
	colorSaved = "#34d39b"
	colorHint  = "#f7e9a0"
)

func menuLines() []render.Line {
	return []render.Line{
		{Text: "Magical Forest Shooter", Color: colorTitle},
		{},
		{Text: "Move: LEFT/RIGHT or A/D"},
		{Text: "Shoot seeds: SPACE"},
		{Text: "Leave: Q"},
		{},
		{Text: "Press ENTER to begin", Color: colorHint},
	}
}

func gameOverLines(res loop.Result) []render.Line {
	lines := []render.Line{
		{Text: "Forest Spirits Rest", Color: colorTitle},
		{},
		{Text: fmt.Sprintf("Score: %d", res.Score)},
	}
	if res.BossDefeated {
		lines = append(lines, render.Line{Text: "(Forest Guardian Saved!)", Color: colorSaved})
	}
	return append(lines,
		render.Line{},
		render.Line{Text: "Press ENTER to play again or Q to leave", Color: colorHint},
	)
}
