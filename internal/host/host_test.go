package host

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/loop"
	loopconfig "github.com/tomz197/forestshooter/internal/loop/config"
	"github.com/tomz197/forestshooter/internal/object"
	"github.com/tomz197/forestshooter/internal/render"
)

const waitTimeout = 5 * time.Second

type fakeScreen struct {
	mu     sync.Mutex
	frames int
	shown  chan []render.Line
}

func newFakeScreen() *fakeScreen {
	return &fakeScreen{shown: make(chan []render.Line, 32)}
}

func (s *fakeScreen) Render(*loop.Frame) {
	s.mu.Lock()
	s.frames++
	s.mu.Unlock()
}

func (s *fakeScreen) ShowScreen(lines []render.Line) error {
	s.shown <- lines
	return nil
}

func (s *fakeScreen) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

func fastTuning() *loopconfig.Tuning {
	tun := loopconfig.DefaultTuning()
	tun.FPS = 1000
	tun.GameOverDelay = 10 * time.Millisecond
	return &tun
}

type shellHarness struct {
	t      *testing.T
	keys   *input.Keys
	screen *fakeScreen
	shell  *Shell
	cancel context.CancelFunc
	exited chan struct{}
	err    error
}

func startShell(t *testing.T, opts Options) *shellHarness {
	t.Helper()
	if opts.Tuning == nil {
		opts.Tuning = fastTuning()
	}
	opts.PollInterval = time.Millisecond

	h := &shellHarness{t: t, keys: input.NewKeys(), screen: newFakeScreen(), exited: make(chan struct{})}
	h.shell = NewShell(h.keys, h.screen, opts)
	h.shell.states = make(chan ShellState, 32)

	ctx, cancel := context.WithCancel(context.Background())
	h.cancel = cancel
	go func() {
		h.err = h.shell.Run(ctx)
		close(h.exited)
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-h.exited:
		case <-time.After(waitTimeout):
		}
	})
	return h
}

func (h *shellHarness) waitState(want ShellState) {
	h.t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case got := <-h.shell.states:
			if got == want {
				return
			}
		case <-deadline:
			h.t.Fatalf("shell never reached %v", want)
		}
	}
}

func (h *shellHarness) waitScreen(contains string) []render.Line {
	h.t.Helper()
	deadline := time.After(waitTimeout)
	for {
		select {
		case lines := <-h.screen.shown:
			for _, l := range lines {
				if strings.Contains(l.Text, contains) {
					return lines
				}
			}
		case <-deadline:
			h.t.Fatalf("no screen showing %q", contains)
		}
	}
}

// tap presses and releases a key, leaving the shell time to see both.
func (h *shellHarness) tap(code string) {
	time.Sleep(20 * time.Millisecond)
	h.keys.KeyDown(code)
	time.Sleep(20 * time.Millisecond)
	h.keys.KeyUp(code)
}

func (h *shellHarness) waitExit() {
	h.t.Helper()
	select {
	case <-h.exited:
		if h.err != nil {
			h.t.Fatalf("Run() = %v", h.err)
		}
	case <-time.After(waitTimeout):
		h.t.Fatal("Run did not return")
	}
}

func TestShellMenuPlayGameOverRestart(t *testing.T) {
	h := startShell(t, Options{EndCondition: loop.EndAfterTicks(5), Seed: 3})

	h.waitState(StateMenu)
	h.waitScreen("Magical Forest Shooter")
	h.tap(input.CodeEnter)

	h.waitState(StatePlaying)
	h.waitState(StateGameOver)
	lines := h.waitScreen("Forest Spirits Rest")
	if !hasLine(lines, "Score: 0") {
		t.Errorf("game over screen = %v, want the score", lines)
	}
	if h.screen.Frames() < 5 {
		t.Errorf("rendered %d frames, want at least 5", h.screen.Frames())
	}

	h.tap(input.CodeEnter)
	h.waitState(StatePlaying)
	h.waitState(StateGameOver)
	h.waitScreen("Forest Spirits Rest")

	h.tap(input.CodeKeyQ)
	h.waitExit()

	if h.shell.round != 2 {
		t.Errorf("played %d rounds, want 2", h.shell.round)
	}
	if res := h.shell.LastResult(); res.Ticks != 5 || !res.Ended {
		t.Errorf("last result = %+v, want 5 ticks and ended", res)
	}
	if _, err := h.keys.Bind(); err != nil {
		t.Errorf("keys still bound after Run: %v", err)
	}
}

func TestShellForgetsKeysHeldThroughRound(t *testing.T) {
	h := startShell(t, Options{EndCondition: loop.EndAfterTicks(5)})

	h.waitState(StateMenu)
	h.keys.KeyDown(input.CodeArrowLeft)
	h.keys.KeyDown(input.CodeSpace)
	h.tap(input.CodeEnter)

	h.waitState(StatePlaying)
	h.waitState(StateGameOver)
	if got := h.keys.Poll(); got != (input.State{}) {
		t.Errorf("keys after the round = %+v, want none held", got)
	}
}

func TestShellQuitDuringPlay(t *testing.T) {
	h := startShell(t, Options{})

	h.waitState(StateMenu)
	h.tap(input.CodeEnter)
	h.waitState(StatePlaying)

	time.Sleep(20 * time.Millisecond)
	h.keys.KeyDown(input.CodeKeyQ)
	h.waitExit()

	if h.shell.LastResult().Ticks == 0 {
		t.Error("quit before any tick ran")
	}
	if _, err := h.keys.Bind(); err != nil {
		t.Errorf("game binding not released: %v", err)
	}
}

func TestShellHeldEnterDoesNotSkipMenu(t *testing.T) {
	h := startShell(t, Options{})
	h.keys.KeyDown(input.CodeEnter)

	h.waitState(StateMenu)
	time.Sleep(30 * time.Millisecond)
	select {
	case got := <-h.shell.states:
		t.Fatalf("shell moved to %v while ENTER was held from before", got)
	default:
	}

	h.keys.KeyUp(input.CodeEnter)
	h.tap(input.CodeEnter)
	h.waitState(StatePlaying)
}

func TestShellStopsOnContextAndIdle(t *testing.T) {
	t.Run("context", func(t *testing.T) {
		h := startShell(t, Options{})
		h.waitState(StateMenu)
		h.cancel()
		h.waitExit()
	})
	t.Run("idle", func(t *testing.T) {
		h := startShell(t, Options{IdleTimeout: 20 * time.Millisecond})
		h.waitState(StateMenu)
		h.waitExit()
	})
}

func TestGameOverLines(t *testing.T) {
	tests := []struct {
		name      string
		res       loop.Result
		wantSaved bool
	}{
		{"plain", loop.Result{Score: 40}, false},
		{"boss defeated", loop.Result{Score: 300, BossDefeated: true}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := gameOverLines(tt.res)
			if got := hasLine(lines, "(Forest Guardian Saved!)"); got != tt.wantSaved {
				t.Errorf("saved line present = %v, want %v", got, tt.wantSaved)
			}
			if !hasLine(lines, "Score: "+strconv.Itoa(tt.res.Score)) {
				t.Errorf("score line missing from %v", lines)
			}
		})
	}
}

func TestAutopilotSteersAndFires(t *testing.T) {
	tests := []struct {
		name      string
		enemies   []object.Enemy
		tick      uint64
		wantLeft  bool
		wantRight bool
		wantFire  bool
	}{
		{"no enemies", nil, 4, false, false, false},
		{"target left", []object.Enemy{{X: 100, Y: 50}}, 4, true, false, true},
		{"target right", []object.Enemy{{X: 400, Y: 50}}, 1, false, true, false},
		{"lined up", []object.Enemy{{X: 243, Y: 50}}, 8, false, false, true},
		{"lowest wins", []object.Enemy{{X: 400, Y: 50}, {X: 100, Y: 300}}, 1, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := input.NewKeys()
			a := NewAutopilot(keys)
			a.Render(&loop.Frame{
				Tick:    tt.tick,
				Player:  object.Player{X: 240, Y: 590, Radius: 18, Step: 5.4},
				Enemies: tt.enemies,
			})
			got := keys.Poll()
			if got.Left != tt.wantLeft || got.Right != tt.wantRight || got.Fire != tt.wantFire {
				t.Errorf("state = %+v, want left=%v right=%v fire=%v", got, tt.wantLeft, tt.wantRight, tt.wantFire)
			}
		})
	}
}

func TestAutopilotScores(t *testing.T) {
	keys := input.NewKeys()
	b, err := keys.Bind()
	if err != nil {
		t.Fatal(err)
	}

	over := make(chan int, 1)
	g, err := loop.New(Field.Width, Field.Height, func(score int, _ bool) { over <- score }, loop.Options{
		Tuning:       fastTuning(),
		Source:       b,
		Renderer:     NewAutopilot(keys),
		EndCondition: loop.EndAfterTicks(900),
		Seed:         42,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Destroy()
	g.Start()

	select {
	case score := <-over:
		if score <= 0 {
			t.Errorf("autopilot scored %d, want a positive score", score)
		}
	case <-time.After(waitTimeout * 2):
		t.Fatal("session did not end")
	}
}

func TestSessionLimiter(t *testing.T) {
	l := NewSessionLimiter(1, 2)
	if !l.Allow() || !l.Allow() {
		t.Fatal("burst of 2 not allowed")
	}
	if l.Allow() {
		t.Error("third session inside the same second allowed")
	}

	unlimited := NewSessionLimiter(0, 0)
	for i := range 100 {
		if !unlimited.Allow() {
			t.Fatalf("unlimited limiter refused session %d", i)
		}
	}
}

func hasLine(lines []render.Line, text string) bool {
	for _, l := range lines {
		if l.Text == text {
			return true
		}
	}
	return false
}
