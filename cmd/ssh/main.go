package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"

	"github.com/tomz197/forestshooter/internal/config"
	"github.com/tomz197/forestshooter/internal/draw"
	"github.com/tomz197/forestshooter/internal/host"
	"github.com/tomz197/forestshooter/internal/input"
	loopconfig "github.com/tomz197/forestshooter/internal/loop/config"
	"github.com/tomz197/forestshooter/internal/metrics"
	"github.com/tomz197/forestshooter/internal/render"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	defaultMetricsAddr = "127.0.0.1:9090"
)

func main() {
	logger := config.NewLogger(os.Stderr, "ssh")
	if path, err := config.LoadDotEnv(); err != nil {
		logger.Fatal("load .env", "err", err)
	} else if path != "" {
		logger.Info("loaded env file", "path", path)
	}

	listenHost := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	metricsAddr := config.GetEnv("METRICS_ADDR", defaultMetricsAddr)
	logger.Info("ssh config", "host", listenHost, "port", port, "host_key", hostKeyPath, "metrics", metricsAddr)

	opts, err := host.OptionsFromEnv(logger)
	if err != nil {
		logger.Fatal("configure", "err", err)
	}
	if opts.IdleTimeout == 0 {
		opts.IdleTimeout = host.DefaultIdleTimeout
	}

	m := metrics.New()
	opts.Observer = m
	g := &gameHandler{
		opts:    opts,
		metrics: m,
		limiter: host.NewSessionLimiter(
			config.GetEnvFloat("SESSIONS_PER_SECOND", loopconfig.DefaultSessionsPerSecond),
			config.GetEnvInt("SESSION_BURST", loopconfig.DefaultSessionBurst),
		),
		logger: logger,
	}

	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(listenHost, port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// TCP_NODELAY keeps key presses snappy.
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(sshOpts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	var metricsServer *http.Server
	if metricsAddr != "" {
		metricsServer = &http.Server{
			Addr:              metricsAddr,
			Handler:           m.Router(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("metrics server listening", "addr", metricsAddr)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "err", err)
			}
		}()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting SSH server", "addr", net.JoinHostPort(listenHost, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")
	g.shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if metricsServer != nil {
		_ = metricsServer.Shutdown(ctx)
	}
	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// gameHandler runs one independent shell per SSH session.
type gameHandler struct {
	opts    host.Options
	metrics *metrics.Metrics
	limiter *host.SessionLimiter
	logger  *log.Logger

	mu       sync.Mutex
	cancels  map[string]context.CancelFunc
	closing  bool
	sessions sync.WaitGroup
}

func (g *gameHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		defer next(sess)

		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}
		if !g.limiter.Allow() {
			g.metrics.SessionRejected()
			fmt.Fprintln(sess, "The forest is busy, please try again in a moment.")
			return
		}

		id := uuid.NewString()
		logger := g.logger.With("session", id, "user", sess.User())
		logger.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		ctx, cancel := context.WithCancel(sess.Context())
		if !g.track(id, cancel) {
			cancel()
			fmt.Fprintln(sess, "The server is shutting down.")
			return
		}
		defer g.untrack(id)
		defer g.metrics.SessionOpened()()

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		opts := g.opts
		opts.Logger = logger
		screen := render.NewTerminal(sess, host.Field, sizeTracker.getSize)
		draw.HideCursor(sess)
		shell := host.NewShell(input.StartStream(sess), screen, opts)
		if err := shell.Run(ctx); err != nil {
			logger.Error("game error", "err", err)
		}
		draw.ClearScreen(sess)
		draw.ShowCursor(sess)

		res := shell.LastResult()
		logger.Info("session ended", "score", res.Score, "boss_defeated", res.BossDefeated)
	}
}

// track registers a live session. It fails once shutdown has begun.
func (g *gameHandler) track(id string, cancel context.CancelFunc) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closing {
		return false
	}
	if g.cancels == nil {
		g.cancels = make(map[string]context.CancelFunc)
	}
	g.cancels[id] = cancel
	g.sessions.Add(1)
	return true
}

func (g *gameHandler) untrack(id string) {
	g.mu.Lock()
	cancel := g.cancels[id]
	delete(g.cancels, id)
	g.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	g.sessions.Done()
}

// shutdown ends every session and waits up to 10s for them to leave.
func (g *gameHandler) shutdown() {
	g.mu.Lock()
	g.closing = true
	for _, cancel := range g.cancels {
		cancel()
	}
	g.mu.Unlock()

	waited := make(chan struct{})
	go func() {
		g.sessions.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-time.After(10 * time.Second):
		g.logger.Warn("sessions still open after shutdown timeout")
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}
