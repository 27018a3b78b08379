package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/forestshooter/internal/config"
	"github.com/tomz197/forestshooter/internal/draw"
	"github.com/tomz197/forestshooter/internal/host"
	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/render"
)

func main() {
	logger := config.NewLogger(os.Stderr, "game")
	if _, err := config.LoadDotEnv(); err != nil {
		logger.Fatal("load .env", "err", err)
	}

	// The terminal belongs to the game while it runs, so session logs go to
	// LOG_FILE or nowhere.
	var sessionOut io.Writer = io.Discard
	if path := config.GetEnv("LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Fatal("open log file", "path", path, "err", err)
		}
		defer f.Close()
		sessionOut = f
	}
	sessionLogger := config.NewLogger(sessionOut, "game")

	opts, err := host.OptionsFromEnv(sessionLogger)
	if err != nil {
		logger.Fatal("configure", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	screen := render.NewTerminal(os.Stdout, host.Field, draw.DefaultTermSizeFunc)
	draw.HideCursor(os.Stdout)

	shell := host.NewShell(input.StartStream(os.Stdin), screen, opts)
	runErr := shell.Run(ctx)
	stop()

	draw.ClearScreen(os.Stdout)
	draw.ShowCursor(os.Stdout)
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Fatal("game error", "err", runErr)
	}
	res := shell.LastResult()
	logger.Info("thanks for playing", "score", res.Score, "boss_defeated", res.BossDefeated)
}
