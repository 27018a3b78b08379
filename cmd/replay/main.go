// Command replay plays a seeded session with the autopilot, without a terminal,
// and writes PNG snapshots of it.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/tomz197/forestshooter/internal/config"
	"github.com/tomz197/forestshooter/internal/host"
	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/loop"
	loopconfig "github.com/tomz197/forestshooter/internal/loop/config"
	"github.com/tomz197/forestshooter/internal/render"
)

func main() {
	logger := config.NewLogger(os.Stderr, "replay")
	if _, err := config.LoadDotEnv(); err != nil {
		logger.Fatal("load .env", "err", err)
	}

	var (
		seed    = flag.Uint64("seed", uint64(config.GetEnvInt("FOREST_SEED", 1)), "session seed")
		ticks   = flag.Uint64("ticks", 3600, "ticks to play")
		every   = flag.Int("every", 60, "save a frame every N ticks (0: final frame only)")
		width   = flag.Int("width", 480, "image width in pixels")
		out     = flag.String("out", "replay", "output directory")
		tuning  = flag.String("tuning", config.GetEnv("FOREST_TUNING", ""), "YAML tuning file")
		fast    = flag.Bool("fast", true, "run ticks as fast as possible")
		contact = flag.Bool("contact", config.GetEnvBool("FOREST_LOSS_ON_CONTACT", false), "also end when a spirit touches the player")
	)
	flag.Parse()

	tun, err := loopconfig.LoadTuning(*tuning)
	if err != nil {
		logger.Fatal("load tuning", "err", err)
	}
	if *fast {
		tun.FPS = 10000
		tun.GameOverDelay = 0
	}

	raster := render.NewRaster(host.Field, *width)
	rec, err := render.NewPNGRecorder(raster, *out, *every)
	if err != nil {
		logger.Fatal("recorder", "err", err)
	}

	end := loop.EndAfterTicks(*ticks)
	if *contact {
		end = loop.EndWhenAny(end, loop.EndOnPlayerContact)
	}

	keys := input.NewKeys()
	binding, err := keys.Bind()
	if err != nil {
		logger.Fatal("bind keys", "err", err)
	}

	over := make(chan struct{})
	start := time.Now()
	g, err := loop.New(host.Field.Width, host.Field.Height, func(int, bool) { close(over) }, loop.Options{
		Tuning:       &tun,
		Source:       binding,
		Renderer:     loop.Renderers{rec, host.NewAutopilot(keys)},
		EndCondition: end,
		Seed:         *seed,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("new game", "err", err)
	}
	g.Start()
	<-over
	g.Destroy()

	if err := rec.Err(); err != nil {
		logger.Fatal("recording failed", "err", err)
	}
	res := g.Result()
	logger.Info("replay done",
		"seed", *seed,
		"ticks", res.Ticks,
		"score", res.Score,
		"boss_defeated", res.BossDefeated,
		"frames", len(rec.Saved()),
		"dir", *out,
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
}
