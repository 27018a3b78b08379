package host

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/forestshooter/internal/config"
	"github.com/tomz197/forestshooter/internal/loop"
	loopconfig "github.com/tomz197/forestshooter/internal/loop/config"
)

// OptionsFromEnv builds shell options from the environment:
//
//	FOREST_TUNING           YAML tuning file (empty uses the defaults)
//	FOREST_SEED             fixed seed for reproducible rounds
//	FOREST_LOSS_ON_CONTACT  end a round when a spirit touches the player
//	FOREST_ROUND_TICKS      end a round after this many ticks
//	FOREST_IDLE_TIMEOUT     leave a menu after this long, e.g. "5m"
func OptionsFromEnv(logger *log.Logger) (Options, error) {
	path := config.GetEnv("FOREST_TUNING", "")
	tuning, err := loopconfig.LoadTuning(path)
	if err != nil {
		return Options{}, fmt.Errorf("load tuning: %w", err)
	}
	if path != "" {
		logger.Info("tuning loaded", "path", path)
	}

	opts := Options{
		Tuning:      &tuning,
		Seed:        uint64(config.GetEnvInt("FOREST_SEED", 0)),
		IdleTimeout: config.GetEnvDuration("FOREST_IDLE_TIMEOUT", 0),
		Logger:      logger,
	}
	var ends []loop.EndCondition
	if config.GetEnvBool("FOREST_LOSS_ON_CONTACT", false) {
		ends = append(ends, loop.EndOnPlayerContact)
	}
	if n := config.GetEnvInt("FOREST_ROUND_TICKS", 0); n > 0 {
		ends = append(ends, loop.EndAfterTicks(uint64(n)))
	}
	if len(ends) > 0 {
		opts.EndCondition = loop.EndWhenAny(ends...)
	}
	return opts, nil
}

// DefaultIdleTimeout is used by network hosts when FOREST_IDLE_TIMEOUT is unset.
const DefaultIdleTimeout = 5 * time.Minute
