// Package config centralizes all tunable game parameters.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tomz197/forestshooter/internal/object"
)

// Field dimensions - the logical play area every renderer scales from.
const (
	FieldWidth  = 480
	FieldHeight = 640
)

// Host rendering
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// Sessions
const (
	DefaultSessionsPerSecond = 2.0 // New SSH sessions admitted per second
	DefaultSessionBurst      = 5   // Sessions admitted at once before throttling
)

// ErrInvalidTuning is returned when a Tuning fails validation.
var ErrInvalidTuning = errors.New("invalid tuning")

// EnemyTuning holds the per-kind enemy properties.
type EnemyTuning struct {
	Radius float64 `yaml:"radius"`
	Health int     `yaml:"health"`
	Speed  float64 `yaml:"speed"`
	Points int     `yaml:"points"`
}

// Stats converts the tuning into entity stats.
func (e EnemyTuning) Stats() object.EnemyStats {
	return object.EnemyStats{
		Radius: e.Radius,
		Health: e.Health,
		Speed:  e.Speed,
		Points: e.Points,
	}
}

// Tuning holds every gameplay constant of a session.
type Tuning struct {
	// Player
	PlayerRadius       float64 `yaml:"player_radius"`
	PlayerStep         float64 `yaml:"player_step"`
	PlayerBottomOffset float64 `yaml:"player_bottom_offset"`

	// Projectiles
	ProjectileSpeed  float64 `yaml:"projectile_speed"`
	ProjectileRadius float64 `yaml:"projectile_radius"`

	// Enemies
	Basic EnemyTuning `yaml:"basic"`
	Boss  EnemyTuning `yaml:"boss"`

	// Spawning. The countdown resets to SpawnInterval + randInt(SpawnJitter) ticks.
	SpawnInterval      int     `yaml:"spawn_interval"`
	SpawnJitter        int     `yaml:"spawn_jitter"`
	SpawnMargin        float64 `yaml:"spawn_margin"` // Horizontal margin for basic spawns
	BasicSpawnY        float64 `yaml:"basic_spawn_y"`
	BossSpawnY         float64 `yaml:"boss_spawn_y"`
	BossScoreThreshold int     `yaml:"boss_score_threshold"`

	// Particle bursts. Sized Min + randInt(Jitter) particles.
	BossBurst        int `yaml:"boss_burst"`
	DeathBurstMin    int `yaml:"death_burst_min"`
	DeathBurstJitter int `yaml:"death_burst_jitter"`
	HitSparkMin      int `yaml:"hit_spark_min"`
	HitSparkJitter   int `yaml:"hit_spark_jitter"`

	// Timing
	FPS           int           `yaml:"fps"`
	GameOverDelay time.Duration `yaml:"game_over_delay"`
}

// DefaultTuning returns the classic forest shooter settings.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerRadius:       object.PlayerRadius,
		PlayerStep:         object.PlayerStep,
		PlayerBottomOffset: object.PlayerBottomOffset,

		ProjectileSpeed:  object.ProjectileSpeed,
		ProjectileRadius: object.ProjectileRadius,

		Basic: EnemyTuning(object.DefaultBasicStats),
		Boss:  EnemyTuning(object.DefaultBossStats),

		SpawnInterval:      40,
		SpawnJitter:        20,
		SpawnMargin:        30,
		BasicSpawnY:        -20,
		BossSpawnY:         60,
		BossScoreThreshold: 200,

		BossBurst:        70,
		DeathBurstMin:    16,
		DeathBurstJitter: 8,
		HitSparkMin:      6,
		HitSparkJitter:   4,

		FPS:           TargetFPS,
		GameOverDelay: 500 * time.Millisecond,
	}
}

// FrameInterval returns the time between two ticks.
func (t Tuning) FrameInterval() time.Duration {
	if t.FPS <= 0 {
		return TargetFrameTime
	}
	return time.Second / time.Duration(t.FPS)
}

// Validate reports the first setting that would break the simulation.
func (t Tuning) Validate() error {
	switch {
	case t.PlayerRadius <= 0:
		return fmt.Errorf("%w: player_radius must be positive", ErrInvalidTuning)
	case t.PlayerStep < 0:
		return fmt.Errorf("%w: player_step must not be negative", ErrInvalidTuning)
	case t.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: projectile_speed must be positive", ErrInvalidTuning)
	case t.ProjectileRadius <= 0:
		return fmt.Errorf("%w: projectile_radius must be positive", ErrInvalidTuning)
	case t.SpawnInterval < 1:
		return fmt.Errorf("%w: spawn_interval must be at least 1", ErrInvalidTuning)
	case t.SpawnJitter < 0:
		return fmt.Errorf("%w: spawn_jitter must not be negative", ErrInvalidTuning)
	case t.SpawnMargin < 0:
		return fmt.Errorf("%w: spawn_margin must not be negative", ErrInvalidTuning)
	case t.BossScoreThreshold < 0:
		return fmt.Errorf("%w: boss_score_threshold must not be negative", ErrInvalidTuning)
	case t.BossBurst < 0, t.DeathBurstMin < 0, t.DeathBurstJitter < 0, t.HitSparkMin < 0, t.HitSparkJitter < 0:
		return fmt.Errorf("%w: burst sizes must not be negative", ErrInvalidTuning)
	case t.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive", ErrInvalidTuning)
	case t.GameOverDelay < 0:
		return fmt.Errorf("%w: game_over_delay must not be negative", ErrInvalidTuning)
	}

	if err := t.Basic.validate("basic"); err != nil {
		return err
	}
	return t.Boss.validate("boss")
}

func (e EnemyTuning) validate(name string) error {
	if e.Radius <= 0 || e.Health < 1 || e.Speed < 0 || e.Points < 0 {
		return fmt.Errorf("%w: %s enemy needs positive radius and health, non-negative speed and points", ErrInvalidTuning, name)
	}
	return nil
}

// ParseTuning decodes YAML over the defaults. Keys that are not part of Tuning are
// rejected.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tuning{}, fmt.Errorf("decode tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadTuning reads a YAML tuning file. An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("read tuning %s: %w", path, err)
	}
	t, err := ParseTuning(data)
	if err != nil {
		return Tuning{}, fmt.Errorf("load tuning %s: %w", path, err)
	}
	return t, nil
}
