package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultTuningIsValid(t *testing.T) {
	tun := DefaultTuning()
	if err := tun.Validate(); err != nil {
		t.Fatalf("DefaultTuning().Validate() = %v", err)
	}
	if tun.FrameInterval() != TargetFrameTime {
		t.Errorf("FrameInterval() = %v, want %v", tun.FrameInterval(), TargetFrameTime)
	}
	if tun.Boss.Health != 60 || tun.Basic.Points != 10 || tun.BossScoreThreshold != 200 {
		t.Errorf("unexpected defaults: %+v", tun)
	}
}

func TestParseTuningOverridesDefaults(t *testing.T) {
	data := []byte(`
boss_score_threshold: 50
game_over_delay: 2s
boss:
  radius: 40
  health: 3
  speed: 1
  points: 500
`)
	tun, err := ParseTuning(data)
	if err != nil {
		t.Fatalf("ParseTuning: %v", err)
	}
	if tun.BossScoreThreshold != 50 {
		t.Errorf("BossScoreThreshold = %d, want 50", tun.BossScoreThreshold)
	}
	if tun.GameOverDelay != 2*time.Second {
		t.Errorf("GameOverDelay = %v, want 2s", tun.GameOverDelay)
	}
	if tun.Boss.Health != 3 || tun.Boss.Points != 500 {
		t.Errorf("Boss = %+v, want health 3 and points 500", tun.Boss)
	}
	if tun.Basic != DefaultTuning().Basic {
		t.Errorf("Basic = %+v, want defaults", tun.Basic)
	}
}

func TestParseTuningEmpty(t *testing.T) {
	tun, err := ParseTuning(nil)
	if err != nil {
		t.Fatalf("ParseTuning(nil): %v", err)
	}
	if tun != DefaultTuning() {
		t.Errorf("empty document changed the defaults: %+v", tun)
	}
}

func TestParseTuningRejects(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		invalid bool
	}{
		{"unknown field", "lives: 3\n", false},
		{"bad type", "fps: fast\n", false},
		{"zero fps", "fps: 0\n", true},
		{"zero spawn interval", "spawn_interval: 0\n", true},
		{"negative burst", "boss_burst: -1\n", true},
		{"dead boss", "boss:\n  radius: 38\n  health: 0\n  speed: 1\n  points: 100\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTuning([]byte(tt.data))
			if err == nil {
				t.Fatal("ParseTuning succeeded, want error")
			}
			if got := errors.Is(err, ErrInvalidTuning); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalidTuning) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadTuning(t *testing.T) {
	tun, err := LoadTuning("")
	if err != nil || tun != DefaultTuning() {
		t.Fatalf("LoadTuning(\"\") = %+v, %v; want defaults", tun, err)
	}

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("player_step: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tun, err = LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tun.PlayerStep != 8 {
		t.Errorf("PlayerStep = %v, want 8", tun.PlayerStep)
	}

	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadTuning(missing) error = %v, want os.ErrNotExist", err)
	}
}
