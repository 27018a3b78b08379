package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FOREST_TEST_STR", "hello")
	t.Setenv("FOREST_TEST_INT", "42")
	t.Setenv("FOREST_TEST_BAD_INT", "forty")
	t.Setenv("FOREST_TEST_FLOAT", "1.5")
	t.Setenv("FOREST_TEST_BOOL", "true")
	t.Setenv("FOREST_TEST_DUR", "250ms")
	t.Setenv("FOREST_TEST_EMPTY", "")

	if got := GetEnv("FOREST_TEST_STR", "x"); got != "hello" {
		t.Errorf("GetEnv = %q, want %q", got, "hello")
	}
	if got := GetEnv("FOREST_TEST_EMPTY", "x"); got != "" {
		t.Errorf("GetEnv on a set-but-empty var = %q, want empty", got)
	}
	if got := GetEnv("FOREST_TEST_MISSING", "x"); got != "x" {
		t.Errorf("GetEnv fallback = %q, want %q", got, "x")
	}
	if got := GetEnvInt("FOREST_TEST_INT", 1); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	if got := GetEnvInt("FOREST_TEST_BAD_INT", 7); got != 7 {
		t.Errorf("GetEnvInt on garbage = %d, want fallback 7", got)
	}
	if got := GetEnvFloat("FOREST_TEST_FLOAT", 0); got != 1.5 {
		t.Errorf("GetEnvFloat = %v, want 1.5", got)
	}
	if got := GetEnvBool("FOREST_TEST_BOOL", false); !got {
		t.Error("GetEnvBool = false, want true")
	}
	if got := GetEnvDuration("FOREST_TEST_DUR", time.Second); got != 250*time.Millisecond {
		t.Errorf("GetEnvDuration = %v, want 250ms", got)
	}
	if got := GetEnvDuration("FOREST_TEST_EMPTY", time.Second); got != time.Second {
		t.Errorf("GetEnvDuration fallback = %v, want 1s", got)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("FOREST_DOTENV_VALUE=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOREST_DOTENV_VALUE", "")
	os.Unsetenv("FOREST_DOTENV_VALUE")

	loaded, err := LoadDotEnv(filepath.Join(dir, "missing.env"), path)
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if loaded != path {
		t.Errorf("loaded %q, want %q", loaded, path)
	}
	if got := os.Getenv("FOREST_DOTENV_VALUE"); got != "from-file" {
		t.Errorf("FOREST_DOTENV_VALUE = %q, want %q", got, "from-file")
	}
}

func TestLoadDotEnvNoFiles(t *testing.T) {
	loaded, err := LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if loaded != "" {
		t.Errorf("loaded %q, want empty", loaded)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"loud", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			var buf bytes.Buffer
			logger := NewLogger(&buf, "test")
			if got := logger.GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
