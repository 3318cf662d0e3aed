package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Glyphs != DefaultGlyphs || cfg.FrameRate != DefaultFrameRate {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("KOUDOU_TEST_LOG", "/tmp/koudou.log")
	path := writeConfig(t, `
glyphs: 5
frame_rate: 30
spark_lifetime: 2s
sound: false
log:
  file: ${KOUDOU_TEST_LOG}
  level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Glyphs != 5 || cfg.FrameRate != 30 || cfg.Sound {
		t.Errorf("values not applied: %+v", cfg)
	}
	if cfg.SparkLifetime != 2*time.Second {
		t.Errorf("expected 2s spark lifetime, got %v", cfg.SparkLifetime)
	}
	if cfg.MaxStep != DefaultMaxStep {
		t.Errorf("unset fields should keep defaults, got max_step %v", cfg.MaxStep)
	}
	if cfg.Log.File != "/tmp/koudou.log" {
		t.Errorf("expected env expansion, got %q", cfg.Log.File)
	}
	if cfg.FrameInterval() != time.Second/30 {
		t.Errorf("unexpected frame interval %v", cfg.FrameInterval())
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	path := writeConfig(t, "glyphs: [1, 2\n")
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative glyphs", func(c *Config) { c.Glyphs = -1 }},
		{"zero frame rate", func(c *Config) { c.FrameRate = 0 }},
		{"huge frame rate", func(c *Config) { c.FrameRate = 1000 }},
		{"zero max step", func(c *Config) { c.MaxStep = 0 }},
		{"zero spark lifetime", func(c *Config) { c.SparkLifetime = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := parseLevel(in)
		if err != nil || got != want {
			t.Errorf("parseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
}

func TestNewLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.log")
	logger, closeLog, err := newLogger(LogConfig{File: path, Level: "info", JSON: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logger.Info("hello", "frames", 3)
	if err := closeLog(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"hello"`) {
		t.Errorf("expected a JSON record, got %q", data)
	}
}
