package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultGlyphs is the number of glyph entities spawned at start.
	DefaultGlyphs = 24

	// DefaultFrameRate is the target number of frames per second.
	DefaultFrameRate = 60

	// DefaultMaxStep bounds the time delta of a single frame.
	DefaultMaxStep = 100 * time.Millisecond

	// DefaultSparkLifetime is how long a spark lives before it removes itself.
	DefaultSparkLifetime = 600 * time.Millisecond
)

// Config is the demo configuration, loaded from YAML.
type Config struct {
	Glyphs        int           `yaml:"glyphs"`
	FrameRate     int           `yaml:"frame_rate"`
	MaxStep       time.Duration `yaml:"max_step"`
	SparkLifetime time.Duration `yaml:"spark_lifetime"`
	Sound         bool          `yaml:"sound"`
	Seed          int64         `yaml:"seed"`
	Log           LogConfig     `yaml:"log"`
}

// LogConfig selects where diagnostics go. The terminal belongs to the demo,
// so logs are discarded unless a file is given.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Glyphs:        DefaultGlyphs,
		FrameRate:     DefaultFrameRate,
		MaxStep:       DefaultMaxStep,
		SparkLifetime: DefaultSparkLifetime,
		Sound:         true,
		Log:           LogConfig{Level: "info"},
	}
}

// LoadConfig reads a YAML file on top of the defaults. Environment variables
// in the file are expanded. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Glyphs < 0 {
		return fmt.Errorf("glyphs must not be negative, got %d", c.Glyphs)
	}
	if c.FrameRate < 1 || c.FrameRate > 240 {
		return fmt.Errorf("frame_rate must be within 1..240, got %d", c.FrameRate)
	}
	if c.MaxStep <= 0 {
		return fmt.Errorf("max_step must be positive, got %v", c.MaxStep)
	}
	if c.SparkLifetime <= 0 {
		return fmt.Errorf("spark_lifetime must be positive, got %v", c.SparkLifetime)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// FrameInterval returns the ticker period for the configured frame rate.
func (c *Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRate)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// newLogger builds the demo logger. The returned close function releases the
// log file, if any.
func newLogger(cfg LogConfig) (*slog.Logger, func() error, error) {
	level, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	var out io.Writer = io.Discard
	closeFn := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}
	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler), closeFn, nil
}
