// Package config loads the demo's settings from a TOML file over
// compiled-in defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Screen  ScreenConfig  `toml:"screen"`
	Points  PointsConfig  `toml:"points"`
	Scene   SceneConfig   `toml:"scene"`
	Logging LoggingConfig `toml:"logging"`
}

type ScreenConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type PointsConfig struct {
	// QueueCapacity bounds pending spawn requests; requests beyond it
	// are rejected, not silently dropped.
	QueueCapacity int `toml:"queue_capacity"`
	// MaxPoints caps the live population.
	MaxPoints int `toml:"max_points"`
	// PointsPerFrame is the automatic mode's per-tick spawn demand.
	PointsPerFrame int `toml:"points_per_frame"`
	// MaxSpawnsPerTick bounds how many queued requests one tick drains.
	MaxSpawnsPerTick int `toml:"max_spawns_per_tick"`
	// AnimationSeconds is the duration of the grow-in and shrink-out
	// animations.
	AnimationSeconds float64 `toml:"animation_seconds"`
	// DespawnBatch is how many points one despawn command removes.
	DespawnBatch int `toml:"despawn_batch"`
	// Seed feeds the deterministic sampling generator.
	Seed uint64 `toml:"seed"`
}

type SceneConfig struct {
	// File optionally points at a YAML scene definition; empty means
	// the built-in scene.
	File string `toml:"file"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// Load reads the file at path into the defaults. A missing path returns
// plain defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Points.QueueCapacity <= 0 {
		return fmt.Errorf("points.queue_capacity must be positive, got %d", c.Points.QueueCapacity)
	}
	if c.Points.MaxPoints <= 0 {
		return fmt.Errorf("points.max_points must be positive, got %d", c.Points.MaxPoints)
	}
	if c.Points.MaxSpawnsPerTick <= 0 {
		return fmt.Errorf("points.max_spawns_per_tick must be positive, got %d", c.Points.MaxSpawnsPerTick)
	}
	if c.Points.AnimationSeconds <= 0 {
		return fmt.Errorf("points.animation_seconds must be positive, got %f", c.Points.AnimationSeconds)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Screen: ScreenConfig{
			Width:  1280,
			Height: 720,
			Title:  "Sampling Points",
		},
		Points: PointsConfig{
			QueueCapacity:    4096,
			MaxPoints:        3000,
			PointsPerFrame:   3,
			MaxSpawnsPerTick: 1000,
			AnimationSeconds: 1.0,
			DespawnBatch:     100,
			Seed:             4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
