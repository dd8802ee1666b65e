package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"ebiten-points/config"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Points.MaxPoints != 3000 {
		t.Errorf("default max_points = %d, want 3000", cfg.Points.MaxPoints)
	}
	if cfg.Points.PointsPerFrame != 3 {
		t.Errorf("default points_per_frame = %d, want 3", cfg.Points.PointsPerFrame)
	}
	if cfg.Points.AnimationSeconds != 1.0 {
		t.Errorf("default animation_seconds = %f, want 1.0", cfg.Points.AnimationSeconds)
	}
	if cfg.Logging.Format != "console" {
		t.Errorf("default logging format = %q, want console", cfg.Logging.Format)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.toml")
	body := `
[screen]
title = "Test Window"

[points]
max_points = 500
seed = 99
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Screen.Title != "Test Window" {
		t.Errorf("title = %q", cfg.Screen.Title)
	}
	if cfg.Points.MaxPoints != 500 {
		t.Errorf("max_points = %d, want 500", cfg.Points.MaxPoints)
	}
	if cfg.Points.Seed != 99 {
		t.Errorf("seed = %d, want 99", cfg.Points.Seed)
	}
	// Untouched keys keep their defaults.
	if cfg.Points.QueueCapacity != 4096 {
		t.Errorf("queue_capacity = %d, want the default 4096", cfg.Points.QueueCapacity)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "points.toml")
	body := `
[points]
max_points = -1
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Fatal("negative max_points should not validate")
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatal("missing file should be an error")
	}
}
