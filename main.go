package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ebiten-points/config"
	"ebiten-points/data"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	scenePath := flag.String("scene", "", "path to a YAML scene file (overrides the config)")
	cpuProfile := flag.Bool("cpuprofile", false, "write a CPU profile to the working directory")
	flag.Parse()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	scene := data.DefaultScene()
	if path := sceneFile(cfg, *scenePath); path != "" {
		scene, err = data.LoadScene(path)
		if err != nil {
			logger.Fatal("load scene", zap.Error(err))
		}
	}

	logger.Info("starting",
		zap.Int("max_points", cfg.Points.MaxPoints),
		zap.Int("shapes", len(scene.Placements)),
		zap.Uint64("seed", cfg.Points.Seed))

	game := NewGame(cfg, scene, logger)
	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle(cfg.Screen.Title)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run game", zap.Error(err))
	}
}

func sceneFile(cfg *config.Config, override string) string {
	if override != "" {
		return override
	}
	return cfg.Scene.File
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Level, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
