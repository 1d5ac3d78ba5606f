package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"

	"Aven/internal/config"
	"Aven/internal/engine"
	"Aven/internal/loader"
	"Aven/internal/logger"
	"Aven/internal/viewer"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "aven.yaml", "path to the YAML viewer config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Init()
		logger.Log.Error("Could not load config", zap.String("path", *configPath), zap.Error(err))
		os.Exit(1)
	}
	missing := err != nil

	if err := logger.InitWithLevel(cfg.Log.Level); err != nil {
		logger.Init()
		logger.Log.Warn("Bad log level, using development logger", zap.Error(err))
	}
	defer logger.Sync()
	if missing {
		logger.Log.Info("No config file, using defaults", zap.String("path", *configPath))
	}

	v := engine.NewViewer(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title)
	ctrl, err := viewer.Setup(cfg, v.Keyboard, v.Mouse)
	if err != nil {
		logger.Log.Error("Could not build world", zap.Error(err))
		os.Exit(1)
	}
	ctrl.OnMouseLock = v.SetMouseLocked
	v.SetOnResize(func(width, height int32) {
		ctrl.Camera.SetAspectRatio(float32(width) / float32(height))
	})
	v.Behaviours.Add(ctrl)

	var chunks *engine.ChunkRenderer
	v.SetOnInit(func() error {
		var err error
		chunks, err = engine.NewChunkRenderer(loader.Palette{})
		if err != nil {
			return err
		}
		ctrl.World.Evicter = chunks
		return nil
	})
	v.SetOnRenderCallback(func(deltaTime float64) {
		chunks.Render(ctrl.Camera, ctrl.Visible())
	})
	v.SetOnClose(func() {
		ctrl.World.Evicter = nil
		chunks.Cleanup()
	})

	logger.Log.Info("Aven starting",
		zap.String("generator", cfg.Generator.Kind),
		zap.Int("width", cfg.World.Width),
		zap.Int("height", cfg.World.Height),
		zap.Int("depth", cfg.World.Depth))

	if err := v.Run(100, 100); err != nil {
		logger.Log.Error("Viewer failed", zap.Error(err))
		os.Exit(1)
	}
}
