package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"

	"FlyCam/internal/config"
	"FlyCam/internal/engine"
	"FlyCam/internal/logger"

	"go.uber.org/zap"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	watch := flag.Bool("watch", false, "reload the config file when it changes")
	debug := flag.Bool("debug", false, "enable debug logging")
	writeConfig := flag.String("write-config", "", "write the effective config to this path and exit")
	flag.Parse()

	if err := logger.Init(*debug); err != nil {
		panic(err)
	}

	code := run(*configPath, *watch, *writeConfig)
	logger.Sync()
	os.Exit(code)
}

func run(configPath string, watch bool, writeConfig string) int {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			logger.Log.Error("Could not load config", zap.String("path", configPath), zap.Error(err))
			return 1
		}
		cfg = loaded
	}
	if writeConfig != "" {
		if err := config.Save(writeConfig, cfg); err != nil {
			logger.Log.Error("Could not write config", zap.Error(err))
			return 1
		}
		logger.Log.Info("Wrote config", zap.String("path", writeConfig))
		return 0
	}
	if cfg.Debug {
		if err := logger.Init(true); err != nil {
			logger.Log.Warn("Could not switch to debug logging", zap.Error(err))
		}
	}

	eng := engine.New(cfg)
	defer eng.Close()

	if watch && configPath != "" {
		if err := eng.WatchConfig(configPath); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := eng.Run(ctx); err != nil {
		logger.Log.Error("Engine stopped", zap.Error(err))
		return 1
	}
	return 0
}
