package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/tracklens/tracklens/app"
	"github.com/tracklens/tracklens/config"
	"github.com/tracklens/tracklens/debug"
)

func main() {
	var (
		cfgPath = flag.String("config", config.DefaultPath(), "path to the config file")
		apiURL  = flag.String("api", "", "backend base URL (overrides config)")
		token   = flag.String("token", "", "backend API token (overrides config)")
		userID  = flag.String("user", "", "user to load on startup")
		date    = flag.String("date", "", "day to load on startup (YYYY-MM-DD)")
		debugOn = flag.Bool("debug", false, "enable debug logging and runtime stats")
	)
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		// Fall back to defaults but tell the user their file is broken.
		slog.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *token != "" {
		cfg.APIToken = *token
	}
	if *debugOn {
		cfg.Debug = true
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)
	slog.SetDefault(logger)

	if cfg.Debug {
		debug.StartGoroutineLogger(2*time.Second, logger)
		debug.StartMemLogger(5*time.Second, logger)
	}

	application := app.NewApp("TrackLens", 1024, 720, cfg, *cfgPath, logger, *userID, *date)
	if err := application.Start(); err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}
}
