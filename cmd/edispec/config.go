package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/reoring/edispec/internal/util/strutil"
)

type config struct {
	LogLevel slog.Level
	Lang     string
	Output   string
}

// loadConfig reads .env (if any) and the EDISPEC_* environment.
func loadConfig() config {
	_ = godotenv.Load()

	cfg := config{
		LogLevel: slog.LevelInfo,
		Lang:     strutil.FirstNonEmpty(os.Getenv("EDISPEC_LANG"), "en"),
		Output:   strings.ToLower(strutil.FirstNonEmpty(os.Getenv("EDISPEC_OUTPUT"), "json")),
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("EDISPEC_LOG_LEVEL"))) {
	case "debug":
		cfg.LogLevel = slog.LevelDebug
	case "warn":
		cfg.LogLevel = slog.LevelWarn
	case "error":
		cfg.LogLevel = slog.LevelError
	}
	return cfg
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
