package app

import (
	"io"
	"log/slog"

	"github.com/vk/buildcfg/internal/cleaner"
	"github.com/vk/buildcfg/internal/config"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	// cleanOpts are passed to every clean action the App registers.
	cleanOpts []cleaner.Option
}

// NewApp wires an App. Resolved configuration goes to outW (unless an output
// file is configured) and log records go to logW, so the two never mix.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
	}
}
