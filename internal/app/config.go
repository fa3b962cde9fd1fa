package app

import (
	"errors"

	"github.com/vk/buildcfg/internal/report"
)

// Config holds everything an App needs for one run.
type Config struct {
	ConfigPath string // .hcl file or directory
	OutputPath string // empty writes to the App's output writer
	Format     report.Format
	Clean      bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = report.FormatYAML
	}
	if _, err := report.ParseFormat(string(cfg.Format)); err != nil {
		return nil, err
	}
	return &cfg, nil
}
