package config

import "context"

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads every configuration file reachable from paths, merges them
	// and returns the unified model. A failed load returns a nil model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
