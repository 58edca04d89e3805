package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Path is the root to scan for analyzable files.
	Path string
	// ManifestsPath is where the inspector .hcl manifests live.
	ManifestsPath string

	LogFormat string
	LogLevel  string

	// Workers bounds concurrent item analysis.
	Workers int
	// MinChainLength is the reporting threshold for dependency chains.
	MinChainLength int
	// GraphOnly prints the dependency-graph diagnostics and exits
	// without scanning anything.
	GraphOnly bool
	// Watch keeps the process resident, re-running inspectors on items
	// that change on disk.
	Watch bool
}

// NewConfig validates a raw configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" && !cfg.GraphOnly {
		return nil, errors.New("Path is a required configuration field and cannot be empty")
	}
	if cfg.Workers < 0 {
		return nil, errors.New("Workers cannot be negative")
	}
	if cfg.MinChainLength < 2 {
		cfg.MinChainLength = 2
	}
	return &cfg, nil
}
