package config

import "context"

// Loader is the interface for a format-specific definition loader.
type Loader interface {
	// Load reads inspector definitions from the given paths, translates
	// them into the format-agnostic model, and returns it. Later paths
	// must not redefine a name loaded from an earlier one.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
