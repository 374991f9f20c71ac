package config

import (
	"context"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads type manifests and scenario blocks from the given paths and
	// translates them into the format-agnostic model. Attribute defaults,
	// object state and call arguments are evaluated during loading, so the
	// returned model is free of source-format expression types.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
