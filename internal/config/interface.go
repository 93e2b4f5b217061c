package config

import (
	"context"
)

// Loader reads graph assets from files and translates them into a Model.
type Loader interface {
	// Load reads every supported file among paths (directories are walked)
	// and merges them into one Model.
	Load(ctx context.Context, paths ...string) (*Model, error)
	// Extensions lists the file extensions the loader handles, e.g. ".hcl".
	Extensions() []string
}
