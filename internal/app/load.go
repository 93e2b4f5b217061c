package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
)

// ErrNoGraph is returned when the configured paths hold no graph files.
var ErrNoGraph = errors.New("no graph files found")

// Load reads the configured paths with every loader and merges the results
// into one model, HCL first.
func (a *App) Load(ctx context.Context) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading graph assets...", "paths", a.config.GraphPaths)

	merged := &config.Model{}
	for _, l := range a.loaders {
		m, err := l.Load(ctx, a.config.GraphPaths...)
		if err != nil {
			return nil, fmt.Errorf("failed to load graph: %w", err)
		}
		if len(m.Sources) == 0 {
			continue
		}
		merged.Merge(m)
	}
	if len(merged.Sources) == 0 {
		return nil, fmt.Errorf("%w in %v", ErrNoGraph, a.config.GraphPaths)
	}
	if len(a.config.Entry) > 0 {
		merged.Entry = a.config.Entry
	}

	logger.Info("Graph loaded.", "graph", merged.Name, "files", len(merged.Sources), "nodes", len(merged.Nodes))
	return merged, nil
}
