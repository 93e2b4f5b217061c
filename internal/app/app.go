package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/flowgridgo/internal/config"
	"github.com/specialistvlad/flowgridgo/internal/ctxlog"
	"github.com/specialistvlad/flowgridgo/internal/graph"
	"github.com/specialistvlad/flowgridgo/internal/hclasset"
	"github.com/specialistvlad/flowgridgo/internal/nodetype"
	"github.com/specialistvlad/flowgridgo/internal/yamlasset"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	registry   *nodetype.Registry
	loaders    []config.Loader
	config     *Config
	httpServer *http.Server
	lastRun    atomic.Pointer[graph.Run]
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Without modules the built-in node types are registered.
func NewApp(outW io.Writer, cfg *Config, modules ...nodetype.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	a := &App{
		outW:    outW,
		logger:  logger,
		config:  cfg,
		loaders: []config.Loader{hclasset.NewLoader(), yamlasset.NewLoader()},
	}
	if len(modules) == 0 {
		modules = a.coreModules()
	}
	a.registry = nodetype.New(modules...)
	logger.Debug("All Go modules registered.", "count", len(modules), "types", a.registry.Len())

	// A broken type table is a programmer error, so we panic.
	if err := a.registry.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")
	return a
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *nodetype.Registry {
	return a.registry
}

// LastRun returns the most recent run, or nil before the first one.
func (a *App) LastRun() *graph.Run {
	return a.lastRun.Load()
}
