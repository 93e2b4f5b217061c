package app

import (
	"errors"
	"fmt"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	GraphPaths []string // .hcl / .yaml files or directories
	Entry      []string // overrides the asset's entry nodes

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Deferred bool
	MaxDepth int
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("GraphPaths is a required configuration field and cannot be empty")
	}
	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("MaxDepth cannot be negative, got %d", cfg.MaxDepth)
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("HealthcheckPort out of range: %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
