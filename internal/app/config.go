package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // manifest + scenario files (.hcl, .yaml, .yml)
	TypesPath    string // optional extra path for shared type manifests

	LogFormat        string
	LogLevel         string
	TranscriptFormat string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		return nil, errors.New("ScenarioPath is a required configuration field and cannot be empty")
	}
	if cfg.TranscriptFormat == "" {
		cfg.TranscriptFormat = "text"
	}
	return &cfg, nil
}
