package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // path to the root .cdrl document
	InputPath  string // path to the XML document to filter

	Profile   string // baseProfile[,subProfile,...], empty selects the default profile
	LogFormat string
	LogLevel  string

	ReaderPoolSize int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.ReaderPoolSize <= 0 {
		cfg.ReaderPoolSize = 4
	}

	return &cfg, nil
}
