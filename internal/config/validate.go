package config

import (
	"fmt"

	"harshagw/textstats/internal/analysis"
	"harshagw/textstats/internal/source"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateInput(); err != nil {
		return err
	}
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateInput() error {
	for _, name := range c.Input.Encodings {
		if !source.KnownEncoding(name) {
			return fmt.Errorf("input.encodings: unsupported encoding %q", name)
		}
	}
	if c.Input.MaxFileSize <= 0 {
		return fmt.Errorf("input.max_file_size must be positive, got %d", c.Input.MaxFileSize)
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.MaxN < analysis.MinN || c.Analysis.MaxN > analysis.MaxN {
		return fmt.Errorf("analysis.max_n must be between %d and %d, got %d", analysis.MinN, analysis.MaxN, c.Analysis.MaxN)
	}
	if c.Analysis.DefaultN < analysis.MinN || c.Analysis.DefaultN > c.Analysis.MaxN {
		return fmt.Errorf("analysis.default_n must be between %d and %d, got %d", analysis.MinN, c.Analysis.MaxN, c.Analysis.DefaultN)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level)
	}
	return nil
}
