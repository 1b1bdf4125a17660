package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// applyEnv overrides file values with TEXTSTATS_* environment variables.
func (c *Config) applyEnv() error {
	if value, ok := os.LookupEnv("TEXTSTATS_INPUT_DIR"); ok {
		c.Paths.InputDir = value
	}
	if value, ok := os.LookupEnv("TEXTSTATS_OUTPUT_DIR"); ok {
		c.Paths.OutputDir = value
	}
	if value, ok := os.LookupEnv("TEXTSTATS_DATA_DIR"); ok {
		c.Paths.DataDir = value
	}
	if value, ok := os.LookupEnv("TEXTSTATS_LOG_LEVEL"); ok {
		c.Logging.Level = value
	}
	if value, ok := os.LookupEnv("TEXTSTATS_LOG_FORMAT"); ok {
		c.Logging.Format = value
	}
	if value, ok := os.LookupEnv("TEXTSTATS_MAX_FILE_SIZE"); ok {
		size, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("TEXTSTATS_MAX_FILE_SIZE: %w", err)
		}
		c.Input.MaxFileSize = size
	}
	return nil
}

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeInput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		c.Paths.InputDir = defaultInputDir
	}
	if c.Paths.InputDir, err = expandPath(c.Paths.InputDir); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeInput() {
	encodings := make([]string, 0, len(c.Input.Encodings))
	for _, name := range c.Input.Encodings {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			encodings = append(encodings, name)
		}
	}
	if len(encodings) == 0 {
		encodings = append(encodings, defaultEncodings...)
	}
	c.Input.Encodings = encodings

	suffixes := make([]string, 0, len(c.Input.Suffixes))
	for _, suffix := range c.Input.Suffixes {
		suffix = strings.ToLower(strings.TrimSpace(suffix))
		if suffix == "" {
			continue
		}
		if !strings.HasPrefix(suffix, ".") {
			suffix = "." + suffix
		}
		suffixes = append(suffixes, suffix)
	}
	if len(suffixes) == 0 {
		suffixes = append(suffixes, defaultSuffixes...)
	}
	c.Input.Suffixes = suffixes
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
