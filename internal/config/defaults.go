package config

const (
	defaultInputDir    = "text-files"
	defaultOutputDir   = "text-analyzed"
	defaultDataDir     = "~/.local/share/textstats"
	defaultMaxFileSize = 10 * 1024 * 1024
	defaultN           = 10
	defaultMaxN        = 100
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultConfigPath  = "~/.config/textstats/config.toml"
	projectConfigName  = "textstats.toml"
)

// Profiles selectable through TEXTSTATS_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

var (
	defaultEncodings = []string{"utf-8", "cp1251"}
	defaultSuffixes  = []string{".txt"}
)

// Default returns a Config populated with repository defaults for the
// development profile.
func Default() Config {
	cfg := Config{
		Env: EnvDevelopment,
		Paths: Paths{
			InputDir:  defaultInputDir,
			OutputDir: defaultOutputDir,
			DataDir:   defaultDataDir,
		},
		Input: Input{
			Encodings:   append([]string(nil), defaultEncodings...),
			Suffixes:    append([]string(nil), defaultSuffixes...),
			MaxFileSize: defaultMaxFileSize,
		},
		Analysis: Analysis{
			DefaultN: defaultN,
			MaxN:     defaultMaxN,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		History: History{
			Enabled:    true,
			Vocabulary: true,
		},
	}
	cfg.applyProfile(EnvDevelopment)
	return cfg
}

// applyProfile sets the profile dependent defaults. Unknown profiles fall
// back to development.
func (c *Config) applyProfile(env string) {
	switch env {
	case EnvProduction:
		c.Env = EnvProduction
		c.Logging.Format = "json"
		c.Logging.Level = "info"
	case EnvTesting:
		c.Env = EnvTesting
		c.Logging.Format = "console"
		c.Logging.Level = "error"
	default:
		c.Env = EnvDevelopment
		c.Logging.Format = "console"
		c.Logging.Level = "debug"
	}
}
