// Package logging builds the zap logger used by textstats.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"harshagw/textstats/internal/config"
)

// New builds a logger writing to stderr so diagnostics never mix with the
// interactive output on stdout. The testing profile gets a no-op logger.
func New(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Env == config.EnvTesting {
		return zap.NewNop(), nil
	}
	return build(cfg.Logging, []string{"stderr"})
}

func build(cfg config.Logging, outputs []string) (*zap.Logger, error) {
	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(ParseLevel(cfg.Level)),
		Development:      cfg.Format == "console",
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
	}
	if cfg.Format == "console" {
		zapConfig.Encoding = "console"
	}

	return zapConfig.Build(zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel maps a configuration level name to a zap level. Unknown names
// map to info.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
