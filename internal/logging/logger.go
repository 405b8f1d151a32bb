// Package logging builds the zap logger used by the converter.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration.
type Config struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string

	// Format is "console" or "json".
	Format string

	// OutputPath defaults to stderr so stdout stays free for command output.
	OutputPath string
}

// New creates a logger from config.
func New(config Config) (*zap.Logger, error) {
	var zapConfig zap.Config
	if strings.EqualFold(config.Format, "json") {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.DisableStacktrace = true
	}

	level, err := zap.ParseAtomicLevel(strings.ToLower(config.Level))
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapConfig.Level = level

	output := config.OutputPath
	if output == "" {
		output = "stderr"
	}
	zapConfig.OutputPaths = []string{output}
	zapConfig.ErrorOutputPaths = []string{"stderr"}

	return zapConfig.Build()
}

// NewDefault creates an info-level console logger, falling back to a no-op
// logger if zap cannot be built.
func NewDefault() *zap.Logger {
	logger, err := New(Config{Level: "info", Format: "console"})
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
