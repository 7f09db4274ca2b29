// Package logger builds the zap logger shared by the CLI and the HTTP server.
package logger

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a sugared logger writing to stderr. env "development" selects the
// human-readable console encoder; anything else gets JSON.
func New(level, env string) (*zap.SugaredLogger, error) {
	if strings.TrimSpace(level) == "" {
		level = "info"
	}
	atomic, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}

	var config zap.Config
	if env == "development" {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.Level = atomic
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}

	l, err := config.Build()
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	return l.Sugar(), nil
}
