// Package logging builds the zap loggers used by the CLI and HTTP server.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Format values accepted by New.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// New builds a logger at the given level. "console" selects the development
// encoder; anything else gets the production JSON encoder. Both write to stderr.
func New(level, format string) (*zap.Logger, error) {
	var zapCfg zap.Config
	if format == FormatConsole {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: parse log level: %w", err)
	}
	zapCfg.Level.SetLevel(lvl)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}

// Init builds a logger and installs it as the zap global. The returned func
// flushes buffered entries.
func Init(level, format string) (func(), error) {
	logger, err := New(level, format)
	if err != nil {
		return func() {}, err
	}
	restore := zap.ReplaceGlobals(logger)
	return func() {
		_ = logger.Sync()
		restore()
	}, nil
}

// Redact returns a field that shows only the last four characters of a secret.
func Redact(key, secret string) zap.Field {
	return zap.String(key, Mask(secret))
}

// Mask hides all but the last four characters of secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return "****" + secret[len(secret)-4:]
}
