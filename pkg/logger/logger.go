// Package logger builds the zap logger shared by every dashboard
// component.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/chuehnone/developers-dashboard/internal/config"
)

// New builds a logger from the environment-driven configuration.
func New() (*zap.SugaredLogger, error) {
	return NewWithConfig(config.LoadLoggerConfigFromEnv())
}

// NewWithConfig builds a sugared logger. The console format switches
// to the human-readable development preset; json keeps the production
// one. An unparseable level falls back to info instead of failing
// startup.
func NewWithConfig(cfg config.LoggerConfig) (*zap.SugaredLogger, error) {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	// zap resolves stdout, stderr and plain file paths as sinks.
	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	zapCfg.OutputPaths = []string{output}
	zapCfg.ErrorOutputPaths = []string{"stderr"}

	base, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return base.Sugar(), nil
}
