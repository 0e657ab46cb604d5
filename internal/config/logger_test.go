package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadLoggerConfigFromEnv(t *testing.T) {
	t.Run("defaults to json on stdout at info", func(t *testing.T) {
		for _, key := range []string{"LOG_LEVEL", "LOG_FORMAT", "LOG_OUTPUT"} {
			t.Setenv(key, "")
		}

		cfg := LoadLoggerConfigFromEnv()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "json", cfg.Format)
		assert.Equal(t, "stdout", cfg.Output)
	})

	t.Run("environment overrides every field", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("LOG_FORMAT", "console")
		t.Setenv("LOG_OUTPUT", "stderr")

		cfg := LoadLoggerConfigFromEnv()
		assert.Equal(t, "debug", cfg.Level)
		assert.Equal(t, "console", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
	})
}

func TestLoggerConfig_Validate(t *testing.T) {
	t.Run("accepts every known level", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			cfg := LoggerConfig{Level: level, Format: "json"}
			assert.NoError(t, cfg.Validate(), "level %s should be valid", level)
		}
	})

	t.Run("rejects unknown level", func(t *testing.T) {
		cfg := LoggerConfig{Level: "verbose", Format: "json"}
		assert.ErrorContains(t, cfg.Validate(), "invalid log level")
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		cfg := LoggerConfig{Level: "info", Format: "xml"}
		assert.ErrorContains(t, cfg.Validate(), "invalid log format")
	})
}
