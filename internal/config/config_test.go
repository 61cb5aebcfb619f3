package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("VOXPOST_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.7, cfg.Interpreter.ConfidenceThreshold)
	assert.False(t, cfg.Classifier.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.ClassifierTimeout())
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	t.Setenv("VOXPOST_GEMINI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
interpreter:
  confidence_threshold: 0.6
store:
  path: /tmp/custom.db
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Interpreter.ConfidenceThreshold)
	assert.Equal(t, "/tmp/custom.db", cfg.Store.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("gemini key enables classifier", func(t *testing.T) {
		t.Setenv("VOXPOST_GEMINI_API_KEY", "key-1")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Classifier.Enabled)
		assert.Equal(t, "key-1", cfg.Classifier.APIKey)
	})

	t.Run("voxpost-prefixed key wins", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "generic")
		t.Setenv("VOXPOST_GEMINI_API_KEY", "specific")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "specific", cfg.Classifier.APIKey)
	})

	t.Run("log level override", func(t *testing.T) {
		t.Setenv("VOXPOST_LOG_LEVEL", "warn")

		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "warn", cfg.Logging.Level)
	})
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, ok: true},
		{name: "threshold too high", mutate: func(c *Config) { c.Interpreter.ConfidenceThreshold = 1.2 }, ok: false},
		{name: "threshold negative", mutate: func(c *Config) { c.Interpreter.ConfidenceThreshold = -0.2 }, ok: false},
		{name: "classifier without key", mutate: func(c *Config) { c.Classifier.Enabled = true }, ok: false},
		{name: "classifier with key", mutate: func(c *Config) { c.Classifier.Enabled = true; c.Classifier.APIKey = "k" }, ok: true},
		{name: "bad timeout", mutate: func(c *Config) { c.Classifier.Timeout = "soon" }, ok: false},
		{name: "bad log level", mutate: func(c *Config) { c.Logging.Level = "loud" }, ok: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
