// Package config holds voxpost configuration: a YAML file with environment
// overrides, validated before anything is constructed from it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Interpreter InterpreterConfig `yaml:"interpreter"`
	Classifier  ClassifierConfig  `yaml:"classifier"`
	Store       StoreConfig       `yaml:"store"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// InterpreterConfig tunes the command parser.
type InterpreterConfig struct {
	// ConfidenceThreshold gates fallback invocation and suggestion
	// generation. Zero means the parser default (0.7).
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// ClassifierConfig configures the optional remote fallback classifier.
type ClassifierConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Timeout string `yaml:"timeout"` // Go duration string, e.g. "10s"
}

// StoreConfig configures the learned phrase store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig configures the zap logger built in cmd.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Interpreter: InterpreterConfig{ConfidenceThreshold: 0.7},
		Classifier:  ClassifierConfig{Model: "gemini-2.0-flash", Timeout: "10s"},
		Store:       StoreConfig{Path: ".voxpost/phrases.db"},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads the config file at path, layered over defaults, then applies
// environment overrides and validates. A missing file is fine: defaults
// plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// defaults only
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides layers environment variables on top of file values.
// A Gemini key in the environment implies the classifier is wanted.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("VOXPOST_GEMINI_API_KEY"); key != "" {
		c.Classifier.APIKey = key
		c.Classifier.Enabled = true
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Classifier.APIKey = key
		c.Classifier.Enabled = true
	}
	if model := os.Getenv("VOXPOST_CLASSIFIER_MODEL"); model != "" {
		c.Classifier.Model = model
	}
	if path := os.Getenv("VOXPOST_STORE_PATH"); path != "" {
		c.Store.Path = path
	}
	if level := os.Getenv("VOXPOST_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate fails fast on configuration that reflects a programming or
// deployment error rather than user input.
func (c *Config) Validate() error {
	if t := c.Interpreter.ConfidenceThreshold; t < 0 || t > 1 {
		return fmt.Errorf("interpreter.confidence_threshold %v outside [0,1]", t)
	}
	if c.Classifier.Enabled && c.Classifier.APIKey == "" {
		return fmt.Errorf("classifier.enabled requires an API key")
	}
	if c.Classifier.Timeout != "" {
		if _, err := time.ParseDuration(c.Classifier.Timeout); err != nil {
			return fmt.Errorf("classifier.timeout: %w", err)
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// ClassifierTimeout returns the parsed timeout, or zero when unset.
// Validate has already rejected malformed values.
func (c *Config) ClassifierTimeout() time.Duration {
	if c.Classifier.Timeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Classifier.Timeout)
	return d
}
