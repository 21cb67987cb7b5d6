package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Config holds application configuration.
type Config struct {
	Gesture             string `json:"gesture"`
	DoubleTapMs         int    `json:"doubleTapMs"`
	StartupDelayMs      int    `json:"startupDelayMs"`
	AutoOpenBaseDelayMs int    `json:"autoOpenBaseDelayMs"`
	AutoOpenStaggerMs   int    `json:"autoOpenStaggerMs"`
	CullConcurrency     int    `json:"cullConcurrency"`
	LogLevel            string `json:"logLevel"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Gesture:             "ctrl+b",
		DoubleTapMs:         400,
		StartupDelayMs:      3000,
		AutoOpenBaseDelayMs: 1000,
		AutoOpenStaggerMs:   500,
		CullConcurrency:     8,
		LogLevel:            "info",
	}
}

// DoubleTapWindow is how long the gesture waits for a second tap.
func (c Config) DoubleTapWindow() time.Duration {
	return time.Duration(c.DoubleTapMs) * time.Millisecond
}

// StartupDelay is how long auto-open waits before checking for a restart.
func (c Config) StartupDelay() time.Duration {
	return time.Duration(c.StartupDelayMs) * time.Millisecond
}

// AutoOpenBaseDelay is the delay before the first folder is reopened.
func (c Config) AutoOpenBaseDelay() time.Duration {
	return time.Duration(c.AutoOpenBaseDelayMs) * time.Millisecond
}

// AutoOpenStagger is the extra delay added per reopened folder.
func (c Config) AutoOpenStagger() time.Duration {
	return time.Duration(c.AutoOpenStaggerMs) * time.Millisecond
}

// LoadConfig reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Non-fatal: return defaults even if save fails
			_ = SaveConfig(path, &config)
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.Gesture == "" {
		config.Gesture = defaults.Gesture
	}
	if config.DoubleTapMs <= 0 {
		config.DoubleTapMs = defaults.DoubleTapMs
	}
	if config.StartupDelayMs <= 0 {
		config.StartupDelayMs = defaults.StartupDelayMs
	}
	if config.AutoOpenBaseDelayMs <= 0 {
		config.AutoOpenBaseDelayMs = defaults.AutoOpenBaseDelayMs
	}
	if config.AutoOpenStaggerMs <= 0 {
		config.AutoOpenStaggerMs = defaults.AutoOpenStaggerMs
	}
	if config.CullConcurrency <= 0 {
		config.CullConcurrency = defaults.CullConcurrency
	}
	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}

	return &config, nil
}

// SaveConfig writes config to the JSON file.
// Creates the directory if it doesn't exist.
func SaveConfig(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfigFilePath returns the default config path: ~/.config/af/config.json
func DefaultConfigFilePath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// DefaultLogPath returns the default log path: ~/.config/af/af.log
func DefaultLogPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "af.log"), nil
}
