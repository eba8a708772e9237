// Package config loads application settings: defaults, then the YAML
// config file, then MAILDRAFT_* environment variables. A .env file in
// the working directory is honored for the environment step.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

const (
	// EnvBaseURL overrides api.base_url.
	EnvBaseURL = "MAILDRAFT_API_URL"
	// EnvTimeout overrides api.timeout, as a Go duration string.
	EnvTimeout = "MAILDRAFT_API_TIMEOUT"
	// EnvLogLevel overrides logging.level.
	EnvLogLevel = "MAILDRAFT_LOG_LEVEL"
	// EnvLogFile overrides logging.file.
	EnvLogFile = "MAILDRAFT_LOG_FILE"
)

// DefaultPath returns the config file location under the user config
// directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(configDir, "maildraft", "config.yaml")
}

// Load reads settings from path. A missing file is not an error; the
// defaults apply. Environment variables win over the file.
func Load(path string) (*models.Settings, error) {
	// Best effort: a missing .env file is the normal case.
	_ = godotenv.Load()

	settings := models.DefaultSettings()

	if path == "" {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnv(settings)

	if settings.API.Timeout <= 0 {
		settings.API.Timeout = models.DefaultSettings().API.Timeout
	}

	return settings, nil
}

func applyEnv(settings *models.Settings) {
	if v := os.Getenv(EnvBaseURL); v != "" {
		settings.API.BaseURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			settings.API.Timeout = d
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		settings.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		settings.Logging.File = v
	}
}

// Save writes settings back to path, creating parent directories.
func Save(path string, settings *models.Settings) error {
	if path == "" {
		path = DefaultPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
