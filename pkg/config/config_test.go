package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	defaults := models.DefaultSettings()
	if settings.API.BaseURL != defaults.API.BaseURL {
		t.Errorf("base url = %q, want default %q", settings.API.BaseURL, defaults.API.BaseURL)
	}
	if settings.API.Timeout != defaults.API.Timeout {
		t.Errorf("timeout = %v, want default %v", settings.API.Timeout, defaults.API.Timeout)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `api:
  base_url: http://improve.internal:9000
  timeout: 10s
ui:
  default_tone: casual
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if settings.API.BaseURL != "http://improve.internal:9000" {
		t.Errorf("base url = %q", settings.API.BaseURL)
	}
	if settings.API.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", settings.API.Timeout)
	}
	if settings.UI.DefaultTone != models.ToneCasual {
		t.Errorf("default tone = %q, want casual", settings.UI.DefaultTone)
	}
	if settings.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", settings.Logging.Level)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api:\n  base_url: http://from-file\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(EnvBaseURL, "http://from-env")
	t.Setenv(EnvTimeout, "3s")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if settings.API.BaseURL != "http://from-env" {
		t.Errorf("base url = %q, want env value", settings.API.BaseURL)
	}
	if settings.API.Timeout != 3*time.Second {
		t.Errorf("timeout = %v, want 3s", settings.API.Timeout)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("api: [not a map"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	settings := models.DefaultSettings()
	settings.API.BaseURL = "http://saved"

	if err := Save(path, settings); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.API.BaseURL != "http://saved" {
		t.Errorf("base url = %q, want %q", loaded.API.BaseURL, "http://saved")
	}
}
