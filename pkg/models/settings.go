package models

import "time"

// Settings represents the application configuration
type Settings struct {
	API     APISettings     `yaml:"api"`
	UI      UISettings      `yaml:"ui"`
	Logging LoggingSettings `yaml:"logging"`
}

// APISettings locates the improvement service.
type APISettings struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

// UISettings controls composer preferences.
type UISettings struct {
	DefaultTone     Tone     `yaml:"default_tone"`
	DefaultLength   Length   `yaml:"default_length"`
	DefaultLanguage Language `yaml:"default_language"`
	ShowCorrections bool     `yaml:"show_corrections"`
}

// LoggingSettings controls the log file written while the TUI owns stdout.
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		API: APISettings{
			BaseURL: "http://localhost:8000",
			Timeout: 30 * time.Second,
		},
		UI: UISettings{
			DefaultTone:     ToneProfessional,
			DefaultLength:   LengthMedium,
			DefaultLanguage: LanguageEnglish,
			ShowCorrections: true,
		},
		Logging: LoggingSettings{
			Level: "info",
		},
	}
}
