package cli

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/maildraft/maildraft-cli/internal/logger"
	"github.com/maildraft/maildraft-cli/pkg/api"
	"github.com/maildraft/maildraft-cli/pkg/config"
	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/store"
)

// CommandContext wires the pieces every command needs: settings, the
// service client, and the template store. Commands log to stderr so
// stdout stays clean for -o json/yaml output.
type CommandContext struct {
	Settings *models.Settings
	Log      zerolog.Logger
	Client   *api.Client
	Store    *store.Store
}

// NewCommandContext loads settings and builds the client stack. A
// broken config file falls back to defaults with a warning instead of
// blocking the command.
func NewCommandContext(configPath string) *CommandContext {
	settings, err := config.Load(configPath)
	if err != nil {
		PrintWarning("using default settings: %v", err)
		settings = models.DefaultSettings()
	}

	log := logger.New(os.Stderr, settings.Logging.Level)
	client := api.New(settings.API.BaseURL, settings.API.Timeout, log)

	return &CommandContext{
		Settings: settings,
		Log:      log,
		Client:   client,
		Store:    store.New(client, log),
	}
}
