package commands

import (
	"github.com/maildraft/maildraft-cli/internal/cli"
)

// configPath is set from the root command's --config flag before any
// subcommand runs.
var configPath string

// SetConfigPath records the config file path for subcommands.
func SetConfigPath(path string) {
	configPath = path
}

func newContext() *cli.CommandContext {
	return cli.NewCommandContext(configPath)
}
