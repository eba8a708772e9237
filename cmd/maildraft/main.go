package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/maildraft/maildraft-cli/cmd/commands"
	"github.com/maildraft/maildraft-cli/internal/cli"
	"github.com/maildraft/maildraft-cli/internal/logger"
	"github.com/maildraft/maildraft-cli/pkg/api"
	"github.com/maildraft/maildraft-cli/pkg/config"
	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/store"
	"github.com/maildraft/maildraft-cli/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	flagConfig  string
	flagQuiet   bool
	flagNoColor bool
	flagYes     bool
)

var rootCmd = &cobra.Command{
	Use:   "maildraft",
	Short: "Terminal client for the email improvement service",
	Long: `Maildraft is a terminal client for an email improvement service.
Compose an email, seed it from a reusable template, submit it for
improvement, and review the suggestions and corrections. Templates and
their categories are managed against the remote store.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cli.SetGlobalFlags(flagQuiet, flagNoColor, flagYes)
		commands.SetConfigPath(flagConfig)
	},
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load(flagConfig)
		if err != nil {
			cli.PrintWarning("using default settings: %v", err)
			settings = models.DefaultSettings()
		}

		// The TUI owns stdout, so interactive sessions log to a file.
		log := logger.NewFile(settings.Logging.File, settings.Logging.Level)
		client := api.New(settings.API.BaseURL, settings.API.Timeout, log)
		templates := store.New(client, log)

		app := tui.NewApp(settings, client, templates, log)
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Failed to start the terminal user interface: %v\n", err)
			fmt.Fprintf(os.Stderr, "This could be due to terminal compatibility issues. Try running in a different terminal.\n")
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Maildraft",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Maildraft version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewImproveCommand())
	rootCmd.AddCommand(commands.NewTemplatesCommand())
	rootCmd.AddCommand(commands.NewCategoriesCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
