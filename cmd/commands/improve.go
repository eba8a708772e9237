package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maildraft/maildraft-cli/internal/cli"
	"github.com/maildraft/maildraft-cli/pkg/api"
	"github.com/maildraft/maildraft-cli/pkg/models"
)

// ImproveResult represents the output structure for the improve command
type ImproveResult struct {
	Subject         string   `json:"subject,omitempty" yaml:"subject,omitempty"`
	ImprovedContent string   `json:"improved_content" yaml:"improved_content"`
	Suggestions     []string `json:"suggestions" yaml:"suggestions"`
	Corrections     []string `json:"corrections" yaml:"corrections"`
}

var (
	improveSubject  string
	improveTone     string
	improveLength   string
	improveLanguage string
)

// NewImproveCommand creates the improve command
func NewImproveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "improve [file]",
		Short: "Improve an email without starting the TUI",
		Long: `Submit email content to the improvement service and print the result.

The content is read from the given file, or from stdin when no file is
given. The improved email, suggestions, and corrections are written to
stdout.

Examples:
  # Improve an email from a file
  maildraft improve draft.txt

  # Improve from stdin with a casual tone
  cat draft.txt | maildraft improve --tone casual

  # Short German version with JSON output
  maildraft improve draft.txt --length short --language de -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImprove,
	}

	cmd.Flags().StringVarP(&improveSubject, "subject", "s", "", "Email subject line")
	cmd.Flags().StringVarP(&improveTone, "tone", "t", "", "Tone: professional, casual, formal, friendly")
	cmd.Flags().StringVarP(&improveLength, "length", "l", "", "Length: short, medium, long")
	cmd.Flags().StringVar(&improveLanguage, "language", "", "Language: en, es, fr, de")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")

	return cmd
}

func runImprove(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")

	content, err := readContent(args)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("email content is empty")
	}

	ctx := newContext()
	draft := models.Draft{
		Subject:  improveSubject,
		Content:  content,
		Tone:     ctx.Settings.UI.DefaultTone,
		Length:   ctx.Settings.UI.DefaultLength,
		Language: ctx.Settings.UI.DefaultLanguage,
	}

	if improveTone != "" {
		if draft.Tone, err = cli.ParseTone(improveTone); err != nil {
			return err
		}
	}
	if improveLength != "" {
		if draft.Length, err = cli.ParseLength(improveLength); err != nil {
			return err
		}
	}
	if improveLanguage != "" {
		if draft.Language, err = cli.ParseLanguage(improveLanguage); err != nil {
			return err
		}
	}

	result, err := ctx.Client.Improve(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("%s", api.ErrorMessage(err))
	}

	out := ImproveResult{
		Subject:         draft.Subject,
		ImprovedContent: result.ImprovedContent,
		Suggestions:     result.Suggestions,
		Corrections:     result.Corrections,
	}

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, out)
	default:
		return outputImproveText(cmd, out)
	}
}

func readContent(args []string) (string, error) {
	if len(args) > 0 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func outputImproveText(cmd *cobra.Command, result ImproveResult) error {
	w := cmd.OutOrStdout()

	if result.Subject != "" {
		fmt.Fprintf(w, "Subject: %s\n\n", result.Subject)
	}
	fmt.Fprintln(w, result.ImprovedContent)

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(w, "\nSuggestions:")
		for _, s := range result.Suggestions {
			fmt.Fprintf(w, "  - %s\n", s)
		}
	}
	if len(result.Corrections) > 0 {
		fmt.Fprintln(w, "\nCorrections:")
		for _, c := range result.Corrections {
			fmt.Fprintf(w, "  - %s\n", c)
		}
	}
	return nil
}
