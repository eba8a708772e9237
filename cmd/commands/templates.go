package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maildraft/maildraft-cli/internal/cli"
	"github.com/maildraft/maildraft-cli/pkg/models"
)

// TemplateListResult represents the output structure for template listing
type TemplateListResult struct {
	Items []TemplateListItem `json:"items" yaml:"items"`
	Count int                `json:"count" yaml:"count"`
}

// TemplateListItem represents a single template in the list
type TemplateListItem struct {
	ID       int      `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Subject  string   `json:"subject" yaml:"subject"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Tags     []string `json:"tags" yaml:"tags"`
	IsPublic bool     `json:"is_public" yaml:"is_public"`
}

var (
	tplName       string
	tplSubject    string
	tplContent    string
	tplFile       string
	tplCategoryID int
	tplTags       string
	tplPublic     bool
)

// NewTemplatesCommand creates the templates command group
func NewTemplatesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage email templates",
		Long: `List, create, edit, and delete email templates on the remote store.

Examples:
  # List all templates
  maildraft templates list

  # Create a template
  maildraft templates create --name "Follow-up" --subject "Following up" --content "Hi,..."

  # Create with content from a file
  maildraft templates create --name "Intro" --subject "Hello" --file intro.txt

  # Edit a template's tags
  maildraft templates edit 3 --tags "sales, outreach"

  # Delete a template
  maildraft templates delete 3`,
	}

	cmd.AddCommand(newTemplatesListCommand())
	cmd.AddCommand(newTemplatesCreateCommand())
	cmd.AddCommand(newTemplatesEditCommand())
	cmd.AddCommand(newTemplatesDeleteCommand())

	return cmd
}

func newTemplatesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all templates",
		RunE:  runTemplatesList,
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
	return cmd
}

func newTemplatesCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new template",
		RunE:  runTemplatesCreate,
	}
	addTemplateFlags(cmd)
	return cmd
}

func newTemplatesEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing template",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemplatesEdit,
	}
	addTemplateFlags(cmd)
	return cmd
}

func newTemplatesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a template",
		Args:  cobra.ExactArgs(1),
		RunE:  runTemplatesDelete,
	}
	cmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
	return cmd
}

func addTemplateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&tplName, "name", "", "Template name")
	cmd.Flags().StringVar(&tplSubject, "subject", "", "Template subject line")
	cmd.Flags().StringVar(&tplContent, "content", "", "Template body")
	cmd.Flags().StringVar(&tplFile, "file", "", "Read the template body from a file")
	cmd.Flags().IntVar(&tplCategoryID, "category", 0, "Category id (0 for none)")
	cmd.Flags().StringVar(&tplTags, "tags", "", "Comma-separated tags")
	cmd.Flags().BoolVar(&tplPublic, "public", false, "Mark the template as public")
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	ctx := newContext()

	if err := ctx.Store.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch templates: %w", err)
	}

	var result TemplateListResult
	for _, tpl := range ctx.Store.Templates() {
		result.Items = append(result.Items, TemplateListItem{
			ID:       tpl.ID,
			Name:     tpl.Name,
			Subject:  tpl.Subject,
			Category: ctx.Store.CategoryName(tpl.CategoryID),
			Tags:     models.ParseTags(tpl.Tags),
			IsPublic: tpl.IsPublic,
		})
	}
	result.Count = len(result.Items)

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputTemplatesText(cmd, result)
	}
}

func outputTemplatesText(cmd *cobra.Command, result TemplateListResult) error {
	if result.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "NAME", "SUBJECT", "CATEGORY", "TAGS", "PUBLIC")
	for _, item := range result.Items {
		public := ""
		if item.IsPublic {
			public = "yes"
		}
		table.Row(
			strconv.Itoa(item.ID),
			cli.TruncateString(item.Name, 30),
			cli.TruncateString(cli.FirstLine(item.Subject), 40),
			item.Category,
			strings.Join(item.Tags, ", "),
			public,
		)
	}
	table.Flush()
	return nil
}

func runTemplatesCreate(cmd *cobra.Command, args []string) error {
	draft, err := templateDraftFromFlags()
	if err != nil {
		return err
	}
	if err := cli.ValidateTemplateDraft(draft); err != nil {
		return err
	}

	ctx := newContext()
	created, err := ctx.Client.CreateTemplate(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}

	cli.PrintSuccess("Created template %q (id %d)", created.Name, created.ID)
	return nil
}

func runTemplatesEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid template id: %s", args[0])
	}

	ctx := newContext()
	if err := ctx.Store.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch templates: %w", err)
	}
	existing, ok := ctx.Store.Template(id)
	if !ok {
		return fmt.Errorf("template %d not found", id)
	}

	// Start from the current values and overlay whatever flags were set,
	// so an edit only has to name the fields it changes.
	draft := models.TemplateDraft{
		Name:       existing.Name,
		Subject:    existing.Subject,
		Content:    existing.Content,
		CategoryID: existing.CategoryID,
		Tags:       existing.Tags,
		IsPublic:   existing.IsPublic,
	}
	if cmd.Flags().Changed("name") {
		draft.Name = tplName
	}
	if cmd.Flags().Changed("subject") {
		draft.Subject = tplSubject
	}
	if cmd.Flags().Changed("content") || cmd.Flags().Changed("file") {
		content, err := templateContentFromFlags()
		if err != nil {
			return err
		}
		draft.Content = content
	}
	if cmd.Flags().Changed("category") {
		draft.CategoryID = tplCategoryID
	}
	if cmd.Flags().Changed("tags") {
		draft.Tags = tplTags
	}
	if cmd.Flags().Changed("public") {
		draft.IsPublic = tplPublic
	}

	if err := cli.ValidateTemplateDraft(draft); err != nil {
		return err
	}

	updated, err := ctx.Client.UpdateTemplate(cmd.Context(), id, draft)
	if err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}

	cli.PrintSuccess("Updated template %q (id %d)", updated.Name, updated.ID)
	return nil
}

func runTemplatesDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid template id: %s", args[0])
	}

	ctx := newContext()
	if err := ctx.Store.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch templates: %w", err)
	}
	existing, ok := ctx.Store.Template(id)
	if !ok {
		return fmt.Errorf("template %d not found", id)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		confirmed, err := cli.Confirm(fmt.Sprintf("Delete template %q?", existing.Name), false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := ctx.Client.DeleteTemplate(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	cli.PrintSuccess("Deleted template %q", existing.Name)
	return nil
}

func templateDraftFromFlags() (models.TemplateDraft, error) {
	content, err := templateContentFromFlags()
	if err != nil {
		return models.TemplateDraft{}, err
	}
	return models.TemplateDraft{
		Name:       tplName,
		Subject:    tplSubject,
		Content:    content,
		CategoryID: tplCategoryID,
		Tags:       tplTags,
		IsPublic:   tplPublic,
	}, nil
}

func templateContentFromFlags() (string, error) {
	if tplFile != "" {
		data, err := os.ReadFile(tplFile)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", tplFile, err)
		}
		return string(data), nil
	}
	return tplContent, nil
}
