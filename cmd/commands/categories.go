package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/maildraft/maildraft-cli/internal/cli"
	"github.com/maildraft/maildraft-cli/pkg/models"
)

// CategoryListResult represents the output structure for category listing
type CategoryListResult struct {
	Items []CategoryListItem `json:"items" yaml:"items"`
	Count int                `json:"count" yaml:"count"`
}

// CategoryListItem represents a single category in the list
type CategoryListItem struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Templates   int    `json:"templates" yaml:"templates"`
}

var (
	catName        string
	catDescription string
)

// NewCategoriesCommand creates the categories command group
func NewCategoriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage template categories",
		Long: `List, create, edit, and delete template categories.

Deleting a category does not delete the templates that reference it;
those templates simply lose their category label.

Examples:
  # List all categories
  maildraft categories list

  # Create a category
  maildraft categories create --name "Sales" --description "Outbound sales emails"

  # Rename a category
  maildraft categories edit 2 --name "Outreach"

  # Delete a category
  maildraft categories delete 2`,
	}

	cmd.AddCommand(newCategoriesListCommand())
	cmd.AddCommand(newCategoriesCreateCommand())
	cmd.AddCommand(newCategoriesEditCommand())
	cmd.AddCommand(newCategoriesDeleteCommand())

	return cmd
}

func newCategoriesListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE:  runCategoriesList,
	}
	cmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
	return cmd
}

func newCategoriesCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new category",
		RunE:  runCategoriesCreate,
	}
	addCategoryFlags(cmd)
	return cmd
}

func newCategoriesEditCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing category",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoriesEdit,
	}
	addCategoryFlags(cmd)
	return cmd
}

func newCategoriesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE:  runCategoriesDelete,
	}
	cmd.Flags().BoolP("force", "f", false, "Delete without confirmation")
	return cmd
}

func addCategoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&catName, "name", "", "Category name")
	cmd.Flags().StringVar(&catDescription, "description", "", "Category description")
}

func runCategoriesList(cmd *cobra.Command, args []string) error {
	outputFormat, _ := cmd.Flags().GetString("output")
	ctx := newContext()

	if err := ctx.Store.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	counts := make(map[int]int)
	for _, tpl := range ctx.Store.Templates() {
		counts[tpl.CategoryID]++
	}

	var result CategoryListResult
	for _, cat := range ctx.Store.Categories() {
		result.Items = append(result.Items, CategoryListItem{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
			Templates:   counts[cat.ID],
		})
	}
	result.Count = len(result.Items)

	switch outputFormat {
	case "json", "yaml":
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, result)
	default:
		return outputCategoriesText(cmd, result)
	}
}

func outputCategoriesText(cmd *cobra.Command, result CategoryListResult) error {
	if result.Count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No categories found.")
		return nil
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("ID", "NAME", "DESCRIPTION", "TEMPLATES")
	for _, item := range result.Items {
		table.Row(
			strconv.Itoa(item.ID),
			cli.TruncateString(item.Name, 30),
			cli.TruncateString(item.Description, 50),
			strconv.Itoa(item.Templates),
		)
	}
	table.Flush()
	return nil
}

func runCategoriesCreate(cmd *cobra.Command, args []string) error {
	draft := models.CategoryDraft{Name: catName, Description: catDescription}
	if err := cli.ValidateCategoryDraft(draft); err != nil {
		return err
	}

	ctx := newContext()
	created, err := ctx.Client.CreateCategory(cmd.Context(), draft)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	cli.PrintSuccess("Created category %q (id %d)", created.Name, created.ID)
	return nil
}

func runCategoriesEdit(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category id: %s", args[0])
	}

	ctx := newContext()
	if err := ctx.Store.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	var existing *models.Category
	for _, cat := range ctx.Store.Categories() {
		if cat.ID == id {
			c := cat
			existing = &c
			break
		}
	}
	if existing == nil {
		return fmt.Errorf("category %d not found", id)
	}

	draft := models.CategoryDraft{Name: existing.Name, Description: existing.Description}
	if cmd.Flags().Changed("name") {
		draft.Name = catName
	}
	if cmd.Flags().Changed("description") {
		draft.Description = catDescription
	}
	if err := cli.ValidateCategoryDraft(draft); err != nil {
		return err
	}

	updated, err := ctx.Client.UpdateCategory(cmd.Context(), id, draft)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	cli.PrintSuccess("Updated category %q (id %d)", updated.Name, updated.ID)
	return nil
}

func runCategoriesDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid category id: %s", args[0])
	}

	ctx := newContext()
	if err := ctx.Store.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}

	name := ctx.Store.CategoryName(id)
	if name == "" {
		return fmt.Errorf("category %d not found", id)
	}

	force, _ := cmd.Flags().GetBool("force")
	if !force {
		confirmed, err := cli.Confirm(fmt.Sprintf("Delete category %q? Templates keep their contents but lose this label.", name), false)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
	}

	if err := ctx.Client.DeleteCategory(cmd.Context(), id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	cli.PrintSuccess("Deleted category %q", name)
	return nil
}
