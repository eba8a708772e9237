package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

func (m *ManagerModel) View() string {
	if m.confirm.Active() {
		return m.confirm.View()
	}

	switch m.dialog {
	case dialogTemplate:
		return m.templateDialogView()
	case dialogCategory:
		return m.categoryDialogView()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Email Templates"))
	b.WriteString("\n\n")

	left := m.templatesPaneView()
	right := m.categoriesPaneView()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))

	if m.busy() {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(NormalStyle.Render(" Saving..."))
	}

	if m.errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(ErrorBannerStyle.Render(m.errorMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("tab pane • ↑/↓ select • n new • e edit • d delete • r refresh • esc compose"))

	return b.String()
}

func (m *ManagerModel) paneWidth() int {
	w := (m.width - 6) / 2
	if w < 30 {
		w = 30
	}
	return w
}

func (m *ManagerModel) templatesPaneView() string {
	width := m.paneWidth()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("TEMPLATES"))
	b.WriteString("\n")

	templates := m.store.Templates()
	if len(templates) == 0 {
		b.WriteString(DimStyle.Render("No templates yet. Press n to create one."))
		b.WriteString("\n")
	}

	for i, t := range templates {
		line := t.Name
		if category := m.store.CategoryName(t.CategoryID); category != "" {
			line += "  " + DimStyle.Render("["+category+"]")
		}
		if t.IsPublic {
			line += "  " + DimStyle.Render("(public)")
		}
		b.WriteString(m.renderRow(line, i == m.tplCursor && m.pane == templatesPane))

		if i == m.tplCursor && m.pane == templatesPane {
			b.WriteString(DimStyle.Render("    " + t.Subject))
			b.WriteString("\n")
			if tags := models.ParseTags(t.Tags); len(tags) > 0 {
				b.WriteString("    " + TagStyle.Render(strings.Join(tags, " ")))
				b.WriteString("\n")
			}
		}
	}

	style := InactiveBorderStyle
	if m.pane == templatesPane {
		style = ActiveBorderStyle
	}
	return style.Width(width).Render(b.String())
}

func (m *ManagerModel) categoriesPaneView() string {
	width := m.paneWidth()

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("CATEGORIES"))
	b.WriteString("\n")

	categories := m.store.Categories()
	if len(categories) == 0 {
		b.WriteString(DimStyle.Render("No categories yet."))
		b.WriteString("\n")
	}

	for i, c := range categories {
		line := c.Name
		if c.Description != "" {
			line += "  " + DimStyle.Render(c.Description)
		}
		b.WriteString(m.renderRow(line, i == m.catCursor && m.pane == categoriesPane))
	}

	style := InactiveBorderStyle
	if m.pane == categoriesPane {
		style = ActiveBorderStyle
	}
	return style.Width(width).Render(b.String())
}

func (m *ManagerModel) renderRow(line string, selected bool) string {
	if selected {
		return "> " + SelectedStyle.Render(line) + "\n"
	}
	return "  " + NormalStyle.Render(line) + "\n"
}

func (m *ManagerModel) templateDialogView() string {
	f := m.tplForm

	title := "Add New Template"
	if f.isEdit() {
		title = "Edit Template"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Name", f.focus == tplFieldName))
	b.WriteString(f.name.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Subject", f.focus == tplFieldSubject))
	b.WriteString(f.subject.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Content", f.focus == tplFieldContent))
	b.WriteString(f.content.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Tags", f.focus == tplFieldTags))
	b.WriteString(f.tags.View())
	b.WriteString("\n\n")

	b.WriteString(m.selectorLine("Category", f.categoryLabel(), f.focus == tplFieldCategory))
	b.WriteString("\n")

	visibility := "Private"
	if f.isPublic {
		visibility = "Public"
	}
	b.WriteString(m.selectorLine("Visibility", visibility, f.focus == tplFieldVisibility))
	b.WriteString("\n")

	if f.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(ErrorBannerStyle.Render(f.validationErr))
		b.WriteString("\n")
	}

	if m.busy() {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(NormalStyle.Render(" Saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab field • ctrl+s save • esc cancel"))

	return ActiveBorderStyle.Width(m.dialogWidth()).Render(b.String())
}

func (m *ManagerModel) categoryDialogView() string {
	f := m.catForm

	title := "Add New Category"
	if f.isEdit() {
		title = "Edit Category"
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Name", f.focus == catFieldName))
	b.WriteString(f.name.View())
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Description", f.focus == catFieldDescription))
	b.WriteString(f.description.View())
	b.WriteString("\n")

	if f.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(ErrorBannerStyle.Render(f.validationErr))
		b.WriteString("\n")
	}

	if m.busy() {
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(NormalStyle.Render(" Saving..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("tab field • ctrl+s save • esc cancel"))

	return ActiveBorderStyle.Width(m.dialogWidth()).Render(b.String())
}

func (m *ManagerModel) dialogWidth() int {
	w := m.width - 8
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m *ManagerModel) fieldLabel(label string, focused bool) string {
	style := LabelStyle
	if focused {
		style = TitleStyle
	}
	return style.Render(label) + "\n"
}

func (m *ManagerModel) selectorLine(label, value string, focused bool) string {
	if focused {
		return TitleStyle.Render(fmt.Sprintf("%s: ", label)) + SelectedStyle.Render("‹ "+value+" ›")
	}
	return LabelStyle.Render(fmt.Sprintf("%s: ", label)) + NormalStyle.Render(value)
}
