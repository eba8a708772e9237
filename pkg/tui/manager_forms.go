package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// templateForm is the transient dialog state for creating or editing
// one template. An editID of zero means create.
type templateForm struct {
	editID int
	focus  int

	name    textinput.Model
	subject textinput.Model
	content textarea.Model
	tags    textinput.Model

	categories    []models.Category // picker values; index 0 is None
	categoryIndex int
	isPublic      bool

	validationErr string
}

const (
	tplFieldName = iota
	tplFieldSubject
	tplFieldContent
	tplFieldTags
	tplFieldCategory
	tplFieldVisibility
	tplFieldCount
)

func newTemplateForm(categories []models.Category) *templateForm {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100

	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Template content..."
	content.ShowLineNumbers = false
	content.SetHeight(5)

	tags := textinput.New()
	tags.Placeholder = "Tags (comma-separated)"

	f := &templateForm{
		name:       name,
		subject:    subject,
		content:    content,
		tags:       tags,
		categories: categories,
	}
	f.applyFocus()
	return f
}

// seedForCreate resets all fields to empty.
func (f *templateForm) seedForCreate() {
	f.editID = 0
	f.name.SetValue("")
	f.subject.SetValue("")
	f.content.SetValue("")
	f.tags.SetValue("")
	f.categoryIndex = 0
	f.isPublic = false
	f.focus = tplFieldName
	f.validationErr = ""
	f.applyFocus()
}

// seedForEdit copies the selected template into the form.
func (f *templateForm) seedForEdit(t models.Template) {
	f.editID = t.ID
	f.name.SetValue(t.Name)
	f.subject.SetValue(t.Subject)
	f.content.SetValue(t.Content)
	f.tags.SetValue(t.Tags)
	f.categoryIndex = 0
	for i, c := range f.categories {
		if c.ID == t.CategoryID {
			f.categoryIndex = i + 1
			break
		}
	}
	f.isPublic = t.IsPublic
	f.focus = tplFieldName
	f.validationErr = ""
	f.applyFocus()
}

// isEdit reports whether submission routes to update rather than
// create.
func (f *templateForm) isEdit() bool {
	return f.editID != 0
}

// draft collects the form fields for the store call.
func (f *templateForm) draft() models.TemplateDraft {
	categoryID := 0
	if f.categoryIndex > 0 && f.categoryIndex <= len(f.categories) {
		categoryID = f.categories[f.categoryIndex-1].ID
	}
	return models.TemplateDraft{
		Name:       strings.TrimSpace(f.name.Value()),
		Subject:    strings.TrimSpace(f.subject.Value()),
		Content:    f.content.Value(),
		CategoryID: categoryID,
		Tags:       f.tags.Value(),
		IsPublic:   f.isPublic,
	}
}

// validate checks required fields, recording the first problem for the
// dialog banner.
func (f *templateForm) validate() bool {
	d := f.draft()
	switch {
	case d.Name == "":
		f.validationErr = "Name is required"
	case d.Subject == "":
		f.validationErr = "Subject is required"
	case strings.TrimSpace(d.Content) == "":
		f.validationErr = "Content is required"
	default:
		f.validationErr = ""
		return true
	}
	return false
}

func (f *templateForm) cycleFocus(delta int) {
	f.focus = (f.focus + delta + tplFieldCount) % tplFieldCount
	f.applyFocus()
}

func (f *templateForm) applyFocus() {
	f.name.Blur()
	f.subject.Blur()
	f.content.Blur()
	f.tags.Blur()
	switch f.focus {
	case tplFieldName:
		f.name.Focus()
	case tplFieldSubject:
		f.subject.Focus()
	case tplFieldContent:
		f.content.Focus()
	case tplFieldTags:
		f.tags.Focus()
	}
}

// cycleCategory steps through None plus the known categories.
func (f *templateForm) cycleCategory(delta int) {
	count := len(f.categories) + 1
	f.categoryIndex = (f.categoryIndex + delta + count) % count
}

func (f *templateForm) categoryLabel() string {
	if f.categoryIndex == 0 {
		return "None"
	}
	return f.categories[f.categoryIndex-1].Name
}

// update routes input to the focused text widget.
func (f *templateForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case tplFieldName:
		f.name, cmd = f.name.Update(msg)
	case tplFieldSubject:
		f.subject, cmd = f.subject.Update(msg)
	case tplFieldContent:
		f.content, cmd = f.content.Update(msg)
	case tplFieldTags:
		f.tags, cmd = f.tags.Update(msg)
	}
	return cmd
}

// categoryForm is the transient dialog state for one category.
type categoryForm struct {
	editID int
	focus  int

	name        textinput.Model
	description textinput.Model

	validationErr string
}

const (
	catFieldName = iota
	catFieldDescription
	catFieldCount
)

func newCategoryForm() *categoryForm {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 100

	description := textinput.New()
	description.Placeholder = "Description (optional)"

	f := &categoryForm{name: name, description: description}
	f.applyFocus()
	return f
}

func (f *categoryForm) seedForCreate() {
	f.editID = 0
	f.name.SetValue("")
	f.description.SetValue("")
	f.focus = catFieldName
	f.validationErr = ""
	f.applyFocus()
}

func (f *categoryForm) seedForEdit(c models.Category) {
	f.editID = c.ID
	f.name.SetValue(c.Name)
	f.description.SetValue(c.Description)
	f.focus = catFieldName
	f.validationErr = ""
	f.applyFocus()
}

func (f *categoryForm) isEdit() bool {
	return f.editID != 0
}

func (f *categoryForm) draft() models.CategoryDraft {
	return models.CategoryDraft{
		Name:        strings.TrimSpace(f.name.Value()),
		Description: strings.TrimSpace(f.description.Value()),
	}
}

func (f *categoryForm) validate() bool {
	if f.draft().Name == "" {
		f.validationErr = "Name is required"
		return false
	}
	f.validationErr = ""
	return true
}

func (f *categoryForm) cycleFocus(delta int) {
	f.focus = (f.focus + delta + catFieldCount) % catFieldCount
	f.applyFocus()
}

func (f *categoryForm) applyFocus() {
	f.name.Blur()
	f.description.Blur()
	switch f.focus {
	case catFieldName:
		f.name.Focus()
	case catFieldDescription:
		f.description.Focus()
	}
}

func (f *categoryForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case catFieldName:
		f.name, cmd = f.name.Update(msg)
	case catFieldDescription:
		f.description, cmd = f.description.Update(msg)
	}
	return cmd
}
