package tui

import (
	"strings"

	"github.com/maildraft/maildraft-cli/pkg/models"
)

// categoryResolver maps a category id to a display name.
type categoryResolver interface {
	CategoryName(id int) string
}

// templatePicker is the overlay for seeding the draft from a template.
// Row zero is the explicit "None" selection, which clears subject and
// content.
type templatePicker struct {
	active   bool
	cursor   int
	items    []models.Template
	resolver categoryResolver
}

func newTemplatePicker() *templatePicker {
	return &templatePicker{}
}

func (p *templatePicker) open(items []models.Template, resolver categoryResolver) {
	p.active = true
	p.cursor = 0
	p.setItems(items, resolver)
}

func (p *templatePicker) close() {
	p.active = false
}

func (p *templatePicker) setItems(items []models.Template, resolver categoryResolver) {
	p.items = items
	p.resolver = resolver
	if p.cursor > len(items) {
		p.cursor = len(items)
	}
}

func (p *templatePicker) moveCursor(delta int) {
	p.cursor += delta
	if p.cursor < 0 {
		p.cursor = 0
	}
	// items plus the None row
	if p.cursor > len(p.items) {
		p.cursor = len(p.items)
	}
}

// selected returns the template under the cursor, or nil for the None
// row.
func (p *templatePicker) selected() *models.Template {
	if p.cursor == 0 {
		return nil
	}
	t := p.items[p.cursor-1]
	return &t
}

func (p *templatePicker) view(width int) string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Select Template"))
	b.WriteString("\n\n")

	rows := make([]string, 0, len(p.items)+1)
	rows = append(rows, "(None)")
	for _, t := range p.items {
		label := t.Name
		if category := p.categoryName(t.CategoryID); category != "" {
			label += "  " + DimStyle.Render("["+category+"]")
		}
		if tags := models.ParseTags(t.Tags); len(tags) > 0 {
			label += "  " + TagStyle.Render(strings.Join(tags, " "))
		}
		rows = append(rows, label)
	}

	for i, row := range rows {
		prefix := "  "
		if i == p.cursor {
			prefix = "> "
			row = SelectedStyle.Render(row)
		} else {
			row = NormalStyle.Render(row)
		}
		b.WriteString(prefix + row + "\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓ select • enter apply • esc cancel"))

	return ActiveBorderStyle.Width(width).Render(b.String())
}

func (p *templatePicker) categoryName(id int) string {
	if p.resolver == nil {
		return ""
	}
	return p.resolver.CategoryName(id)
}
