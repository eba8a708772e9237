package tui

import (
	"fmt"
	"strings"

	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/submit"
)

func (m *ComposerModel) View() string {
	if m.picker.active {
		return m.picker.view(m.width - 4)
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("Compose Email"))
	b.WriteString("\n\n")

	b.WriteString(m.renderField(focusSubject, "Subject"))
	b.WriteString(m.subject.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderField(focusContent, "Content"))
	b.WriteString(m.content.View())
	b.WriteString("\n\n")

	b.WriteString(m.renderOptions())
	b.WriteString("\n")

	switch m.machine.State() {
	case submit.Loading:
		b.WriteString("\n")
		b.WriteString(m.spin.View())
		b.WriteString(NormalStyle.Render(" Processing..."))
		b.WriteString("\n")
	case submit.Error:
		b.WriteString("\n")
		b.WriteString(ErrorBannerStyle.Render(m.machine.ErrorMessage()))
		b.WriteString(HelpStyle.Render("  esc to dismiss"))
		b.WriteString("\n")
	case submit.Success:
		b.WriteString("\n")
		b.WriteString(m.result.View())
		b.WriteString("\n")
	}

	if m.validationErr != "" {
		b.WriteString("\n")
		b.WriteString(ErrorBannerStyle.Render(m.validationErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m *ComposerModel) renderField(f composerFocus, label string) string {
	style := LabelStyle
	if m.focus == f {
		style = TitleStyle
	}
	return style.Render(label) + "\n"
}

func (m *ComposerModel) renderOptions() string {
	d := m.drafts.Draft()
	parts := []string{
		m.renderOption(focusTone, "Tone", string(d.Tone)),
		m.renderOption(focusLength, "Length", string(d.Length)),
		m.renderOption(focusLanguage, "Language", string(d.Language)),
	}
	return strings.Join(parts, "   ")
}

func (m *ComposerModel) renderOption(f composerFocus, label, value string) string {
	rendered := fmt.Sprintf("%s: ", label)
	if m.focus == f {
		return TitleStyle.Render(rendered) + SelectedStyle.Render("‹ "+value+" ›")
	}
	return LabelStyle.Render(rendered) + NormalStyle.Render(value)
}

func (m *ComposerModel) renderResult(result *models.ProcessingResult) string {
	width := m.result.Width
	var b strings.Builder

	b.WriteString(SuccessStyle.Render("Improved Email"))
	b.WriteString("\n\n")
	b.WriteString(wrapText(result.ImprovedContent, width))
	b.WriteString("\n")

	if len(result.Suggestions) > 0 {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("Suggestions"))
		b.WriteString("\n")
		for _, s := range result.Suggestions {
			b.WriteString(wrapText("  • "+s, width))
			b.WriteString("\n")
		}
	}

	if len(result.Corrections) > 0 {
		b.WriteString("\n")
		b.WriteString(HeaderStyle.Render("Corrections"))
		b.WriteString("\n")
		for _, c := range result.Corrections {
			b.WriteString(wrapText("  • "+c, width))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m *ComposerModel) renderHelp() string {
	loading := m.machine.State() == submit.Loading
	submitHint := "ctrl+s submit"
	if loading {
		submitHint = "submitting..."
	}
	return HelpStyle.Render(fmt.Sprintf(
		"tab focus • %s • ctrl+t templates • ctrl+e manage • ctrl+n clear • ctrl+y copy result • ctrl+c quit",
		submitHint,
	))
}
