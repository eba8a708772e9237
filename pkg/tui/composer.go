package tui

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog"

	"github.com/maildraft/maildraft-cli/pkg/api"
	"github.com/maildraft/maildraft-cli/pkg/draft"
	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/store"
	"github.com/maildraft/maildraft-cli/pkg/submit"
)

type composerFocus int

const (
	focusSubject composerFocus = iota
	focusContent
	focusTone
	focusLength
	focusLanguage
)

const composerFocusCount = 5

// improveResultMsg carries the terminal outcome of one submission.
type improveResultMsg struct {
	result *models.ProcessingResult
	err    error
}

// templatesLoadedMsg reports a finished store refresh.
type templatesLoadedMsg struct {
	err error
}

// ComposerModel is the email form: the draft, its one in-flight
// submission, and the result panel.
type ComposerModel struct {
	width  int
	height int

	log       zerolog.Logger
	client    *api.Client
	templates *store.Store
	drafts    *draft.Controller
	machine   *submit.Machine

	focus   composerFocus
	subject textinput.Model
	content textarea.Model
	spin    spinner.Model
	result  viewport.Model

	picker        *templatePicker
	validationErr string
}

// NewComposerModel builds the composer with an empty draft.
func NewComposerModel(settings *models.Settings, client *api.Client, templates *store.Store, log zerolog.Logger) *ComposerModel {
	subject := textinput.New()
	subject.Placeholder = "Subject"
	subject.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "Enter your email content here..."
	content.ShowLineNumbers = false

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	m := &ComposerModel{
		log:       log,
		client:    client,
		templates: templates,
		drafts:    draft.NewController(settings.UI),
		machine:   submit.NewMachine(),
		subject:   subject,
		content:   content,
		spin:      s,
		result:    viewport.New(0, 0),
		picker:    newTemplatePicker(),
		focus:     focusContent,
	}
	m.applyFocus()
	return m
}

func (m *ComposerModel) Init() tea.Cmd {
	return textarea.Blink
}

// SetSize adjusts the layout to the terminal dimensions.
func (m *ComposerModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	formWidth := width - 4
	if formWidth < 20 {
		formWidth = 20
	}
	m.subject.Width = formWidth
	m.content.SetWidth(formWidth)

	contentHeight := height / 3
	if contentHeight < 4 {
		contentHeight = 4
	}
	m.content.SetHeight(contentHeight)

	m.result.Width = formWidth
	resultHeight := height - contentHeight - 12
	if resultHeight < 4 {
		resultHeight = 4
	}
	m.result.Height = resultHeight
}

// submitCmd issues the improvement request. No cancellation: the
// request runs to completion or to the transport timeout.
func (m *ComposerModel) submitCmd(d models.Draft) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		result, err := client.Improve(context.Background(), d)
		return improveResultMsg{result: result, err: err}
	}
}

// refreshTemplatesCmd refetches the template snapshot for the picker.
func (m *ComposerModel) refreshTemplatesCmd() tea.Cmd {
	templates := m.templates
	return func() tea.Msg {
		return templatesLoadedMsg{err: templates.Refresh(context.Background())}
	}
}

func (m *ComposerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case improveResultMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("submission failed")
			m.machine.Fail(api.ErrorMessage(msg.err))
			return m, nil
		}
		// The draft is retained so the user can iterate on it.
		m.machine.Resolve(msg.result)
		m.result.SetContent(m.renderResult(msg.result))
		m.result.GotoTop()
		return m, nil

	case templatesLoadedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("template refresh failed, picker shows last snapshot")
		}
		if m.picker.active {
			m.picker.setItems(m.templates.Templates(), m.templates)
		}
		return m, nil

	case spinner.TickMsg:
		if m.machine.State() == submit.Loading {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.updateWidgets(msg)
}

func (m *ComposerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.picker.active {
		return m.handlePickerKey(msg)
	}

	switch msg.String() {
	case "ctrl+s":
		return m, m.startSubmission()

	case "ctrl+t":
		m.picker.open(m.templates.Templates(), m.templates)
		return m, m.refreshTemplatesCmd()

	case "ctrl+e":
		return m, switchTo(managerView)

	case "ctrl+n":
		m.drafts.Reset()
		m.subject.SetValue("")
		m.content.SetValue("")
		m.validationErr = ""
		return m, func() tea.Msg { return StatusMsg("Draft cleared") }

	case "ctrl+y":
		if m.machine.State() == submit.Success {
			if err := clipboard.WriteAll(m.machine.Result().ImprovedContent); err != nil {
				m.log.Warn().Err(err).Msg("clipboard write failed")
				return m, func() tea.Msg { return StatusMsg("Could not copy to clipboard") }
			}
			return m, func() tea.Msg { return StatusMsg("Improved email copied to clipboard") }
		}
		return m, nil

	case "esc":
		m.machine.Acknowledge()
		m.validationErr = ""
		return m, nil

	case "tab":
		m.focus = (m.focus + 1) % composerFocusCount
		m.applyFocus()
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + composerFocusCount - 1) % composerFocusCount
		m.applyFocus()
		return m, nil
	}

	// Left/right cycle the option under focus.
	if m.focus == focusTone || m.focus == focusLength || m.focus == focusLanguage {
		switch msg.String() {
		case "left", "h":
			m.cycleOption(-1)
			return m, nil
		case "right", "l", "enter", " ":
			m.cycleOption(1)
			return m, nil
		}
	}

	return m, m.updateWidgets(msg)
}

// startSubmission runs the Loading guard and validation before any
// network traffic. A second ctrl+s while loading is a no-op with a
// status note.
func (m *ComposerModel) startSubmission() tea.Cmd {
	m.syncDraft()

	if err := m.machine.Begin(m.drafts); err != nil {
		if err == submit.ErrAlreadyLoading {
			return func() tea.Msg { return StatusMsg("Still processing previous submission") }
		}
		m.validationErr = err.Error()
		return nil
	}

	m.validationErr = ""
	d := m.drafts.Draft()
	m.log.Info().Str("tone", string(d.Tone)).Str("length", string(d.Length)).Msg("submitting draft")
	return tea.Batch(m.spin.Tick, m.submitCmd(d))
}

// syncDraft copies widget values into the draft controller, the single
// mutation entry point.
func (m *ComposerModel) syncDraft() {
	m.drafts.SetSubject(m.subject.Value())
	m.drafts.SetContent(m.content.Value())
}

func (m *ComposerModel) cycleOption(delta int) {
	d := m.drafts.Draft()
	switch m.focus {
	case focusTone:
		m.drafts.SetTone(cycleValue(models.Tones, d.Tone, delta))
	case focusLength:
		m.drafts.SetLength(cycleValue(models.Lengths, d.Length, delta))
	case focusLanguage:
		m.drafts.SetLanguage(cycleValue(models.Languages, d.Language, delta))
	}
}

// cycleValue steps through the ordered values, wrapping at both ends.
func cycleValue[T comparable](values []T, current T, delta int) T {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(values)) % len(values)
	return values[idx]
}

func (m *ComposerModel) applyFocus() {
	if m.focus == focusSubject {
		m.subject.Focus()
	} else {
		m.subject.Blur()
	}
	if m.focus == focusContent {
		m.content.Focus()
	} else {
		m.content.Blur()
	}
}

func (m *ComposerModel) updateWidgets(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.focus {
	case focusSubject:
		m.subject, cmd = m.subject.Update(msg)
		cmds = append(cmds, cmd)
	case focusContent:
		m.content, cmd = m.content.Update(msg)
		cmds = append(cmds, cmd)
	}

	if m.machine.State() == submit.Success {
		m.result, cmd = m.result.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.syncDraft()
	return tea.Batch(cmds...)
}

func (m *ComposerModel) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.picker.close()
		return m, nil

	case "up", "k":
		m.picker.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.picker.moveCursor(1)
		return m, nil

	case "enter":
		selected := m.picker.selected()
		m.drafts.ApplyTemplate(selected)
		d := m.drafts.Draft()
		m.subject.SetValue(d.Subject)
		m.content.SetValue(d.Content)
		m.picker.close()
		if selected == nil {
			return m, func() tea.Msg { return StatusMsg("Template cleared") }
		}
		return m, func() tea.Msg { return StatusMsg("Applied template: " + selected.Name) }
	}

	return m, nil
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}
