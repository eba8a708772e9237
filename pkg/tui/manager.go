package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/maildraft/maildraft-cli/pkg/models"
	"github.com/maildraft/maildraft-cli/pkg/store"
	"github.com/maildraft/maildraft-cli/pkg/submit"
)

type managerPane int

const (
	templatesPane managerPane = iota
	categoriesPane
)

type managerDialog int

const (
	dialogNone managerDialog = iota
	dialogTemplate
	dialogCategory
)

// refreshDoneMsg reports a finished snapshot refresh in the manager.
type refreshDoneMsg struct {
	err error
}

// mutationDoneMsg reports a finished create/update/delete round trip,
// including the mandatory refetch.
type mutationDoneMsg struct {
	action string
	err    error
}

// ManagerModel mediates between the dialog forms and the template
// store. At most one mutation is in flight; the refreshed snapshot is
// the only thing the lists ever show.
type ManagerModel struct {
	store *store.Store
	log   zerolog.Logger

	width  int
	height int

	pane      managerPane
	tplCursor int
	catCursor int

	dialog   managerDialog
	tplForm  *templateForm
	catForm  *categoryForm
	confirm  *ConfirmationModel
	machine  *submit.Machine
	spin     spinner.Model
	errorMsg string
}

// NewManagerModel creates the manager over a shared store.
func NewManagerModel(templates *store.Store, log zerolog.Logger) *ManagerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	return &ManagerModel{
		store:   templates,
		log:     log,
		confirm: NewConfirmation(),
		machine: submit.NewMachine(),
		spin:    s,
	}
}

func (m *ManagerModel) Init() tea.Cmd {
	return m.refreshCmd()
}

// SetSize adjusts the layout to the terminal dimensions.
func (m *ManagerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ManagerModel) refreshCmd() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		return refreshDoneMsg{err: s.Refresh(context.Background())}
	}
}

// busy reports whether a mutation round trip is outstanding.
func (m *ManagerModel) busy() bool {
	return m.machine.State() == submit.Loading
}

// noValidation satisfies the machine's Validator for store mutations;
// the dialog forms validate before the machine is engaged.
type noValidation struct{}

func (noValidation) Validate() error { return nil }

// beginMutation engages the loading guard shared with the composer's
// state machine shape: one outstanding store write at a time.
func (m *ManagerModel) beginMutation() bool {
	if err := m.machine.Begin(noValidation{}); err != nil {
		return false
	}
	return true
}

func (m *ManagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshDoneMsg:
		if msg.err != nil {
			// Stale-but-available: the lists keep the last snapshot.
			m.log.Warn().Err(msg.err).Msg("collection refresh failed")
			m.errorMsg = "Could not refresh templates, showing last known data"
		}
		m.clampCursors()
		return m, nil

	case mutationDoneMsg:
		return m.finishMutation(msg)

	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.dialog != dialogNone {
		return m, m.updateDialog(msg)
	}
	return m, nil
}

// finishMutation resolves the in-flight store write. On failure the
// dialog stays open so the user can correct and resubmit.
func (m *ManagerModel) finishMutation(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.machine.Fail(msg.err.Error())
		m.log.Warn().Err(msg.err).Str("action", msg.action).Msg("mutation failed")

		var staleErr *store.StaleReadError
		if errors.As(msg.err, &staleErr) {
			// The write landed; only the refetch failed. Close the
			// dialog and flag the stale view.
			m.closeDialog()
			m.errorMsg = "Saved, but the list may be outdated"
			m.machine.Acknowledge()
			return m, nil
		}

		errText := msg.err.Error()
		switch m.dialog {
		case dialogTemplate:
			m.tplForm.validationErr = errText
		case dialogCategory:
			m.catForm.validationErr = errText
		default:
			m.errorMsg = errText
		}
		m.machine.Acknowledge()
		return m, nil
	}

	m.machine.Resolve(nil)
	m.machine.Acknowledge()
	m.closeDialog()
	m.errorMsg = ""
	m.clampCursors()
	return m, func() tea.Msg { return StatusMsg(msg.action) }
}

func (m *ManagerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirm.Active() {
		return m, m.confirm.Update(msg)
	}

	if m.dialog != dialogNone {
		return m.handleDialogKey(msg)
	}

	switch msg.String() {
	case "esc", "q":
		return m, switchTo(composerView)

	case "tab":
		if m.pane == templatesPane {
			m.pane = categoriesPane
		} else {
			m.pane = templatesPane
		}
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "r":
		return m, m.refreshCmd()

	case "n":
		return m, m.openForCreate()

	case "e", "enter":
		return m, m.openForEdit()

	case "d":
		return m, m.requestDelete()
	}

	return m, nil
}

// openForCreate seeds an empty dialog for the active pane.
func (m *ManagerModel) openForCreate() tea.Cmd {
	if m.pane == templatesPane {
		m.tplForm = newTemplateForm(m.store.Categories())
		m.tplForm.seedForCreate()
		m.dialog = dialogTemplate
	} else {
		m.catForm = newCategoryForm()
		m.catForm.seedForCreate()
		m.dialog = dialogCategory
	}
	return nil
}

// openForEdit seeds the dialog from the entity under the cursor.
func (m *ManagerModel) openForEdit() tea.Cmd {
	if m.pane == templatesPane {
		templates := m.store.Templates()
		if m.tplCursor >= len(templates) {
			return nil
		}
		m.tplForm = newTemplateForm(m.store.Categories())
		m.tplForm.seedForEdit(templates[m.tplCursor])
		m.dialog = dialogTemplate
	} else {
		categories := m.store.Categories()
		if m.catCursor >= len(categories) {
			return nil
		}
		m.catForm = newCategoryForm()
		m.catForm.seedForEdit(categories[m.catCursor])
		m.dialog = dialogCategory
	}
	return nil
}

// requestDelete gates deletion behind the confirmation prompt. Nothing
// goes to the server until the user acknowledges.
func (m *ManagerModel) requestDelete() tea.Cmd {
	if m.pane == templatesPane {
		templates := m.store.Templates()
		if m.tplCursor >= len(templates) {
			return nil
		}
		target := templates[m.tplCursor]
		m.confirm.Show(ConfirmationConfig{
			Title:       "Delete Template",
			Message:     fmt.Sprintf("Are you sure you want to delete %q?", target.Name),
			Warning:     "This cannot be undone",
			Destructive: true,
			Width:       50,
		}, func() tea.Cmd {
			return m.deleteTemplateCmd(target.ID)
		}, nil)
	} else {
		categories := m.store.Categories()
		if m.catCursor >= len(categories) {
			return nil
		}
		target := categories[m.catCursor]
		m.confirm.Show(ConfirmationConfig{
			Title:       "Delete Category",
			Message:     fmt.Sprintf("Are you sure you want to delete %q?", target.Name),
			Warning:     "Templates keep their reference to it",
			Destructive: true,
			Width:       50,
		}, func() tea.Cmd {
			return m.deleteCategoryCmd(target.ID)
		}, nil)
	}
	return nil
}

func (m *ManagerModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.busy() {
			m.closeDialog()
		}
		return m, nil

	case "tab", "shift+tab":
		delta := 1
		if msg.String() == "shift+tab" {
			delta = -1
		}
		if m.dialog == dialogTemplate {
			m.tplForm.cycleFocus(delta)
		} else {
			m.catForm.cycleFocus(delta)
		}
		return m, nil

	case "ctrl+s":
		return m, m.submitDialog()
	}

	if m.dialog == dialogTemplate {
		switch m.tplForm.focus {
		case tplFieldCategory:
			switch msg.String() {
			case "left", "h":
				m.tplForm.cycleCategory(-1)
				return m, nil
			case "right", "l", "enter", " ":
				m.tplForm.cycleCategory(1)
				return m, nil
			}
		case tplFieldVisibility:
			switch msg.String() {
			case "left", "right", "h", "l", "enter", " ":
				m.tplForm.isPublic = !m.tplForm.isPublic
				return m, nil
			}
		}
	}

	return m, m.updateDialog(msg)
}

func (m *ManagerModel) updateDialog(msg tea.Msg) tea.Cmd {
	switch m.dialog {
	case dialogTemplate:
		return m.tplForm.update(msg)
	case dialogCategory:
		return m.catForm.update(msg)
	}
	return nil
}

// submitDialog routes to create or update based on the seeded entity.
func (m *ManagerModel) submitDialog() tea.Cmd {
	if m.busy() {
		return nil
	}

	switch m.dialog {
	case dialogTemplate:
		if !m.tplForm.validate() {
			return nil
		}
		if !m.beginMutation() {
			return nil
		}
		d := m.tplForm.draft()
		if m.tplForm.isEdit() {
			return tea.Batch(m.spin.Tick, m.saveTemplateCmd(m.tplForm.editID, d))
		}
		return tea.Batch(m.spin.Tick, m.saveTemplateCmd(0, d))

	case dialogCategory:
		if !m.catForm.validate() {
			return nil
		}
		if !m.beginMutation() {
			return nil
		}
		d := m.catForm.draft()
		if m.catForm.isEdit() {
			return tea.Batch(m.spin.Tick, m.saveCategoryCmd(m.catForm.editID, d))
		}
		return tea.Batch(m.spin.Tick, m.saveCategoryCmd(0, d))
	}

	return nil
}

func (m *ManagerModel) saveTemplateCmd(id int, d models.TemplateDraft) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		var err error
		action := "Template created"
		if id != 0 {
			action = "Template updated"
			err = s.UpdateTemplate(context.Background(), id, d)
		} else {
			err = s.CreateTemplate(context.Background(), d)
		}
		return mutationDoneMsg{action: action, err: err}
	}
}

func (m *ManagerModel) deleteTemplateCmd(id int) tea.Cmd {
	s := m.store
	if !m.beginMutation() {
		return nil
	}
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return mutationDoneMsg{action: "Template deleted", err: s.DeleteTemplate(context.Background(), id)}
	})
}

func (m *ManagerModel) saveCategoryCmd(id int, d models.CategoryDraft) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		var err error
		action := "Category created"
		if id != 0 {
			action = "Category updated"
			err = s.UpdateCategory(context.Background(), id, d)
		} else {
			err = s.CreateCategory(context.Background(), d)
		}
		return mutationDoneMsg{action: action, err: err}
	}
}

func (m *ManagerModel) deleteCategoryCmd(id int) tea.Cmd {
	s := m.store
	if !m.beginMutation() {
		return nil
	}
	return tea.Batch(m.spin.Tick, func() tea.Msg {
		return mutationDoneMsg{action: "Category deleted", err: s.DeleteCategory(context.Background(), id)}
	})
}

func (m *ManagerModel) moveCursor(delta int) {
	if m.pane == templatesPane {
		m.tplCursor += delta
	} else {
		m.catCursor += delta
	}
	m.clampCursors()
}

func (m *ManagerModel) clampCursors() {
	templates := m.store.Templates()
	if m.tplCursor >= len(templates) {
		m.tplCursor = len(templates) - 1
	}
	if m.tplCursor < 0 {
		m.tplCursor = 0
	}

	categories := m.store.Categories()
	if m.catCursor >= len(categories) {
		m.catCursor = len(categories) - 1
	}
	if m.catCursor < 0 {
		m.catCursor = 0
	}
}

func (m *ManagerModel) closeDialog() {
	m.dialog = dialogNone
}
