package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string   // Dialog title (optional)
	Message     string   // Main confirmation message
	Warning     string   // Optional warning text (shown in orange)
	Details     []string // Optional detail lines
	Destructive bool     // If true, Yes is rendered in red
	Width       int      // Dialog width
}

// ConfirmationModel is the synchronous acknowledgment gate shown before
// destructive actions. Nothing is sent to the server until the user
// answers yes.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Hide deactivates the confirmation
func (m *ConfirmationModel) Hide() {
	m.active = false
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
		return nil

	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
		return nil
	}

	return nil
}

// View renders the confirmation dialog
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorActive))

	warningStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning))

	width := m.config.Width
	if width == 0 {
		width = 60
	}
	contentWidth := width - 4

	center := lipgloss.NewStyle().
		Width(contentWidth).
		Align(lipgloss.Center)

	var b strings.Builder

	if m.config.Title != "" {
		b.WriteString(center.Render(TitleStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}

	if m.config.Message != "" {
		b.WriteString(center.Render(m.config.Message))
		b.WriteString("\n")
	}

	if m.config.Warning != "" {
		b.WriteString("\n")
		b.WriteString(center.Render(warningStyle.Render(m.config.Warning)))
		b.WriteString("\n")
	}

	for _, detail := range m.config.Details {
		b.WriteString(DimStyle.Render("  • " + detail))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center.Render(m.formatOptions()))

	return borderStyle.Width(width).Render(b.String())
}

func (m *ConfirmationModel) formatOptions() string {
	yesColor := ColorSuccess
	if m.config.Destructive {
		yesColor = ColorDanger
	}

	yes := lipgloss.NewStyle().
		Foreground(lipgloss.Color(yesColor)).
		Bold(true).
		Render("y")
	no := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorNormal)).
		Render("n")

	return fmt.Sprintf("[%s]es  [%s]o", yes, no)
}
