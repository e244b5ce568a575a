package login

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/theme"
)

// SubmittedMsg carries the credentials entered in the login form.
type SubmittedMsg struct {
	Identity string
	Secret   string
}

// CancelMsg is sent when the user aborts the login form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	identity string
	secret   string
}

// Model is the login form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	failed bool
	width  int
	height int
}

// New creates a login form.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start clears the fields and builds a fresh form. failed shows a hint
// that the previous attempt was rejected.
func (m *Model) Start(failed bool) tea.Cmd {
	m.fb.identity = ""
	m.fb.secret = ""
	m.failed = failed
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("admin").
				Value(&m.fb.identity),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.secret),
		),
	).WithWidth(m.formWidth()).WithShowHelp(true)
	return m.form.Init()
}

// Update handles messages for the login form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		identity, secret := m.fb.identity, m.fb.secret
		return m, func() tea.Msg { return SubmittedMsg{Identity: identity, Secret: secret} }
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the login form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Sign in to Web3 Notification Hub")
	if m.failed {
		content += "\n" + theme.ErrorStyle.Render("Enter both a username and a password.")
	}
	content += "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	if m.form != nil {
		m.form = m.form.WithWidth(m.formWidth())
	}
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 30), 60)
}
