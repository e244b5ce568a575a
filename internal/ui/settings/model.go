package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/theme"
)

// ToggleThemeMsg asks the parent to flip the theme.
type ToggleThemeMsg struct{}

// ToggleCategoryMsg asks the parent to flip one category toggle.
type ToggleCategoryMsg struct {
	Category model.Category
}

// LogoutMsg asks the parent to end the session.
type LogoutMsg struct{}

type row struct {
	label    string
	category model.Category
	theme    bool
	logout   bool
}

var rows = []row{
	{label: "Dark theme", theme: true},
	{label: "Governance proposals", category: model.CategoryGovernance},
	{label: "Security alerts", category: model.CategorySecurity},
	{label: "Airdrops", category: model.CategoryAirdrop},
	{label: "Protocol upgrades", category: model.CategoryUpgrade},
	{label: "Log out", logout: true},
}

// Model is the settings view: a cursor over the preference toggles.
type Model struct {
	keys   *keys.KeyMap
	prefs  model.Preferences
	cursor int
	width  int
	height int
}

// New creates the settings view.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{
		keys:   k,
		prefs:  model.DefaultPreferences(),
		width:  width,
		height: height,
	}
}

// SetPreferences updates the displayed toggle states.
func (m *Model) SetPreferences(p model.Preferences) {
	m.prefs = p
}

// Update handles messages for the settings view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(rows)
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(rows)) % len(rows)
	case key.Matches(keyMsg, m.keys.Select), keyMsg.String() == " ":
		r := rows[m.cursor]
		switch {
		case r.theme:
			return m, func() tea.Msg { return ToggleThemeMsg{} }
		case r.logout:
			return m, func() tea.Msg { return LogoutMsg{} }
		default:
			c := r.category
			return m, func() tea.Msg { return ToggleCategoryMsg{Category: c} }
		}
	}
	return m, nil
}

// View renders the settings list.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Settings"))
	b.WriteString("\n")

	for i, r := range rows {
		cursor := "  "
		if i == m.cursor {
			cursor = lipgloss.NewStyle().Foreground(theme.ColorBlue).Render("> ")
		}

		var line string
		switch {
		case r.theme:
			line = fmt.Sprintf("%s %s", checkbox(m.prefs.Theme == model.ThemeDark), r.label)
		case r.logout:
			line = theme.ErrorStyle.Render(r.label)
		default:
			label := theme.CategoryStyle(r.category).Render(theme.CategoryIcon(r.category)) + " " + r.label
			line = fmt.Sprintf("%s %s", checkbox(m.prefs.Enabled(r.category)), label)
		}
		if r.logout {
			b.WriteString("\n")
		}
		b.WriteString(cursor + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render("Disabled categories are still stored but raise no alert."))

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(b.String())
}

func checkbox(on bool) string {
	if on {
		return theme.SuccessStyle.Render("[x]")
	}
	return lipgloss.NewStyle().Foreground(theme.ColorGray).Render("[ ]")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
