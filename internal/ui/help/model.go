package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/theme"
)

// Model is the help overlay: key bindings for the current role plus a
// legend of category icons.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	admin  bool
	width  int
	height int
}

// New creates a new help view model.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	h.ShowAll = true
	return Model{
		keys:   k,
		help:   h,
		width:  width,
		height: height,
	}
}

// SetAdmin shows or hides admin-only bindings.
func (m *Model) SetAdmin(admin bool) {
	m.admin = admin
}

// Update handles messages for the help view.
func (m Model) Update(tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// ShortHelp implements help.KeyMap.
func (m Model) ShortHelp() []key.Binding {
	return m.keys.ShortHelp()
}

// FullHelp implements help.KeyMap, dropping the dashboard binding for
// non-admin sessions.
func (m Model) FullHelp() [][]key.Binding {
	groups := m.keys.FullHelp()
	if m.admin {
		return groups
	}
	out := make([][]key.Binding, 0, len(groups))
	for _, g := range groups {
		kept := make([]key.Binding, 0, len(g))
		for _, b := range g {
			if b.Help().Key == m.keys.Dashboard.Help().Key {
				continue
			}
			kept = append(kept, b)
		}
		out = append(out, kept)
	}
	return out
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Keyboard Shortcuts"),
		m.help.View(m),
		"",
		titleStyle.Render("Categories"),
		legend(),
	)

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

func legend() string {
	parts := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		parts = append(parts, theme.CategoryStyle(c).Render(theme.CategoryIcon(c)+" "+string(c)))
	}
	return strings.Join(parts, "   ")
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
