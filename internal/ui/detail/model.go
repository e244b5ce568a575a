package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// OpenMsg asks the parent to open the notification's action URL.
type OpenMsg struct {
	URL string
}

// DeleteMsg asks the parent to delete the displayed notification.
type DeleteMsg struct {
	ID string
}

// Model is the notification detail view.
type Model struct {
	notification *model.Notification
	viewport     viewport.Model
	keys         *keys.KeyMap
	width        int
	height       int
}

// New creates a new detail view model.
func New(keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && m.notification != nil {
		n := *m.notification
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return BackMsg{} }

		case key.Matches(msg, m.keys.OpenAction), key.Matches(msg, m.keys.Select):
			if n.ActionURL != "" {
				return m, func() tea.Msg { return OpenMsg{URL: n.ActionURL} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			return m, func() tea.Msg { return DeleteMsg{ID: n.ID} }
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.notification == nil {
		return lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No notification selected")
	}
	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.notification == nil {
		return ""
	}
	n := m.notification

	var sections []string

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(theme.CategoryIcon(n.Type)+" "+n.Title))

	typeBadge := theme.CategoryStyle(n.Type).Render(strings.ToUpper(string(n.Type)))
	priBadge := theme.PriorityStyle(n.Priority).Render(string(n.Priority))
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, typeBadge, "  ", priBadge))
	sections = append(sections, "")

	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	row := func(label, value string) string {
		return fmt.Sprintf("%-10s %s", metaStyle.Render(label), valStyle.Render(value))
	}

	sections = append(sections, row("Received:", n.Time().Format("2006-01-02 15:04")))
	if n.ActionURL != "" {
		sections = append(sections, row("Link:", n.ActionURL))
	}
	if n.Airdrop != nil {
		sections = append(sections,
			row("Status:", theme.AirdropStatusStyle(n.Airdrop.Status).Render(string(n.Airdrop.Status))),
			row("Amount:", n.Airdrop.Amount),
			row("Ends:", n.Airdrop.EndDate),
		)
	}

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-4, 80), 0)))
	sections = append(sections, "", separator, "")

	body := n.Description
	if body == "" {
		body = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, body)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetNotification updates the notification being displayed.
func (m *Model) SetNotification(n model.Notification) {
	m.notification = &n
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Clear removes the displayed notification.
func (m *Model) Clear() {
	m.notification = nil
	m.viewport.SetContent("")
}

// Current returns the displayed notification id, or "".
func (m Model) Current() string {
	if m.notification == nil {
		return ""
	}
	return m.notification.ID
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.notification != nil {
		m.viewport.SetContent(m.renderContent())
	}
}
