package notiflist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/theme"
)

// SelectedMsg is sent when the user opens a notification's details.
type SelectedMsg struct {
	Notification model.Notification
}

// DeleteRequestedMsg is sent when the user deletes a notification.
type DeleteRequestedMsg struct {
	ID string
}

// OpenRequestedMsg is sent when the user opens a notification's link.
type OpenRequestedMsg struct {
	URL string
}

// Model is the notification list view.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	title  string
	label  string
	empty  string
	width  int
	height int
}

// New creates an empty notification list with the given title.
func New(title string, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetStatusBarItemName("notification", "notifications")
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		title:  title,
		label:  "All",
		empty:  "No notifications yet.\nNew ones arrive every few minutes.",
		width:  width,
		height: height,
	}
}

// SetNotifications replaces the displayed notifications. label names the
// active filter.
func (m *Model) SetNotifications(ns []model.Notification, label string) tea.Cmd {
	items := make([]list.Item, len(ns))
	for i, n := range ns {
		items[i] = Item{Notification: n}
	}
	m.label = label
	m.list.Title = m.title
	if label != "" && label != "All" {
		m.list.Title += " · " + label
	}
	return m.list.SetItems(items)
}

// Selected returns the highlighted notification.
func (m Model) Selected() (model.Notification, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.Notification{}, false
	}
	return it.Notification, true
}

// Len returns the number of displayed notifications.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Select):
			n, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return SelectedMsg{Notification: n} }

		case key.Matches(msg, m.keys.Delete):
			n, ok := m.Selected()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg { return DeleteRequestedMsg{ID: n.ID} }

		case key.Matches(msg, m.keys.OpenAction):
			n, ok := m.Selected()
			if !ok || n.ActionURL == "" {
				return m, nil
			}
			return m, func() tea.Msg { return OpenRequestedMsg{URL: n.ActionURL} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the list, or guidance text when it is empty.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.label != "" && m.label != "All" {
		return style.Render("No " + m.label + " notifications.\nPress 0 to show all.")
	}
	return style.Render(m.empty)
}

// SetEmptyText sets the text shown when the list is empty and unfiltered.
func (m *Model) SetEmptyText(s string) {
	m.empty = s
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
