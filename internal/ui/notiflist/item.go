package notiflist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/theme"
)

// Item wraps a model.Notification so it can be used in a bubbles/list.
type Item struct {
	Notification model.Notification
}

// FilterValue returns the string used for fuzzy filtering.
func (i Item) FilterValue() string { return i.Notification.Title }

// Title returns the notification title for the list.
func (i Item) Title() string { return i.Notification.Title }

// Description returns the notification body.
func (i Item) Description() string { return i.Notification.Description }

var (
	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedItemStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Bold(true).
				Foreground(theme.ColorBlue).
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(theme.ColorBlue)

	descStyle = lipgloss.NewStyle().
			Foreground(theme.ColorGray)
)

// ItemDelegate implements list.ItemDelegate for notifications.
type ItemDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 2 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 1 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a notification as a title line and a description line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(Item)
	if !ok {
		return
	}
	n := it.Notification
	now := time.Now
	if d.now != nil {
		now = d.now
	}

	icon := theme.CategoryStyle(n.Type).Render(theme.CategoryIcon(n.Type))
	pri := theme.PriorityStyle(n.Priority).Render(string(n.Priority))
	age := descStyle.Render(relativeTime(now(), n.Time()))

	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	line := fmt.Sprintf("%s %s  %s  %s", icon, title, pri, age)

	desc := n.Description
	if n.Airdrop != nil {
		desc = fmt.Sprintf("%s  [%s · %s · ends %s]", desc, n.Airdrop.Status, n.Airdrop.Amount, n.Airdrop.EndDate)
	}
	desc = descStyle.Render("  " + desc)

	content := line + "\n" + desc
	if index == m.Index() {
		content = selectedItemStyle.Render(content)
	} else {
		content = itemStyle.Render(content)
	}

	fmt.Fprint(w, content)
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(now, t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 02, 2006")
	}
}
