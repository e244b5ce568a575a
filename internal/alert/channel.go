package alert

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ShownMsg is a tea.Msg carrying an alert for the terminal UI.
type ShownMsg struct {
	Alert Alert
}

// Channel hands alerts to the terminal UI. Alerts are dropped when the
// buffer is full rather than blocking the sender.
type Channel struct {
	ch chan Alert
}

// NewChannel creates a Channel buffering up to size alerts.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 8
	}
	return &Channel{ch: make(chan Alert, size)}
}

// Show queues a for the UI.
func (c *Channel) Show(_ context.Context, a Alert) error {
	select {
	case c.ch <- a:
	default:
	}
	return nil
}

// Wait returns a tea.Cmd that blocks until the next alert arrives.
// Call it again after handling each ShownMsg to keep listening.
func (c *Channel) Wait() tea.Cmd {
	return func() tea.Msg {
		a, ok := <-c.ch
		if !ok {
			return nil
		}
		return ShownMsg{Alert: a}
	}
}
