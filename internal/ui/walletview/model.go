package walletview

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/theme"
	"github.com/nhle/web3hub/internal/wallet"
)

// connectTimeout bounds one connection attempt.
const connectTimeout = 60 * time.Second

// ConnectedMsg carries the result of a connection attempt. Seq identifies
// the attempt so that results arriving after the user left are ignored.
type ConnectedMsg struct {
	Seq     int
	Account wallet.Account
	Err     error
}

type state int

const (
	stateIdle state = iota
	stateConnecting
	stateConnected
)

// Model is the wallet view. The connected account lives only in memory.
type Model struct {
	connector *wallet.Connector
	keys      *keys.KeyMap
	spinner   spinner.Model

	state   state
	seq     int
	account wallet.Account
	err     error

	width  int
	height int
}

// New creates the wallet view.
func New(c *wallet.Connector, k *keys.KeyMap, width, height int) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)
	return Model{
		connector: c,
		keys:      k,
		spinner:   s,
		width:     width,
		height:    height,
	}
}

// Connect starts a connection attempt.
func (m *Model) Connect() tea.Cmd {
	m.seq++
	m.state = stateConnecting
	m.err = nil

	seq := m.seq
	c := m.connector
	connect := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		acct, err := c.Connect(ctx)
		return ConnectedMsg{Seq: seq, Account: acct, Err: err}
	}
	return tea.Batch(m.spinner.Tick, connect)
}

// Leave abandons an in-flight attempt. Its result will be ignored.
func (m *Model) Leave() {
	if m.state == stateConnecting {
		m.seq++
		m.state = stateIdle
	}
}

// Connected reports whether an account is connected.
func (m Model) Connected() bool {
	return m.state == stateConnected
}

// Update handles messages for the wallet view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ConnectedMsg:
		if msg.Seq != m.seq || m.state != stateConnecting {
			return m, nil
		}
		if msg.Err != nil {
			m.state = stateIdle
			m.err = msg.Err
			return m, nil
		}
		m.state = stateConnected
		m.account = msg.Account
		return m, nil

	case spinner.TickMsg:
		if m.state != stateConnecting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Select) && m.state == stateIdle {
			return m, m.Connect()
		}
	}
	return m, nil
}

// View renders the wallet panel.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	content := titleStyle.Render("Wallet") + "\n"

	switch m.state {
	case stateConnecting:
		content += m.spinner.View() + " Waiting for the wallet to approve..."
	case stateConnected:
		content += labelStyle.Render("Address  ") + m.account.ShortAddress() + "\n"
		content += labelStyle.Render("Balance  ") + m.account.FormatBalance(4) + " ETH"
	default:
		if m.err != nil {
			content += theme.ErrorStyle.Render(errorText(m.err)) + "\n\n"
		}
		if !m.connector.Available() {
			content += theme.HelpStyle.Render("No wallet provider configured. Set wallet.rpc_url in the config file.")
		} else {
			content += "Press enter to connect your wallet."
		}
	}

	return theme.PanelStyle.
		Width(max(m.width-4, 20)).
		Render(content)
}

func errorText(err error) string {
	switch {
	case errors.Is(err, wallet.ErrNoProvider):
		return "No wallet provider available."
	case errors.Is(err, wallet.ErrRejected):
		return "Connection request was rejected."
	default:
		return "Could not connect: " + err.Error()
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
