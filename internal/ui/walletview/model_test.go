package walletview

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/wallet"
)

type stubProvider struct {
	accounts []string
	balance  string
	err      error
}

func (s stubProvider) RequestAccounts(context.Context) ([]string, error) {
	return s.accounts, s.err
}

func (s stubProvider) GetBalance(context.Context, string, string) (string, error) {
	return s.balance, nil
}

func TestConnectedResultApplied(t *testing.T) {
	m := New(wallet.NewConnector(stubProvider{}), keys.DefaultKeyMap(), 80, 24)
	m.Connect()

	m, _ = m.Update(ConnectedMsg{Seq: m.seq, Account: wallet.Account{Address: "0xabc"}})
	assert.True(t, m.Connected())
}

func TestLateResultIgnored(t *testing.T) {
	m := New(wallet.NewConnector(stubProvider{}), keys.DefaultKeyMap(), 80, 24)
	m.Connect()
	stale := m.seq

	m.Leave()
	m, _ = m.Update(ConnectedMsg{Seq: stale, Account: wallet.Account{Address: "0xabc"}})
	assert.False(t, m.Connected())
	assert.NoError(t, m.err)
}

func TestRejectedStaysDisconnected(t *testing.T) {
	m := New(wallet.NewConnector(stubProvider{}), keys.DefaultKeyMap(), 80, 24)
	m.Connect()

	m, _ = m.Update(ConnectedMsg{Seq: m.seq, Err: wallet.ErrRejected})
	assert.False(t, m.Connected())
	require.Error(t, m.err)
	assert.Contains(t, m.View(), "rejected")
}

func TestEnterStartsConnect(t *testing.T) {
	m := New(wallet.NewConnector(nil), keys.DefaultKeyMap(), 80, 24)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, stateConnecting, m.state)

	m, _ = m.Update(ConnectedMsg{Seq: m.seq, Err: errors.Join(wallet.ErrNoProvider)})
	assert.Contains(t, m.View(), "No wallet provider")
}
