package app

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/producer"
)

// storeTimeout bounds a single repository operation started from the UI.
const storeTimeout = 10 * time.Second

type listsRefreshedMsg struct {
	all []model.Notification
}

type deletedMsg struct {
	id  string
	err error
}

type submitResultMsg struct {
	notification model.Notification
	err          error
}

// actionDoneMsg reports the outcome of a fire-and-forget action such as
// opening a link.
type actionDoneMsg struct {
	err error
}

// refreshLists snapshots the repository for both list views.
func (m Model) refreshLists() tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		return listsRefreshedMsg{all: repo.List()}
	}
}

// reload re-reads the persisted notifications, picking up records
// written by another process.
func (m Model) reload() tea.Cmd {
	repo, logger := m.repo, m.logger
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := repo.Reload(ctx); err != nil {
			logger.Warn("reloading notifications failed", zap.Error(err))
		}
		return listsRefreshedMsg{all: repo.List()}
	}
}

func (m Model) deleteNotification(id string) tea.Cmd {
	repo := m.repo
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return deletedMsg{id: id, err: repo.Delete(ctx, id)}
	}
}

func (m Model) submitDraft(d producer.Draft) tea.Cmd {
	p := m.producer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		n, err := p.Submit(ctx, d)
		return submitResultMsg{notification: n, err: err}
	}
}

func (m Model) openURL(url string) tea.Cmd {
	opener := m.opener
	return func() tea.Msg {
		if err := opener.Open(url); err != nil {
			return actionDoneMsg{err: fmt.Errorf("opening %s: %w", url, err)}
		}
		return actionDoneMsg{}
	}
}

func (m Model) clickAlert(id string) tea.Cmd {
	p := m.poller
	if p == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return actionDoneMsg{err: p.HandleAlertClick(ctx, id)}
	}
}
