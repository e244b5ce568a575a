package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/alert"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
	"github.com/nhle/web3hub/internal/prefs"
	"github.com/nhle/web3hub/internal/producer"
	"github.com/nhle/web3hub/internal/router"
	"github.com/nhle/web3hub/internal/session"
	"github.com/nhle/web3hub/internal/store"
	appsync "github.com/nhle/web3hub/internal/sync"
	"github.com/nhle/web3hub/internal/ui/command"
	"github.com/nhle/web3hub/internal/ui/dashboard"
	"github.com/nhle/web3hub/internal/ui/login"
	"github.com/nhle/web3hub/internal/ui/settings"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	kv := store.NewMemoryStore()
	repo := notify.NewRepository(kv)
	return New(Deps{
		Repo:     repo,
		Prefs:    prefs.New(kv, nil),
		Producer: producer.New(repo),
		Router:   router.New(session.NewGate("admin", "admin")),
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func press(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func loggedIn(t *testing.T, identity, secret string) Model {
	t.Helper()
	m := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, login.SubmittedMsg{Identity: identity, Secret: secret})
	return m
}

func TestLoginLandsOnNotifications(t *testing.T) {
	m := loggedIn(t, "alice", "x")
	assert.Equal(t, router.ViewNotifications, m.router.Current())
	assert.Equal(t, session.LoggedInUser, m.router.Session())
}

func TestFailedLoginStaysOnLogin(t *testing.T) {
	m := loggedIn(t, "", "")
	assert.Equal(t, router.ViewLogin, m.router.Current())
	assert.Contains(t, m.View(), "Enter both a username and a password.")
}

func TestGlobalKeysIgnoredWhileLoggedOut(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "4")
	assert.Equal(t, router.ViewLogin, m.router.Current())
}

func TestFilterKeys(t *testing.T) {
	m := loggedIn(t, "alice", "x")

	m = press(t, m, "2")
	require.NotNil(t, m.router.Filter())
	assert.Equal(t, model.CategorySecurity, *m.router.Filter())

	m = press(t, m, "0")
	assert.Nil(t, m.router.Filter())

	m = press(t, m, "3")
	assert.Equal(t, router.ViewAirdrops, m.router.Current())

	m = press(t, m, "5")
	assert.Equal(t, router.ViewNotifications, m.router.Current())
	assert.Equal(t, model.CategoryUpgrade, *m.router.Filter())
}

func TestDashboardIsAdminOnly(t *testing.T) {
	user := loggedIn(t, "alice", "x")
	user = press(t, user, "n")
	assert.Equal(t, router.ViewDashboard, user.router.Current())
	assert.Empty(t, user.renderContent())
	user = press(t, user, "0")
	assert.Equal(t, router.ViewNotifications, user.router.Current())

	admin := loggedIn(t, "admin", "admin")
	admin = press(t, admin, "n")
	assert.Contains(t, admin.renderContent(), "Add Notification")
}

func TestLogoutClearsFilter(t *testing.T) {
	m := loggedIn(t, "alice", "x")
	m = press(t, m, "1")
	require.NotNil(t, m.router.Filter())

	m, _ = update(t, m, settings.LogoutMsg{})
	assert.Equal(t, router.ViewLogin, m.router.Current())
	assert.Nil(t, m.router.Filter())
	assert.False(t, m.router.Session().LoggedIn())
}

func TestThemeToggleKey(t *testing.T) {
	m := loggedIn(t, "alice", "x")
	m = press(t, m, "t")
	assert.Equal(t, model.ThemeDark, m.prefs.Current().Theme)
	assert.Equal(t, model.ThemeDark, m.prefs.Read(context.Background()).Theme)
}

func TestDashboardSubmitAppends(t *testing.T) {
	m := loggedIn(t, "admin", "admin")
	m = press(t, m, "n")

	d := producer.DefaultDraft()
	d.Type = model.CategorySecurity
	d.Title = "Exploit"
	d.Description = "Pause deposits"
	_, cmd := update(t, m, dashboard.SubmittedMsg{Draft: d})
	require.NotNil(t, cmd)

	msg, ok := cmd().(submitResultMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)

	list := m.repo.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Exploit", list[0].Title)
}

func TestAlertBannerAndClick(t *testing.T) {
	m := loggedIn(t, "alice", "x")
	m, _ = update(t, m, alert.ShownMsg{Alert: alert.Alert{ID: "1", Title: "New Governance Proposal", Message: "Vote"}})

	assert.Contains(t, m.View(), "New Governance Proposal")

	m = press(t, m, "a")
	assert.Nil(t, m.banner)
}

func TestCommandPaletteFiltersByCategory(t *testing.T) {
	m := loggedIn(t, "alice", "x")
	m = press(t, m, ":")
	assert.Equal(t, overlayCommand, m.overlay)

	m, _ = update(t, m, command.CommandMsg("governance"))
	assert.Equal(t, overlayNone, m.overlay)
	require.NotNil(t, m.router.Filter())
	assert.Equal(t, model.CategoryGovernance, *m.router.Filter())
}

func TestStandbyTickReloadsFromStore(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryStore()
	repo := notify.NewRepository(kv)
	m := New(Deps{
		Repo:     repo,
		Prefs:    prefs.New(kv, nil),
		Producer: producer.New(repo),
		Router:   router.New(session.NewGate("admin", "admin")),
		Poller:   appsync.New(appsync.Config{Repo: repo}),
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m, _ = update(t, m, login.SubmittedMsg{Identity: "alice", Secret: "x"})

	// The process holding the lease writes through its own repository.
	other := notify.NewRepository(kv)
	n, err := other.Append(ctx, model.Notification{Title: "from poller"})
	require.NoError(t, err)
	assert.Empty(t, repo.List())

	_, cmd := update(t, m, appsync.TickResultMsg{Standby: true})
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	require.NotEmpty(t, batch)

	refreshed, ok := batch[0]().(listsRefreshedMsg)
	require.True(t, ok)
	require.Len(t, refreshed.all, 1)
	assert.Equal(t, n.ID, refreshed.all[0].ID)
}
