package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/alert"
	"github.com/nhle/web3hub/internal/keys"
	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/notify"
	"github.com/nhle/web3hub/internal/prefs"
	"github.com/nhle/web3hub/internal/producer"
	"github.com/nhle/web3hub/internal/router"
	"github.com/nhle/web3hub/internal/session"
	appsync "github.com/nhle/web3hub/internal/sync"
	"github.com/nhle/web3hub/internal/theme"
	"github.com/nhle/web3hub/internal/ui"
	"github.com/nhle/web3hub/internal/ui/command"
	"github.com/nhle/web3hub/internal/ui/dashboard"
	"github.com/nhle/web3hub/internal/ui/detail"
	helpview "github.com/nhle/web3hub/internal/ui/help"
	"github.com/nhle/web3hub/internal/ui/login"
	"github.com/nhle/web3hub/internal/ui/notiflist"
	"github.com/nhle/web3hub/internal/ui/settings"
	"github.com/nhle/web3hub/internal/ui/walletview"
	"github.com/nhle/web3hub/internal/wallet"
)

// overlay is a panel drawn over the routed view.
type overlay int

const (
	overlayNone overlay = iota
	overlayDetail
	overlayHelp
	overlayCommand
)

// Deps holds the services the root model drives.
type Deps struct {
	Repo     *notify.Repository
	Prefs    *prefs.Store
	Producer *producer.Producer
	Router   *router.Router
	Poller   *appsync.Poller
	Alerts   *alert.Channel
	Opener   alert.Opener
	Wallet   *wallet.Connector
	Logger   *zap.Logger
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the notification services.
type Model struct {
	repo     *notify.Repository
	prefs    *prefs.Store
	producer *producer.Producer
	router   *router.Router
	poller   *appsync.Poller
	alerts   *alert.Channel
	opener   alert.Opener
	logger   *zap.Logger

	keys   *keys.KeyMap
	layout ui.Layout
	ready  bool

	overlay overlay
	banner  *alert.Alert
	status  string

	// startCmd initializes the login form built in New.
	startCmd tea.Cmd

	loginView     login.Model
	notifications notiflist.Model
	airdrops      notiflist.Model
	detail        detail.Model
	settingsView  settings.Model
	walletView    walletview.Model
	dashboardView dashboard.Model
	helpView      helpview.Model
	commandView   command.Model
}

// New creates the root model. Preferences changes are applied to the
// theme as soon as they happen.
func New(d Deps) Model {
	k := keys.DefaultKeyMap()
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Opener == nil {
		d.Opener = alert.BrowserOpener{}
	}
	if d.Alerts == nil {
		d.Alerts = alert.NewChannel(0)
	}

	d.Prefs.Subscribe(func(p model.Preferences) {
		theme.Apply(p.Theme)
	})
	theme.Apply(d.Prefs.Current().Theme)

	airdrops := notiflist.New("Active Airdrops", k, 80, 24)
	airdrops.SetEmptyText("No active airdrops right now.")

	m := Model{
		repo:          d.Repo,
		prefs:         d.Prefs,
		producer:      d.Producer,
		router:        d.Router,
		poller:        d.Poller,
		alerts:        d.Alerts,
		opener:        d.Opener,
		logger:        d.Logger,
		keys:          k,
		loginView:     login.New(80, 24),
		notifications: notiflist.New("Notifications", k, 80, 24),
		airdrops:      airdrops,
		detail:        detail.New(k, 80, 24),
		settingsView:  settings.New(k, 80, 24),
		walletView:    walletview.New(d.Wallet, k, 80, 24),
		dashboardView: dashboard.New(80, 24),
		helpView:      helpview.New(k, 80, 24),
		commandView:   command.New(80, 24),
	}
	m.settingsView.SetPreferences(d.Prefs.Current())
	if d.Router.Current() == router.ViewLogin {
		m.startCmd = m.loginView.Start(false)
	}
	return m
}

// Init starts the poller and the alert listener, and opens the login
// form when no session is active.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.alerts.Wait(),
		m.refreshLists(),
		m.startCmd,
	}
	if m.poller != nil {
		cmds = append(cmds, m.poller.Start())
	}
	return tea.Batch(cmds...)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		m.loginView.SetSize(w, h)
		m.notifications.SetSize(w, h)
		m.airdrops.SetSize(w, h)
		m.detail.SetSize(w, h)
		m.settingsView.SetSize(w, h)
		m.walletView.SetSize(w, h)
		m.dashboardView.SetSize(w, h)
		m.helpView.SetSize(w, h)
		m.commandView.SetSize(w, h)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.TickResultMsg:
		if msg.Standby {
			return m, tea.Batch(m.reload(), m.poller.WaitForNextResult())
		}
		if msg.Error != nil {
			m.status = "Saving notification failed: " + msg.Error.Error()
		}
		return m, tea.Batch(m.refreshLists(), m.poller.WaitForNextResult())

	case alert.ShownMsg:
		a := msg.Alert
		m.banner = &a
		return m, m.alerts.Wait()

	case listsRefreshedMsg:
		return m, tea.Batch(
			m.notifications.SetNotifications(router.Visible(msg.all, m.router.Filter()), m.filterLabel()),
			m.airdrops.SetNotifications(router.ActiveAirdrops(msg.all), "Active"),
		)

	case login.SubmittedMsg:
		st := m.router.Login(msg.Identity, msg.Secret)
		if !st.LoggedIn() {
			return m, m.loginView.Start(true)
		}
		m.logger.Info("logged in", zap.String("role", st.String()))
		m.status = ""
		return m, m.refreshLists()

	case login.CancelMsg:
		return m, m.loginView.Start(false)

	case notiflist.SelectedMsg:
		m.detail.SetNotification(msg.Notification)
		m.overlay = overlayDetail
		return m, nil

	case notiflist.DeleteRequestedMsg:
		return m, m.deleteNotification(msg.ID)

	case detail.DeleteMsg:
		m.detail.Clear()
		m.overlay = overlayNone
		return m, m.deleteNotification(msg.ID)

	case notiflist.OpenRequestedMsg:
		return m, m.openURL(msg.URL)

	case detail.OpenMsg:
		return m, m.openURL(msg.URL)

	case detail.BackMsg:
		m.detail.Clear()
		m.overlay = overlayNone
		return m, nil

	case deletedMsg:
		if msg.err != nil {
			m.status = "Delete not saved: " + msg.err.Error()
		}
		return m, m.refreshLists()

	case actionDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
		}
		return m, nil

	case settings.ToggleThemeMsg:
		return m, m.toggleTheme()

	case settings.ToggleCategoryMsg:
		p, err := m.prefs.ToggleCategory(context.Background(), msg.Category)
		m.settingsView.SetPreferences(p)
		m.setSaveStatus(err)
		return m, nil

	case settings.LogoutMsg:
		return m, m.logout()

	case walletview.ConnectedMsg:
		var cmd tea.Cmd
		m.walletView, cmd = m.walletView.Update(msg)
		return m, cmd

	case dashboard.SubmittedMsg:
		return m, m.submitDraft(msg.Draft)

	case dashboard.CancelMsg:
		return m, m.navigate(router.ViewNotifications)

	case submitResultMsg:
		if msg.notification.ID == "" && msg.err != nil {
			return m, m.dashboardView.Failed(msg.err)
		}
		if msg.err != nil {
			m.status = "Notification not saved: " + msg.err.Error()
		}
		return m, tea.Batch(m.dashboardView.Succeeded(), m.refreshLists())

	case command.CommandMsg:
		m.overlay = overlayNone
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.capturesKeys() {
			break
		}
		if cmd, handled := m.handleGlobalKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturesKeys reports whether the active view consumes all key input,
// as text inputs and forms do.
func (m Model) capturesKeys() bool {
	if m.overlay == overlayCommand {
		return false
	}
	switch m.router.Current() {
	case router.ViewLogin:
		return true
	case router.ViewDashboard:
		return m.router.CanRender(router.ViewDashboard)
	}
	return false
}

// handleGlobalKey processes keys that work regardless of the active view.
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.overlay == overlayCommand {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Command) {
			m.overlay = overlayNone
			return nil, true
		}
		return nil, false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(), true

	case key.Matches(msg, m.keys.Help):
		if m.overlay == overlayHelp {
			m.overlay = overlayNone
		} else {
			m.helpView.SetAdmin(m.router.Session() == session.LoggedInAdmin)
			m.overlay = overlayHelp
		}
		return nil, true

	case key.Matches(msg, m.keys.Command):
		m.overlay = overlayCommand
		return m.commandView.Focus(), true

	case m.overlay == overlayHelp && key.Matches(msg, m.keys.Back):
		m.overlay = overlayNone
		return nil, true

	case m.overlay == overlayDetail:
		return nil, false

	case key.Matches(msg, m.keys.FilterAll):
		return m.setFilter(nil), true
	case key.Matches(msg, m.keys.FilterGovernance):
		return m.setFilter(categoryPtr(model.CategoryGovernance)), true
	case key.Matches(msg, m.keys.FilterSecurity):
		return m.setFilter(categoryPtr(model.CategorySecurity)), true
	case key.Matches(msg, m.keys.FilterUpgrades):
		return m.setFilter(categoryPtr(model.CategoryUpgrade)), true
	case key.Matches(msg, m.keys.Airdrops):
		return m.navigate(router.ViewAirdrops), true
	case key.Matches(msg, m.keys.Wallet):
		return m.navigate(router.ViewWallet), true
	case key.Matches(msg, m.keys.Settings):
		return m.navigate(router.ViewSettings), true
	case key.Matches(msg, m.keys.Dashboard):
		return m.navigate(router.ViewDashboard), true
	case key.Matches(msg, m.keys.ToggleTheme):
		return m.toggleTheme(), true
	case key.Matches(msg, m.keys.Refresh):
		return m.reload(), true
	case key.Matches(msg, m.keys.OpenAlert):
		if m.banner == nil {
			return nil, true
		}
		id := m.banner.ID
		m.banner = nil
		return m.clickAlert(id), true
	case key.Matches(msg, m.keys.Back):
		if m.router.Current() != router.ViewNotifications {
			return m.navigate(router.ViewNotifications), true
		}
	}
	return nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.overlay {
	case overlayDetail:
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	case overlayHelp:
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	case overlayCommand:
		m.commandView, cmd = m.commandView.Update(msg)
		return m, cmd
	}

	switch m.router.Current() {
	case router.ViewLogin:
		m.loginView, cmd = m.loginView.Update(msg)
	case router.ViewNotifications:
		m.notifications, cmd = m.notifications.Update(msg)
	case router.ViewAirdrops:
		m.airdrops, cmd = m.airdrops.Update(msg)
	case router.ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case router.ViewWallet:
		m.walletView, cmd = m.walletView.Update(msg)
	case router.ViewDashboard:
		if m.router.CanRender(router.ViewDashboard) {
			m.dashboardView, cmd = m.dashboardView.Update(msg)
		}
	}

	return m, cmd
}

// navigate switches the routed view and runs the enter and leave hooks
// of the views involved.
func (m *Model) navigate(v router.View) tea.Cmd {
	from := m.router.Current()
	to := m.router.Navigate(v)
	m.overlay = overlayNone
	m.status = ""

	if from == router.ViewWallet && to != router.ViewWallet {
		m.walletView.Leave()
	}
	if from == to {
		return nil
	}

	switch to {
	case router.ViewWallet:
		if !m.walletView.Connected() {
			return m.walletView.Connect()
		}
	case router.ViewDashboard:
		if m.router.CanRender(router.ViewDashboard) {
			return m.dashboardView.Start()
		}
	case router.ViewSettings:
		m.settingsView.SetPreferences(m.prefs.Current())
	case router.ViewLogin:
		return m.loginView.Start(false)
	}
	return nil
}

func (m *Model) setFilter(c *model.Category) tea.Cmd {
	if m.router.Current() == router.ViewWallet {
		m.walletView.Leave()
	}
	m.router.SetFilter(c)
	m.overlay = overlayNone
	return m.refreshLists()
}

func (m *Model) toggleTheme() tea.Cmd {
	p, err := m.prefs.ToggleTheme(context.Background())
	m.settingsView.SetPreferences(p)
	m.setSaveStatus(err)
	return nil
}

func (m *Model) setSaveStatus(err error) {
	if err != nil {
		m.status = "Preferences not saved: " + err.Error()
		return
	}
	m.status = ""
}

func (m *Model) logout() tea.Cmd {
	m.walletView.Leave()
	m.router.Logout()
	m.overlay = overlayNone
	m.detail.Clear()
	m.logger.Info("logged out")
	return m.loginView.Start(false)
}

func (m *Model) quit() tea.Cmd {
	if m.poller != nil {
		m.poller.Stop()
	}
	return tea.Quit
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	switch cmd {
	case "all":
		return m.setFilter(nil)
	case "airdrops":
		return m.navigate(router.ViewAirdrops)
	case "wallet":
		return m.navigate(router.ViewWallet)
	case "settings":
		return m.navigate(router.ViewSettings)
	case "dashboard":
		return m.navigate(router.ViewDashboard)
	case "theme":
		return m.toggleTheme()
	case "refresh", "reload":
		return m.reload()
	case "logout":
		return m.logout()
	case "quit", "q":
		return m.quit()
	}
	if c, ok := model.ParseCategory(strings.TrimSuffix(cmd, "s")); ok {
		return m.setFilter(&c)
	}
	m.status = fmt.Sprintf("Unknown command %q", cmd)
	return nil
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Web3 Notification Hub", m.sessionStatus())
	footer := m.layout.RenderFooter(m.tabs())
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	return m.layout.RenderWithFrame(header, m.renderContent(), footer, statusBar)
}

// renderContent returns the rendered string for the active view.
func (m Model) renderContent() string {
	switch m.overlay {
	case overlayDetail:
		return m.detail.View()
	case overlayHelp:
		return m.helpView.View()
	case overlayCommand:
		return m.commandView.View()
	}

	v := m.router.Current()
	if !m.router.CanRender(v) {
		return ""
	}
	switch v {
	case router.ViewLogin:
		return m.loginView.View()
	case router.ViewNotifications:
		return m.notifications.View()
	case router.ViewAirdrops:
		return m.airdrops.View()
	case router.ViewSettings:
		return m.settingsView.View()
	case router.ViewWallet:
		return m.walletView.View()
	case router.ViewDashboard:
		return m.dashboardView.View()
	default:
		return ""
	}
}

func (m Model) sessionStatus() string {
	switch m.router.Session() {
	case session.LoggedInAdmin:
		return "admin"
	case session.LoggedInUser:
		return "signed in"
	default:
		return "signed out"
	}
}

// tabs returns the footer quick actions for the current session.
func (m Model) tabs() []ui.Tab {
	if !m.router.Session().LoggedIn() {
		return nil
	}

	view := m.router.Current()
	filter := m.router.Filter()
	onList := func(c *model.Category) bool {
		if view != router.ViewNotifications {
			return false
		}
		if c == nil || filter == nil {
			return c == nil && filter == nil
		}
		return *c == *filter
	}

	tabs := []ui.Tab{
		{Key: "0", Label: "All", Active: onList(nil)},
		{Key: "1", Label: "Governance", Active: onList(categoryPtr(model.CategoryGovernance))},
		{Key: "2", Label: "Security", Active: onList(categoryPtr(model.CategorySecurity))},
		{Key: "3", Label: "Airdrops", Active: view == router.ViewAirdrops},
		{Key: "4", Label: "Wallet", Active: view == router.ViewWallet},
		{Key: "5", Label: "Upgrades", Active: onList(categoryPtr(model.CategoryUpgrade))},
		{Key: "s", Label: "Settings", Active: view == router.ViewSettings},
	}
	if m.router.Session() == session.LoggedInAdmin {
		tabs = append(tabs, ui.Tab{Key: "n", Label: "Dashboard", Active: view == router.ViewDashboard})
	}
	return tabs
}

// statusLine shows the latest alert, then any error, then key hints.
func (m Model) statusLine() string {
	if m.banner != nil {
		return theme.BannerStyle.Render("🔔 "+m.banner.Title+": "+m.banner.Message) + "  a open"
	}
	if m.status != "" {
		return m.status
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.overlay {
	case overlayHelp:
		return "? close help | esc back"
	case overlayCommand:
		return ": close | tab complete | enter execute"
	case overlayDetail:
		return "esc back | o open link | d delete | j/k scroll"
	}

	switch m.router.Current() {
	case router.ViewLogin:
		return "enter submit | ctrl+c quit"
	case router.ViewDashboard:
		return "enter next | esc cancel"
	case router.ViewSettings:
		return "j/k move | enter toggle | esc back"
	case router.ViewWallet:
		return "enter connect | esc back"
	default:
		return "q quit | ? help | : command | enter details | d delete | o open"
	}
}

func (m Model) filterLabel() string {
	f := m.router.Filter()
	if f == nil {
		return "All"
	}
	s := string(*f)
	return strings.ToUpper(s[:1]) + s[1:]
}

func categoryPtr(c model.Category) *model.Category {
	return &c
}
