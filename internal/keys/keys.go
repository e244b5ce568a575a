package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Notification actions
	Delete     key.Binding
	OpenAction key.Binding
	Refresh    key.Binding

	// Quick actions
	FilterAll        key.Binding
	FilterGovernance key.Binding
	FilterSecurity   key.Binding
	Airdrops         key.Binding
	Wallet           key.Binding
	FilterUpgrades   key.Binding

	// Views
	Settings  key.Binding
	Dashboard key.Binding

	// Theme
	ToggleTheme key.Binding

	// Alerts and commands
	OpenAlert key.Binding
	Command   key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "details"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		OpenAction: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open link"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "all"),
		),
		FilterGovernance: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "governance"),
		),
		FilterSecurity: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "security"),
		),
		Airdrops: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "airdrops"),
		),
		Wallet: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "wallet"),
		),
		FilterUpgrades: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "upgrades"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "settings"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new notification (admin)"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle theme"),
		),
		OpenAlert: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "open latest alert"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command palette"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Delete,
		k.Back, k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.Delete, k.OpenAction, k.Refresh, k.Help},
		{k.FilterAll, k.FilterGovernance, k.FilterSecurity, k.Airdrops, k.Wallet, k.FilterUpgrades},
		{k.Settings, k.Dashboard, k.ToggleTheme, k.OpenAlert, k.Command},
	}
}
