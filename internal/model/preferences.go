package model

// Theme is the presentation color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Preferences is the per-installation settings singleton.
type Preferences struct {
	Governance bool  `json:"governance"`
	Security   bool  `json:"security"`
	Airdrops   bool  `json:"airdrops"`
	Upgrades   bool  `json:"upgrades"`
	Theme      Theme `json:"theme"`
}

// DefaultPreferences returns the first-run preferences: every category on,
// light theme.
func DefaultPreferences() Preferences {
	return Preferences{
		Governance: true,
		Security:   true,
		Airdrops:   true,
		Upgrades:   true,
		Theme:      ThemeLight,
	}
}

// Enabled reports whether notifications of category c are switched on.
func (p Preferences) Enabled(c Category) bool {
	switch c {
	case CategoryGovernance:
		return p.Governance
	case CategorySecurity:
		return p.Security
	case CategoryAirdrop:
		return p.Airdrops
	case CategoryUpgrade:
		return p.Upgrades
	default:
		return true
	}
}

// WithToggled returns a copy with the toggle for category c flipped.
func (p Preferences) WithToggled(c Category) Preferences {
	switch c {
	case CategoryGovernance:
		p.Governance = !p.Governance
	case CategorySecurity:
		p.Security = !p.Security
	case CategoryAirdrop:
		p.Airdrops = !p.Airdrops
	case CategoryUpgrade:
		p.Upgrades = !p.Upgrades
	}
	return p
}
