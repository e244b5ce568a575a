package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/model"
)

// Adaptive color pairs (dark value, light value). Which half is used
// follows the user's theme preference, see Apply.
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange  = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite   = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder  = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// Apply switches every adaptive color to the half matching t. It must
// run before the next render for the change to be visible.
func Apply(t model.Theme) {
	lipgloss.SetHasDarkBackground(t == model.ThemeDark)
}

// HeaderStyle is used for top-level section headers and the application title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// BannerStyle highlights transient messages such as incoming alerts.
var BannerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow).
	Padding(0, 1)

// ErrorStyle renders inline error text.
var ErrorStyle = lipgloss.NewStyle().
	Foreground(ColorRed)

// SuccessStyle renders confirmation text.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// PanelStyle wraps view content areas.
var PanelStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// HelpStyle is used for keyboard shortcut hints and help text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// TabStyle and ActiveTabStyle render the footer quick actions.
var (
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBlue).
			Underline(true).
			Padding(0, 1)
)

// CategoryStyle returns a color-coded style for the given category.
func CategoryStyle(c model.Category) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch c {
	case model.CategoryGovernance:
		return base.Foreground(ColorBlue)
	case model.CategorySecurity:
		return base.Foreground(ColorRed)
	case model.CategoryAirdrop:
		return base.Foreground(ColorGreen)
	case model.CategoryUpgrade:
		return base.Foreground(ColorMagenta)
	default:
		return base.Foreground(ColorGray)
	}
}

// CategoryIcon returns the glyph shown next to a category.
func CategoryIcon(c model.Category) string {
	switch c {
	case model.CategoryGovernance:
		return "⚖"
	case model.CategorySecurity:
		return "⚠"
	case model.CategoryAirdrop:
		return "🎁"
	case model.CategoryUpgrade:
		return "⬆"
	default:
		return "•"
	}
}

// PriorityStyle returns a color-coded style for the given priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// AirdropStatusStyle returns a color-coded style for an airdrop status.
func AirdropStatusStyle(s model.AirdropStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true).Padding(0, 1)

	switch s {
	case model.AirdropActive:
		return base.Foreground(ColorGreen)
	case model.AirdropUpcoming:
		return base.Foreground(ColorOrange)
	default:
		return base.Foreground(ColorGray)
	}
}
