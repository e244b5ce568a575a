package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/theme"
)

// Layout manages the terminal layout dimensions.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	FooterHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// The header, footer and status bar are one line each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		FooterHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area,
// accounting for the header, footer and status bar.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.FooterHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// RenderHeader renders the top header bar with a title on the left and
// session information on the right.
func (l Layout) RenderHeader(title string, right string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	rightRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(right)

	gap := l.Width -
		lipgloss.Width(titleRendered) -
		lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.HeaderStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.HeaderStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		filler,
		rightRendered,
	)
}

// Tab is one footer quick action.
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// RenderFooter renders the quick-action tabs.
func (l Layout) RenderFooter(tabs []Tab) string {
	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		label := t.Key + " " + t.Label
		if t.Active {
			parts = append(parts, theme.ActiveTabStyle.Render(label))
		} else {
			parts = append(parts, theme.TabStyle.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(l.Width).
		Render(strings.Join(parts, " "))
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)

	gap := l.Width - lipgloss.Width(rendered)
	if gap < 0 {
		gap = 0
	}

	filler := theme.StatusBarStyle.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(theme.StatusBarStyle.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered, filler)
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, footer and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	footer string,
	statusBar string,
) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		footer,
		statusBar,
	)
}
