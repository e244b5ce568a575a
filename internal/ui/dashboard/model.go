package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/web3hub/internal/model"
	"github.com/nhle/web3hub/internal/producer"
	"github.com/nhle/web3hub/internal/theme"
)

// SubmittedMsg carries a completed draft to the parent.
type SubmittedMsg struct {
	Draft producer.Draft
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// Model is the admin form for injecting notifications.
type Model struct {
	form *huh.Form

	// draft is on the heap so that huh's Value() pointers remain valid
	// across Bubble Tea model copies.
	draft *producer.Draft

	// submitted is set once the completed form has been handed to the
	// parent, until Succeeded or Failed rebuilds it.
	submitted bool

	status string
	err    string
	width  int
	height int
}

// New creates the dashboard form model.
func New(width, height int) Model {
	d := producer.DefaultDraft()
	return Model{
		draft:  &d,
		width:  width,
		height: height,
	}
}

// Start resets the fields to their defaults and builds a fresh form.
func (m *Model) Start() tea.Cmd {
	*m.draft = producer.DefaultDraft()
	m.form = m.buildForm()
	m.submitted = false
	return m.form.Init()
}

// Succeeded resets the form and shows a confirmation.
func (m *Model) Succeeded() tea.Cmd {
	m.status = "Notification added successfully!"
	m.err = ""
	return m.Start()
}

// Failed shows err and reopens the form with the entered values kept.
func (m *Model) Failed(err error) tea.Cmd {
	m.status = ""
	m.err = err.Error()
	m.form = m.buildForm()
	m.submitted = false
	return m.form.Init()
}

// Submitted reports whether a completed form awaits Succeeded or Failed.
func (m Model) Submitted() bool {
	return m.submitted
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil || m.submitted {
		return m, nil
	}

	if _, ok := msg.(tea.KeyMsg); ok {
		m.status = ""
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitted = true
		d := *m.draft
		return m, func() tea.Msg { return SubmittedMsg{Draft: d} }
	case huh.StateAborted:
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Add Notification")
	if m.status != "" {
		content += "\n" + theme.SuccessStyle.Render(m.status)
	}
	if m.err != "" {
		content += "\n" + theme.ErrorStyle.Render(m.err)
	}
	content += "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	typeOptions := make([]huh.Option[model.Category], 0, len(model.Categories))
	for _, c := range model.Categories {
		typeOptions = append(typeOptions, huh.NewOption(categoryLabel(c), c))
	}

	draft := m.draft
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[model.Category]().
				Title("Type").
				Options(typeOptions...).
				Value(&m.draft.Type),
			huh.NewInput().
				Title("Title").
				Value(&m.draft.Title).
				Validate(producer.Required("Title")),
			huh.NewText().
				Title("Description").
				Value(&m.draft.Description).
				Validate(producer.Required("Description")),
			huh.NewSelect[model.Priority]().
				Title("Priority").
				Options(
					huh.NewOption("High", model.PriorityHigh),
					huh.NewOption("Medium", model.PriorityMedium),
					huh.NewOption("Low", model.PriorityLow),
				).
				Value(&m.draft.Priority),
			huh.NewInput().
				Title("Action URL").
				Placeholder("https://... (optional)").
				Value(&m.draft.ActionURL),
		),
		huh.NewGroup(
			huh.NewSelect[model.AirdropStatus]().
				Title("Airdrop status").
				Options(
					huh.NewOption("Active", model.AirdropActive),
					huh.NewOption("Upcoming", model.AirdropUpcoming),
					huh.NewOption("Expired", model.AirdropExpired),
				).
				Value(&m.draft.AirdropStatus),
			huh.NewInput().
				Title("Amount").
				Value(&m.draft.Amount).
				Validate(producer.Required("Amount")),
			huh.NewInput().
				Title("End date").
				Placeholder("YYYY-MM-DD").
				Value(&m.draft.EndDate).
				Validate(producer.Required("End date")),
		).WithHideFunc(func() bool {
			return draft.Type != model.CategoryAirdrop
		}),
	).WithWidth(m.formWidth())
}

func categoryLabel(c model.Category) string {
	switch c {
	case model.CategoryGovernance:
		return "Governance"
	case model.CategorySecurity:
		return "Security"
	case model.CategoryAirdrop:
		return "Airdrop"
	case model.CategoryUpgrade:
		return "Upgrade"
	default:
		return string(c)
	}
}

func (m Model) formWidth() int {
	return min(max(m.width-4, 40), 100)
}
