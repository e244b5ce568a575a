package dashboard

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/web3hub/internal/model"
)

// completed returns a dashboard whose form has just been finished.
func completed(t *testing.T) Model {
	t.Helper()
	m := New(80, 24)
	m.Start()
	m.draft.Title = "Vote"
	m.draft.Description = "Proposal 7"
	m.form.State = huh.StateCompleted
	return m
}

func countSubmitted(t *testing.T, m Model, msgs ...tea.Msg) (Model, int) {
	t.Helper()
	n := 0
	for _, msg := range msgs {
		var cmd tea.Cmd
		m, cmd = m.Update(msg)
		if cmd == nil {
			continue
		}
		if sub, ok := cmd().(SubmittedMsg); ok {
			assert.Equal(t, "Vote", sub.Draft.Title)
			n++
		}
	}
	return m, n
}

func TestCompletedFormSubmitsOnce(t *testing.T) {
	m := completed(t)

	m, n := countSubmitted(t, m,
		tea.KeyMsg{Type: tea.KeyEnter},
		tea.WindowSizeMsg{Width: 100, Height: 30},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	assert.Equal(t, 1, n)
	assert.True(t, m.Submitted())
}

func TestSucceededRearmsForm(t *testing.T) {
	m := completed(t)
	m, n := countSubmitted(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, 1, n)

	m.Succeeded()
	assert.False(t, m.Submitted())
	assert.Equal(t, huh.StateNormal, m.form.State)
	assert.Empty(t, m.draft.Title)
	assert.Equal(t, model.CategoryGovernance, m.draft.Type)
	assert.Contains(t, m.View(), "Notification added successfully!")
}

func TestFailedKeepsValues(t *testing.T) {
	m := completed(t)
	m, _ = countSubmitted(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m.Failed(errors.New("disk full"))
	assert.False(t, m.Submitted())
	assert.Equal(t, "Vote", m.draft.Title)
	assert.Contains(t, m.View(), "disk full")

	m.form.State = huh.StateCompleted
	_, n := countSubmitted(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 1, n)
}
