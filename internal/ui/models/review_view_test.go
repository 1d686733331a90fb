package models

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/inboxzero/internal/plan"
)

func reviewPlan() *plan.Plan {
	return &plan.Plan{
		Version: plan.Version,
		Actions: []plan.Action{
			{From: "/in/a.pdf", To: "/in/_Sorted/Docs/a.pdf", Reason: "type:Docs", Size: 10},
			{From: "/in/b.png", To: "/in/_Sorted/Images/b.png", Reason: "type:Images", Size: 20},
			{From: "/in/c.pdf", To: "/in/_Sorted/Docs/c.pdf", Reason: "type:Docs", Size: 30},
		},
		OtherTypeCounts: map[string]int{},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestReviewQuitWithoutApplying(t *testing.T) {
	m := NewReviewModel(reviewPlan())

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))
	assert.False(t, m.Approved())
}

func TestReviewApplyNeedsConfirmation(t *testing.T) {
	m := NewReviewModel(reviewPlan())

	_, cmd := m.Update(key("a"))
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "Apply 3 moves?")

	_, cmd = m.Update(key("n"))
	assert.False(t, isQuit(cmd))
	assert.NotContains(t, m.View(), "Apply 3 moves?")

	m.Update(key("a"))
	_, cmd = m.Update(key("y"))
	assert.True(t, isQuit(cmd))
	assert.True(t, m.Approved())
}

func TestReviewEscCancelsConfirmation(t *testing.T) {
	m := NewReviewModel(reviewPlan())

	m.Update(key("a"))
	_, cmd := m.Update(key("esc"))
	assert.False(t, isQuit(cmd))
	assert.False(t, m.Approved())

	_, cmd = m.Update(key("esc"))
	assert.True(t, isQuit(cmd))
}

func TestReviewEmptyPlanCannotBeApplied(t *testing.T) {
	m := NewReviewModel(&plan.Plan{Version: plan.Version, Actions: []plan.Action{}})

	m.Update(key("a"))
	_, cmd := m.Update(key("y"))
	assert.False(t, isQuit(cmd))
	assert.False(t, m.Approved())
	assert.Contains(t, m.View(), "Nothing to sort.")
}

func TestReviewBucketFilter(t *testing.T) {
	m := NewReviewModel(reviewPlan())
	assert.Equal(t, "All", m.Filter())
	assert.Len(t, m.VisibleActions(), 3)

	m.Update(key("tab"))
	assert.Equal(t, "Docs", m.Filter())
	require.Len(t, m.VisibleActions(), 2)
	assert.Equal(t, "/in/c.pdf", m.VisibleActions()[1].From)

	m.Update(key("tab"))
	assert.Equal(t, "Images", m.Filter())
	assert.Len(t, m.VisibleActions(), 1)

	m.Update(key("tab"))
	assert.Equal(t, "All", m.Filter())
}

func TestReviewViewShowsSelection(t *testing.T) {
	m := NewReviewModel(reviewPlan())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	view := m.View()
	assert.Contains(t, view, "Review plan: 3 moves")
	assert.Contains(t, view, "/in/a.pdf")

	m.Update(key("down"))
	assert.Contains(t, m.View(), "/in/b.png")

	m.Update(key("i"))
	assert.NotContains(t, m.View(), "Selected move")
}
