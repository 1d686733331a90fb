package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fenilsonani/inboxzero/internal/plan"
	"github.com/fenilsonani/inboxzero/internal/ui/models"
)

// RunReview shows p in a full-screen table and reports whether the user
// chose to apply it
func RunReview(p *plan.Plan) (bool, error) {
	m := models.NewReviewModel(p)

	program := tea.NewProgram(m, tea.WithAltScreen())

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("error running review: %w", err)
	}

	review, ok := final.(*models.ReviewModel)
	return ok && review.Approved(), nil
}
