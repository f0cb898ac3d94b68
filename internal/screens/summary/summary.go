// Package summary renders the end-of-session results screen.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/router"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/ui/components"
	"github.com/aidosq/sozdyq/internal/ui/layout"
	"github.com/aidosq/sozdyq/internal/ui/theme"
)

// SummaryScreen displays the aggregated results of a learning session.
type SummaryScreen struct {
	summary           cycle.SessionSummary
	promotionFailures int
	backButton        components.Button
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. promotionFailures is how many words
// from the final batch could not be promoted to learned.
func New(summary cycle.SessionSummary, promotionFailures int) *SummaryScreen {
	return &SummaryScreen{
		summary:           summary,
		promotionFailures: promotionFailures,
		backButton: components.NewButton("Back to menu", true, func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}),
	}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	var cmd tea.Cmd
	s.backButton, cmd = s.backButton.Update(msg)
	return s, cmd
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Жарайсың! Well done!"))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Batches: %d        Words learned: %d",
		sum.BatchesCompleted, sum.TotalWordsLearned)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	barWidth := min(width-20, 50)
	practiceBar := components.NewProgressBar("Practice", sum.PracticeAccuracy/100, true, barWidth)
	quizBar := components.NewProgressBar("Quiz    ", sum.QuizAccuracy/100, true, barWidth)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, practiceBar.View()))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, quizBar.View()))
	b.WriteString("\n\n")

	if s.promotionFailures > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(fmt.Sprintf("%d words stayed in learning; they'll come around again.",
				s.promotionFailures)))
		b.WriteString("\n\n")
	}

	if sum.BatchesCompleted == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("No batches finished this time. Try again soon!"))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.backButton.View()))
	b.WriteString("\n")

	return b.String()
}
