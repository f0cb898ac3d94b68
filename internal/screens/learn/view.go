package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/ui/theme"
)

func (s *LearnScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.insufficient != nil {
		return s.renderInsufficient(width)
	}
	if !s.loaded {
		return renderLoading(width)
	}
	if s.showingQuitConfirm {
		return renderQuitConfirm(width)
	}
	if s.showingFeedback {
		return s.renderFeedback(width)
	}

	sess := s.ctrl.Session()
	if sess == nil {
		return renderLoading(width)
	}

	switch sess.Phase {
	case cycle.PhaseOverview:
		return s.renderOverview(width, sess)
	case cycle.PhasePractice:
		return s.renderPractice(width, sess)
	case cycle.PhaseQuiz:
		return s.renderQuiz(width, sess)
	case cycle.PhaseComplete:
		return s.renderComplete(width)
	}
	return ""
}

// renderInfoLine renders the batch progress strip above each phase.
func (s *LearnScreen) renderInfoLine(width int, sess *cycle.Session, phaseLabel string) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Batch %d/%d", sess.CurrentBatch, sess.TotalBatches))

	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(phaseLabel)

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0)))
	return line + "\n" + divider + "\n\n"
}

func (s *LearnScreen) renderOverview(width int, sess *cycle.Session) string {
	var b strings.Builder
	b.WriteString(s.renderInfoLine(width, sess, "Overview"))

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Your next three words"))
	b.WriteString("\n\n")

	for _, w := range sess.CurrentWords {
		head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(w.Headword)
		translit := lipgloss.NewStyle().Foreground(theme.TextDim).Render("[" + w.Transliteration + "]")
		meaning := lipgloss.NewStyle().Foreground(theme.Text).Render(w.Translation)
		line := fmt.Sprintf("%s %s — %s", head, translit, meaning)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.warnMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render(s.warnMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Memorize them, then press Enter to practice."))

	return b.String()
}

func (s *LearnScreen) renderPractice(width int, sess *cycle.Session) string {
	word, ok := sess.CurrentPracticeWord()
	if !ok {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width, sess,
		fmt.Sprintf("Practice  %d/%d", sess.PracticeCursor+1, len(sess.CurrentWords))))

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(word.Headword))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("[" + word.Transliteration + "]"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render("Meaning: " + s.input.View()))

	if s.warnMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.warnMsg))
	}

	return b.String()
}

func (s *LearnScreen) renderQuiz(width int, sess *cycle.Session) string {
	if _, ok := sess.CurrentQuizQuestion(); !ok {
		return renderLoading(width)
	}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width, sess,
		fmt.Sprintf("Quiz  %d/%d", sess.QuizCursor+1, len(sess.QuizQuestions))))

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\nPick (1-4) or use arrows + Enter"))

	return b.String()
}

func (s *LearnScreen) renderFeedback(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")

	// Quiz feedback shows the graded options; practice only the verdict.
	if s.lastKind == cycle.KindQuiz && s.mc.Submitted {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.mc.View()))
		b.WriteString("\n")
	}

	if s.lastCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Correct answer: %s", s.lastCorrectAnswer)))
	}

	if s.warnMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.warnMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press any key to continue..."))

	return b.String()
}

func (s *LearnScreen) renderComplete(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")
	if s.warnMsg != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(s.warnMsg))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter to see your results."))
	return b.String()
}

func (s *LearnScreen) renderInsufficient(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Not enough words to learn"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("You have %d eligible words; a batch needs %d.",
			s.insufficient.Available, s.insufficient.Required)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render(fmt.Sprintf("[A] Add %d random words from the catalog", randomWordsOnEmpty)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[Esc] Back"))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("Leave this session?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Completed batches are saved; the current batch is discarded."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, leave"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Picking your words...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
