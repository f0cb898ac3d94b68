// Package stats renders lifetime learning statistics from the local
// event log.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/router"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/store"
	"github.com/aidosq/sozdyq/internal/ui/components"
	"github.com/aidosq/sozdyq/internal/ui/layout"
	"github.com/aidosq/sozdyq/internal/ui/theme"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// Provider computes aggregate statistics. *store.Store satisfies it.
type Provider interface {
	Stats(ctx context.Context) (*store.Stats, error)
}

type statsLoadedMsg struct {
	Stats *store.Stats
	Err   error
}

// StatsScreen displays lifetime counts and accuracy.
type StatsScreen struct {
	provider Provider
	stats    *store.Stats
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(provider Provider) *StatsScreen {
	return &StatsScreen{provider: provider}
}

func (s *StatsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		st, err := s.provider.Stats(context.Background())
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Statistics"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "q":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

// statusRows fixes the display order of status counts.
var statusRows = []struct {
	status vocab.Status
	label  string
}{
	{vocab.StatusWantToLearn, "Queued"},
	{vocab.StatusLearning, "Learning"},
	{vocab.StatusLearned, "Learned"},
	{vocab.StatusReview, "In review"},
	{vocab.StatusMastered, "Mastered"},
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded || s.stats == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Crunching numbers...")
	}

	st := s.stats
	var lines []string

	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render("Your vocabulary"))
	lines = append(lines, "")
	for _, row := range statusRows {
		lines = append(lines, fmt.Sprintf("%-12s %d", row.label, st.WordsByStatus[row.status]))
	}

	lines = append(lines, "")
	lines = append(lines, lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render("Practice history"))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("%-12s %d", "Sessions", st.SessionCount))
	lines = append(lines, fmt.Sprintf("%-12s %d", "Answers", st.AnswerCount))

	if st.AnswerCount > 0 {
		barWidth := min(40, width-20)
		bar := components.NewProgressBar("Accuracy", st.Accuracy()/100, true, barWidth)
		lines = append(lines, "")
		lines = append(lines, bar.View())
	}

	if st.TotalPractice > 0 {
		mins := int(st.TotalPractice.Minutes())
		lines = append(lines, fmt.Sprintf("%-12s %dm", "Time spent", mins))
	}
	if st.LastPracticeAt != nil {
		lines = append(lines, fmt.Sprintf("%-12s %s", "Last seen",
			st.LastPracticeAt.Format("Jan 02, 2006")))
	}

	content := strings.Join(lines, "\n")
	block := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 3).
		Render(content)

	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}
