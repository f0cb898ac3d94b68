// Package words shows the learner's word list grouped by lifecycle
// status.
package words

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/router"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/ui/layout"
	"github.com/aidosq/sozdyq/internal/ui/theme"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// Lister supplies words by lifecycle status. *store.WordStore satisfies
// it; the remote API has no list endpoint, so API mode gets a
// placeholder instead of this screen.
type Lister interface {
	ListByStatus(ctx context.Context, status vocab.Status) ([]vocab.Word, error)
}

// tabs fixes the display order of status groups.
var tabs = []vocab.Status{
	vocab.StatusLearning,
	vocab.StatusWantToLearn,
	vocab.StatusLearned,
	vocab.StatusReview,
	vocab.StatusMastered,
}

func tabLabel(s vocab.Status) string {
	switch s {
	case vocab.StatusWantToLearn:
		return "Queued"
	case vocab.StatusLearning:
		return "Learning"
	case vocab.StatusLearned:
		return "Learned"
	case vocab.StatusMastered:
		return "Mastered"
	case vocab.StatusReview:
		return "Review"
	}
	return string(s)
}

type wordsLoadedMsg struct {
	ByStatus map[vocab.Status][]vocab.Word
	Err      error
}

// WordsScreen displays the learner's vocabulary grouped by status.
type WordsScreen struct {
	lister   Lister
	byStatus map[vocab.Status][]vocab.Word
	tab      int
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*WordsScreen)(nil)
var _ screen.KeyHintProvider = (*WordsScreen)(nil)

// New creates a new WordsScreen.
func New(lister Lister) *WordsScreen {
	return &WordsScreen{lister: lister}
}

func (s *WordsScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		byStatus := make(map[vocab.Status][]vocab.Word, len(tabs))
		for _, st := range tabs {
			words, err := s.lister.ListByStatus(ctx, st)
			if err != nil {
				return wordsLoadedMsg{Err: err}
			}
			byStatus[st] = words
		}
		return wordsLoadedMsg{ByStatus: byStatus}
	}
}

func (s *WordsScreen) Title() string {
	return "My Words"
}

func (s *WordsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Group"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *WordsScreen) current() []vocab.Word {
	return s.byStatus[tabs[s.tab]]
}

func (s *WordsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case wordsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.byStatus = msg.ByStatus
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "left", "h":
			if s.tab > 0 {
				s.tab--
				s.selected = 0
			}
			return s, nil
		case "right", "l":
			if s.tab < len(tabs)-1 {
				s.tab++
				s.selected = 0
			}
			return s, nil
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.current())-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *WordsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading words...")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.renderTabs()))
	b.WriteString("\n\n")

	words := s.current()
	if len(words) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("Nothing here yet.")))
		b.WriteString("\n")
		return b.String()
	}

	// Keep the selection visible in tall lists.
	visible := height - 6
	if visible < 3 {
		visible = 3
	}
	start := 0
	if s.selected >= visible {
		start = s.selected - visible + 1
	}
	end := min(len(words), start+visible)

	for i := start; i < end; i++ {
		w := words[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		head := w.Headword
		if w.Transliteration != "" {
			head += fmt.Sprintf(" [%s]", w.Transliteration)
		}
		line := fmt.Sprintf("%s%-28s %-24s seen %d×", prefix, head, w.Translation, w.TimesSeen)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	if end < len(words) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).
				Render(fmt.Sprintf("… %d more", len(words)-end))))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *WordsScreen) renderTabs() string {
	parts := make([]string, len(tabs))
	for i, st := range tabs {
		label := fmt.Sprintf("%s (%d)", tabLabel(st), len(s.byStatus[st]))
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if i == s.tab {
			style = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
		}
		parts[i] = style.Render(label)
	}
	return strings.Join(parts, lipgloss.NewStyle().Foreground(theme.TextDim).Render("  │  "))
}
