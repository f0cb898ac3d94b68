// Package home is the main menu: start a learning session, browse the
// word list, or check statistics.
package home

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/router"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/screens/learn"
	"github.com/aidosq/sozdyq/internal/screens/placeholder"
	"github.com/aidosq/sozdyq/internal/screens/stats"
	"github.com/aidosq/sozdyq/internal/screens/words"
	"github.com/aidosq/sozdyq/internal/ui/components"
	"github.com/aidosq/sozdyq/internal/ui/theme"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	menu          components.Menu
	learnedCount  int
	learningCount int
	reviewsDue    int
	mascotVariant MascotVariant
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen. The lister and stats provider are nil
// when running against the remote API, which has no list or stats
// endpoints; those menu entries fall back to placeholders.
func New(source vocab.WordSource, gateway cycle.BatchSessionGateway, lister words.Lister, statsProvider stats.Provider, dailyGoal int) *HomeScreen {
	// Load counts for the stats bar and mascot mood.
	var learnedCount, learningCount, reviewsDue int
	var practicedToday bool
	if statsProvider != nil {
		if st, err := statsProvider.Stats(context.Background()); err == nil {
			learnedCount = st.WordsByStatus[vocab.StatusLearned] + st.WordsByStatus[vocab.StatusMastered]
			learningCount = st.WordsByStatus[vocab.StatusLearning] + st.WordsByStatus[vocab.StatusWantToLearn]
			reviewsDue = st.WordsByStatus[vocab.StatusReview]
			if st.LastPracticeAt != nil && time.Since(*st.LastPracticeAt) < 24*time.Hour {
				practicedToday = true
			}
		}
	}

	mascotVariant := MascotIdle
	if reviewsDue >= cycle.WordsPerBatch {
		mascotVariant = MascotAlert
	} else if practicedToday {
		mascotVariant = MascotCelebrating
	}

	items := []components.MenuItem{
		{Label: "START LEARNING", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: learn.New(source, gateway, dailyGoal)}
			}
		}},
		{Label: "MY WORDS", Action: func() tea.Cmd {
			if lister == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("My Words")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: words.New(lister)}
			}
		}},
		{Label: "STATISTICS", Action: func() tea.Cmd {
			if statsProvider == nil {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: placeholder.New("Statistics")}
				}
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(statsProvider)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		menu:          components.NewMenu(items),
		learnedCount:  learnedCount,
		learningCount: learningCount,
		reviewsDue:    reviewsDue,
		mascotVariant: mascotVariant,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := height < 22 || width < 60

	var sections []string

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).Bold(true).
		Render("S Ö Z D I Q"))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).Italic(true).
		Render("Learn Kazakh, three words at a time"))

	if !compact {
		sections = append(sections, RenderMascot(h.mascotVariant))
	}

	sections = append(sections, h.renderStatsBar())
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")

	centered := make([]string, 0, len(sections))
	for _, line := range strings.Split(content, "\n") {
		centered = append(centered, lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
	}
	return "\n" + strings.Join(centered, "\n")
}

func (h *HomeScreen) renderStatsBar() string {
	parts := []string{
		fmt.Sprintf("★ %d learned", h.learnedCount),
		fmt.Sprintf("◌ %d in progress", h.learningCount),
	}
	if h.reviewsDue > 0 {
		parts = append(parts, fmt.Sprintf("! %d to review", h.reviewsDue))
	}
	bar := strings.Join(parts, "   ")
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Padding(0, 2).
		Render(bar)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
