// Package app assembles the Bubble Tea program: router, layout chrome,
// and the screen stack rooted at the welcome splash.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/router"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/screens/home"
	"github.com/aidosq/sozdyq/internal/screens/stats"
	"github.com/aidosq/sozdyq/internal/screens/welcome"
	"github.com/aidosq/sozdyq/internal/screens/words"
	"github.com/aidosq/sozdyq/internal/store"
	"github.com/aidosq/sozdyq/internal/ui/layout"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// Options carries the collaborators resolved by the CLI layer. Store is
// nil when running against the remote API; list and stats views then
// show placeholders.
type Options struct {
	Source    vocab.WordSource
	Gateway   cycle.BatchSessionGateway
	Store     *store.Store
	DailyGoal int
}

// learnedCountMsg refreshes the header counter after a screen pops.
type learnedCountMsg int

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	stats   stats.Provider
	learned int
	width   int
	height  int
}

// newAppModel creates a new AppModel starting at the welcome splash.
func newAppModel(opts Options) AppModel {
	// Interface fields must stay nil, not hold a typed nil pointer.
	var lister words.Lister
	var statsProvider stats.Provider
	if opts.Store != nil {
		lister = opts.Store.Words()
		statsProvider = opts.Store
	}

	homeFactory := func() screen.Screen {
		return home.New(opts.Source, opts.Gateway, lister, statsProvider, opts.DailyGoal)
	}

	m := AppModel{
		router: router.New(welcome.New(homeFactory)),
		stats:  statsProvider,
	}
	m.learned = fetchLearned(statsProvider)
	return m
}

func fetchLearned(p stats.Provider) int {
	if p == nil {
		return 0
	}
	st, err := p.Stats(context.Background())
	if err != nil {
		return 0
	}
	return st.WordsByStatus[vocab.StatusLearned] + st.WordsByStatus[vocab.StatusMastered]
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) refreshLearned() tea.Cmd {
	if m.stats == nil {
		return nil
	}
	p := m.stats
	return func() tea.Msg {
		return learnedCountMsg(fetchLearned(p))
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case learnedCountMsg:
		m.learned = int(msg)
		return m, nil

	case router.PopScreenMsg, router.ReplaceScreenMsg:
		// Coming back from a session can change the learned count.
		return m, tea.Batch(m.router.Update(msg), m.refreshLearned())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.learned, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
