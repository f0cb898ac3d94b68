package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/aidosq/sozdyq/internal/ui/theme"
)

// MultiChoice is the quiz answer selector. Options are numbered 1-N;
// a number key picks and submits in one stroke, arrows plus Enter
// work too. After submission the component renders itself graded,
// with the correct option and any wrong pick colored.
type MultiChoice struct {
	Question     string
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewMultiChoice creates a selector for one quiz question.
func NewMultiChoice(question string, options []string, correctIndex int) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		CorrectIndex: correctIndex,
		ChosenIndex:  -1,
	}
}

func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection. A submitted component is
// frozen until the caller replaces it for the next question.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		n := int(key[0] - '1')
		if n < len(m.Options) {
			m.Selected = n
			m.Submitted = true
			m.ChosenIndex = n
		}
	}

	return m, nil
}

// View renders the question and numbered options.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.Submitted && i == m.CorrectIndex:
			style = lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
		case m.Submitted && i == m.ChosenIndex:
			style = lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		default:
			style = lipgloss.NewStyle().Foreground(theme.Text)
		}
		s += style.Render(line) + "\n"
	}

	return s
}

// IsCorrect reports whether the submitted choice was right.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenIndex == m.CorrectIndex
}
