// Package learn hosts the batch learning cycle screen: batch overview,
// typed practice, multiple-choice quiz, and the hand-off to the
// session summary.
package learn

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/router"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/screens/summary"
	"github.com/aidosq/sozdyq/internal/ui/components"
	"github.com/aidosq/sozdyq/internal/ui/layout"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// randomWordsOnEmpty is how many catalog words the insufficient-words
// prompt offers to add: three full batches.
const randomWordsOnEmpty = 3 * cycle.WordsPerBatch

// LearnScreen implements screen.Screen for the learning cycle.
type LearnScreen struct {
	ctrl      *cycle.Controller
	source    vocab.WordSource
	dailyGoal int

	input components.TextInput
	mc    components.MultiChoice

	showingFeedback    bool
	lastCorrect        bool
	lastCorrectAnswer  string
	lastKind           cycle.PhaseKind
	showingQuitConfirm bool
	insufficient       *cycle.InsufficientWordsError

	warnMsg string
	errMsg  string
	loaded  bool
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a LearnScreen with injected collaborators.
func New(source vocab.WordSource, gateway cycle.BatchSessionGateway, dailyGoal int) *LearnScreen {
	return &LearnScreen{
		ctrl:      cycle.NewController(source, gateway),
		source:    source,
		dailyGoal: dailyGoal,
		input:     components.NewTextInput("Type the meaning...", false, 40),
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return tea.Batch(s.initCycle(), s.input.Init())
}

func (s *LearnScreen) Title() string {
	return "Learn"
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	if s.insufficient != nil {
		return []layout.KeyHint{
			{Key: "A", Description: "Add random words"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Leave"},
			{Key: "N", Description: "Keep going"},
		}
	}
	if s.showingFeedback {
		return []layout.KeyHint{
			{Key: "any key", Description: "Continue"},
		}
	}
	sess := s.ctrl.Session()
	if sess == nil {
		return nil
	}
	switch sess.Phase {
	case cycle.PhaseOverview:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start practice"},
			{Key: "Esc", Description: "Back"},
		}
	case cycle.PhaseQuiz:
		return []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
			{Key: "Esc", Description: "Leave"},
		}
	case cycle.PhaseComplete:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Summary"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave"},
		}
	}
}

// initCycle fetches the pool and derives a fresh session.
func (s *LearnScreen) initCycle() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		pool, err := s.source.FetchLearningPool(ctx, vocab.PoolQuery{DailyGoal: s.dailyGoal})
		if err != nil {
			return cycleReadyMsg{Err: err}
		}
		return cycleReadyMsg{Err: s.ctrl.Init(ctx, pool, s.dailyGoal)}
	}
}

// addRandomWords pulls fresh catalog words into the learner's list and
// retries session init.
func (s *LearnScreen) addRandomWords() tea.Cmd {
	return func() tea.Msg {
		added, err := s.source.AddRandomWords(context.Background(), randomWordsOnEmpty, 0, 0)
		if err != nil {
			return wordsAddedMsg{Err: err}
		}
		return wordsAddedMsg{Added: added.WordsAdded}
	}
}

func (s *LearnScreen) startPractice() tea.Cmd {
	return func() tea.Msg {
		return practiceStartedMsg{Err: s.ctrl.StartPractice(context.Background())}
	}
}

func (s *LearnScreen) recordPracticeAnswer(wordID int64, answer, correctAnswer string) tea.Cmd {
	return func() tea.Msg {
		correct, err := s.ctrl.RecordPracticeAnswer(context.Background(), wordID, answer)

		var subErr *cycle.AnswerSubmissionError
		if errors.As(err, &subErr) {
			// Local record stands; surface as a warning only.
			return answerRecordedMsg{Correct: correct, CorrectAnswer: correctAnswer, Kind: cycle.KindPractice, Warn: err}
		}
		if err != nil {
			return advancedMsg{Err: err}
		}
		return answerRecordedMsg{Correct: correct, CorrectAnswer: correctAnswer, Kind: cycle.KindPractice}
	}
}

func (s *LearnScreen) advanceWord() tea.Cmd {
	return func() tea.Msg {
		return advancedMsg{Err: s.ctrl.AdvanceWord(context.Background())}
	}
}

func (s *LearnScreen) advanceQuiz() tea.Cmd {
	return func() tea.Msg {
		err := s.ctrl.AdvanceQuiz(context.Background())

		var promoErr *cycle.StatusPromotionError
		if errors.As(err, &promoErr) {
			// The session already advanced; promotions retry next time
			// the words come around.
			return advancedMsg{Warn: err}
		}
		return advancedMsg{Err: err}
	}
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cycleReadyMsg:
		return s.handleReady(msg)
	case wordsAddedMsg:
		return s.handleWordsAdded(msg)
	case practiceStartedMsg:
		return s.handlePracticeStarted(msg)
	case answerRecordedMsg:
		return s.handleAnswerRecorded(msg)
	case advancedMsg:
		return s.handleAdvanced(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.inPracticeInput() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// inPracticeInput reports whether keystrokes should flow to the typed
// answer field.
func (s *LearnScreen) inPracticeInput() bool {
	if !s.loaded || s.showingFeedback || s.showingQuitConfirm || s.errMsg != "" {
		return false
	}
	sess := s.ctrl.Session()
	return sess != nil && sess.Phase == cycle.PhasePractice
}

func (s *LearnScreen) handleReady(msg cycleReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		var insufficient *cycle.InsufficientWordsError
		if errors.As(msg.Err, &insufficient) {
			s.insufficient = insufficient
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.loaded = true
	s.insufficient = nil
	return s, nil
}

func (s *LearnScreen) handleWordsAdded(msg wordsAddedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.insufficient = nil
	return s, s.initCycle()
}

func (s *LearnScreen) handlePracticeStarted(msg practiceStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, cycle.ErrTransitionPending) {
			return s, nil
		}
		if cycle.Retryable(msg.Err) {
			s.warnMsg = "Couldn't reach the practice service. Press Enter to retry."
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.warnMsg = ""
	s.input = components.NewTextInput("Type the meaning...", false, 40)
	return s, s.input.Init()
}

func (s *LearnScreen) handleAnswerRecorded(msg answerRecordedMsg) (screen.Screen, tea.Cmd) {
	s.showingFeedback = true
	s.lastCorrect = msg.Correct
	s.lastCorrectAnswer = msg.CorrectAnswer
	s.lastKind = msg.Kind
	if msg.Warn != nil {
		s.warnMsg = "Answer saved locally; sync to the server failed."
	}
	return s, nil
}

func (s *LearnScreen) handleAdvanced(msg advancedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, cycle.ErrTransitionPending) {
			return s, nil
		}
		var trans *cycle.TransitionError
		if errors.As(msg.Err, &trans) && !trans.Retryable {
			// Quiz generation failed; the batch stays in practice.
			s.warnMsg = "Couldn't build the quiz for this batch."
			return s, nil
		}
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if msg.Warn != nil {
		s.warnMsg = "Some words couldn't be promoted; they stay in learning."
	}

	sess := s.ctrl.Session()
	if sess == nil {
		return s, nil
	}
	switch sess.Phase {
	case cycle.PhasePractice:
		s.input = components.NewTextInput("Type the meaning...", false, 40)
		return s, s.input.Init()
	case cycle.PhaseQuiz:
		if q, ok := sess.CurrentQuizQuestion(); ok {
			s.mc = components.NewMultiChoice(q.Prompt, q.Options, q.CorrectIndex)
		}
	}
	return s, nil
}

func (s *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.insufficient != nil {
		switch key {
		case "a", "A":
			return s, s.addRandomWords()
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if !s.loaded {
		return s, nil
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if s.showingFeedback {
		s.showingFeedback = false
		if s.lastKind == cycle.KindQuiz {
			return s, s.advanceQuiz()
		}
		return s, s.advanceWord()
	}

	sess := s.ctrl.Session()
	if sess == nil {
		return s, nil
	}

	switch sess.Phase {
	case cycle.PhaseOverview:
		if key == "enter" {
			return s, s.startPractice()
		}

	case cycle.PhasePractice:
		switch key {
		case "esc":
			s.showingQuitConfirm = true
			return s, nil
		case "enter":
			return s.submitPracticeAnswer()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd

	case cycle.PhaseQuiz:
		return s.handleQuizKey(msg)

	case cycle.PhaseComplete:
		if key == "enter" {
			return s.pushSummary()
		}
	}

	return s, nil
}

func (s *LearnScreen) submitPracticeAnswer() (screen.Screen, tea.Cmd) {
	sess := s.ctrl.Session()
	word, ok := sess.CurrentPracticeWord()
	if !ok {
		return s, nil
	}
	answer := s.input.Value()
	if answer == "" {
		return s, nil
	}
	return s, s.recordPracticeAnswer(word.ID, answer, word.Translation)
}

func (s *LearnScreen) handleQuizKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	sess := s.ctrl.Session()
	q, ok := sess.CurrentQuizQuestion()
	if !ok {
		return s, nil
	}

	if msg.String() == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	var cmd tea.Cmd
	s.mc, cmd = s.mc.Update(msg)
	if s.mc.Submitted {
		return s.submitQuizAnswer(q.CorrectAnswer)
	}
	return s, cmd
}

func (s *LearnScreen) submitQuizAnswer(correctAnswer string) (screen.Screen, tea.Cmd) {
	correct, err := s.ctrl.RecordQuizAnswer(s.mc.ChosenIndex)
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	s.showingFeedback = true
	s.lastCorrect = correct
	s.lastCorrectAnswer = correctAnswer
	s.lastKind = cycle.KindQuiz
	return s, nil
}

func (s *LearnScreen) pushSummary() (screen.Screen, tea.Cmd) {
	sum := s.ctrl.Summary()
	sess := s.ctrl.Session()
	var failures int
	if sess != nil {
		failures = len(sess.PromotionFailures)
	}
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum, failures)}
	}
}
