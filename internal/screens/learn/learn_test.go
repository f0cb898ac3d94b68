package learn

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/screen"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// fakeSource is an in-memory vocab.WordSource.
type fakeSource struct {
	mu    sync.Mutex
	words []vocab.Word
}

func (f *fakeSource) FetchLearningPool(_ context.Context, q vocab.PoolQuery) ([]vocab.Word, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pool []vocab.Word
	for _, w := range f.words {
		if w.Status.Eligible() {
			pool = append(pool, w)
		}
		if q.DailyGoal > 0 && len(pool) == q.DailyGoal {
			break
		}
	}
	return pool, nil
}

func (f *fakeSource) SetWordStatus(_ context.Context, wordID int64, status vocab.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.words {
		if f.words[i].ID == wordID {
			f.words[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("word %d not found", wordID)
}

func (f *fakeSource) AddRandomWords(_ context.Context, count int, _ int64, _ int) (*vocab.AddedWords, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	added := &vocab.AddedWords{}
	for i := range f.words {
		if added.WordsAdded == count {
			break
		}
		if f.words[i].Status == "" {
			f.words[i].Status = vocab.StatusWantToLearn
			added.Words = append(added.Words, f.words[i])
			added.WordsAdded++
		}
	}
	return added, nil
}

// fakeGateway is an in-memory cycle.BatchSessionGateway.
type fakeGateway struct {
	mu       sync.Mutex
	started  int
	answers  []cycle.PracticeAnswer
	finished int
}

func (f *fakeGateway) StartPracticeSession(_ context.Context, _ cycle.StartSessionInput) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return fmt.Sprintf("session-%d", f.started), nil
}

func (f *fakeGateway) SubmitPracticeAnswer(_ context.Context, _ string, a cycle.PracticeAnswer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.answers = append(f.answers, a)
	return nil
}

func (f *fakeGateway) FinishPracticeSession(_ context.Context, _ string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finished++
	return nil
}

func testWords(n int, status vocab.Status) []vocab.Word {
	heads := []string{"үй", "су", "нан", "тау", "дос", "кітап", "жол", "ат", "аспан"}
	words := make([]vocab.Word, n)
	for i := range words {
		words[i] = vocab.Word{
			ID:          int64(i + 1),
			Headword:    heads[i%len(heads)],
			Translation: fmt.Sprintf("meaning-%d", i+1),
			Status:      status,
		}
	}
	return words
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// step runs Update and chases any internal messages the returned
// command produces, so tests drive the screen the way the program
// would.
func step(t *testing.T, s screen.Screen, msg tea.Msg) screen.Screen {
	t.Helper()
	scr, cmd := s.Update(msg)
	if cmd == nil {
		return scr
	}
	out := cmd()
	switch out.(type) {
	case cycleReadyMsg, wordsAddedMsg, practiceStartedMsg, answerRecordedMsg, advancedMsg:
		return step(t, scr, out)
	}
	return scr
}

func readyScreen(t *testing.T, n int) (*LearnScreen, *fakeSource, *fakeGateway) {
	t.Helper()
	src := &fakeSource{words: testWords(n, vocab.StatusLearning)}
	gw := &fakeGateway{}
	s := New(src, gw, 9)
	scr := step(t, s, s.initCycle()())
	return scr.(*LearnScreen), src, gw
}

func TestLearnScreen_InitShowsOverview(t *testing.T) {
	s, _, _ := readyScreen(t, 3)
	sess := s.ctrl.Session()
	if sess == nil || sess.Phase != cycle.PhaseOverview {
		t.Fatalf("expected overview phase after init")
	}
	view := s.View(80, 24)
	if !strings.Contains(view, "үй") {
		t.Errorf("overview missing batch word:\n%s", view)
	}
}

func TestLearnScreen_InsufficientWordsPrompt(t *testing.T) {
	src := &fakeSource{words: testWords(2, vocab.StatusLearning)}
	// Catalog-only extras the prompt can add.
	for i := 0; i < 9; i++ {
		src.words = append(src.words, vocab.Word{
			ID:          int64(100 + i),
			Headword:    fmt.Sprintf("w%d", i),
			Translation: fmt.Sprintf("m%d", i),
		})
	}
	s := New(src, &fakeGateway{}, 9)
	scr := step(t, s, s.initCycle()())
	ls := scr.(*LearnScreen)

	if ls.insufficient == nil {
		t.Fatal("expected insufficient-words prompt")
	}
	view := ls.View(80, 24)
	if !strings.Contains(view, "Not enough words") {
		t.Errorf("missing prompt text:\n%s", view)
	}

	// Accept the offer: words get added and the session derives.
	scr = step(t, ls, keyPress('a'))
	ls = scr.(*LearnScreen)
	if ls.insufficient != nil {
		t.Fatal("prompt still showing after adding words")
	}
	if sess := ls.ctrl.Session(); sess == nil || sess.Phase != cycle.PhaseOverview {
		t.Fatal("expected a derived session after adding words")
	}
}

func TestLearnScreen_EnterStartsPractice(t *testing.T) {
	s, _, gw := readyScreen(t, 3)

	scr := step(t, s, specialKey(tea.KeyEnter))
	ls := scr.(*LearnScreen)

	if sess := ls.ctrl.Session(); sess.Phase != cycle.PhasePractice {
		t.Fatalf("phase = %s, want practice", sess.Phase)
	}
	if gw.started != 1 {
		t.Errorf("gateway sessions started = %d, want 1", gw.started)
	}
}

func TestLearnScreen_PracticeAnswerFlow(t *testing.T) {
	s, _, gw := readyScreen(t, 3)
	scr := step(t, s, specialKey(tea.KeyEnter))
	ls := scr.(*LearnScreen)

	// Answer the first word correctly.
	ls.input.Model.SetValue("meaning-1")
	scr = step(t, ls, specialKey(tea.KeyEnter))
	ls = scr.(*LearnScreen)

	if !ls.showingFeedback {
		t.Fatal("expected feedback after submit")
	}
	if !ls.lastCorrect {
		t.Error("expected correct answer")
	}
	if len(gw.answers) != 1 || !gw.answers[0].WasCorrect {
		t.Errorf("gateway answers = %+v", gw.answers)
	}

	// Dismiss feedback; cursor moves to the second word.
	scr = step(t, ls, keyPress(' '))
	ls = scr.(*LearnScreen)
	if ls.showingFeedback {
		t.Fatal("feedback not dismissed")
	}
	if sess := ls.ctrl.Session(); sess.PracticeCursor != 1 {
		t.Errorf("practice cursor = %d, want 1", sess.PracticeCursor)
	}
}

func TestLearnScreen_FullBatchReachesComplete(t *testing.T) {
	s, _, gw := readyScreen(t, 3)
	scr := step(t, s, specialKey(tea.KeyEnter))
	ls := scr.(*LearnScreen)

	// Practice: answer all three words correctly.
	for i := 0; i < 3; i++ {
		sess := ls.ctrl.Session()
		word, ok := sess.CurrentPracticeWord()
		if !ok {
			t.Fatalf("no practice word at step %d (phase %s)", i, sess.Phase)
		}
		ls.input.Model.SetValue(word.Translation)
		scr = step(t, ls, specialKey(tea.KeyEnter))
		ls = scr.(*LearnScreen)
		scr = step(t, ls, keyPress(' '))
		ls = scr.(*LearnScreen)
	}

	if sess := ls.ctrl.Session(); sess.Phase != cycle.PhaseQuiz {
		t.Fatalf("phase = %s, want quiz", sess.Phase)
	}
	if gw.finished != 1 {
		t.Errorf("gateway sessions finished = %d, want 1", gw.finished)
	}

	// Quiz: pick the correct option each time.
	for i := 0; i < 3; i++ {
		sess := ls.ctrl.Session()
		q, ok := sess.CurrentQuizQuestion()
		if !ok {
			t.Fatalf("no quiz question at step %d (phase %s)", i, sess.Phase)
		}
		ls.mc.Selected = q.CorrectIndex
		scr = step(t, ls, specialKey(tea.KeyEnter))
		ls = scr.(*LearnScreen)
		if !ls.showingFeedback || !ls.lastCorrect {
			t.Fatalf("quiz step %d: feedback=%v correct=%v", i, ls.showingFeedback, ls.lastCorrect)
		}
		scr = step(t, ls, keyPress(' '))
		ls = scr.(*LearnScreen)
	}

	if sess := ls.ctrl.Session(); sess.Phase != cycle.PhaseComplete {
		t.Fatalf("phase = %s, want complete", sess.Phase)
	}

	sum := ls.ctrl.Summary()
	if sum.BatchesCompleted != 1 || sum.TotalWordsLearned != 3 {
		t.Errorf("summary = %+v", sum)
	}
}

func TestLearnScreen_QuitConfirm(t *testing.T) {
	s, _, _ := readyScreen(t, 3)
	scr := step(t, s, specialKey(tea.KeyEnter))
	ls := scr.(*LearnScreen)

	scr = step(t, ls, specialKey(tea.KeyEscape))
	ls = scr.(*LearnScreen)
	if !ls.showingQuitConfirm {
		t.Fatal("expected quit confirmation")
	}

	scr = step(t, ls, keyPress('n'))
	ls = scr.(*LearnScreen)
	if ls.showingQuitConfirm {
		t.Fatal("expected quit confirmation dismissed")
	}

	scr = step(t, ls, specialKey(tea.KeyEscape))
	ls = scr.(*LearnScreen)
	_, cmd := ls.Update(keyPress('y'))
	if cmd == nil {
		t.Error("expected a pop command after confirming quit")
	}
}

func TestLearnScreen_KeyHintsPerPhase(t *testing.T) {
	s, _, _ := readyScreen(t, 3)
	if len(s.KeyHints()) == 0 {
		t.Error("expected overview key hints")
	}
	scr := step(t, s, specialKey(tea.KeyEnter))
	ls := scr.(*LearnScreen)
	if len(ls.KeyHints()) == 0 {
		t.Error("expected practice key hints")
	}
}
