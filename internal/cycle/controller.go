package cycle

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidosq/sozdyq/internal/quizgen"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// Controller sequences a learning session through its phases. It owns
// the in-memory Session, invokes the gateway and generator, applies
// the scorer, and decides batch-to-batch progression.
//
// Transitions are all-or-nothing: on failure the session stays exactly
// where it was. A transition requested while a prior one's async work
// has not settled returns ErrTransitionPending.
type Controller struct {
	mu      sync.Mutex
	pending bool

	source   vocab.WordSource
	gateway  BatchSessionGateway
	gen      *quizgen.Generator
	langCode string
	logf     func(format string, args ...any)
	now      func() time.Time

	sess *Session
}

// Option configures a Controller.
type Option func(*Controller)

// WithGenerator overrides the quiz question generator.
func WithGenerator(g *quizgen.Generator) Option {
	return func(c *Controller) { c.gen = g }
}

// WithLanguage sets the language code sent when opening sessions.
func WithLanguage(code string) Option {
	return func(c *Controller) { c.langCode = code }
}

// WithLogger overrides where non-fatal failures are logged.
func WithLogger(logf func(format string, args ...any)) Option {
	return func(c *Controller) { c.logf = logf }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// NewController creates a Controller with no active session.
func NewController(source vocab.WordSource, gateway BatchSessionGateway, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		gateway:  gateway,
		gen:      quizgen.New(),
		langCode: "kk",
		logf:     log.Printf,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the active session, or nil before Init. The UI reads
// it between transitions; only the Controller mutates it.
func (c *Controller) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Summary aggregates the completed batches of the active session.
func (c *Controller) Summary() SessionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return SessionSummary{}
	}
	return Summarize(c.sess.BatchResults)
}

// Init derives a fresh session from the pool. The pool must contain
// only eligible-status words (the source guarantees this; ineligible
// entries are dropped defensively). Order is taken as given.
func (c *Controller) Init(ctx context.Context, pool []vocab.Word, dailyGoal int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked(ctx, pool, dailyGoal)
}

func (c *Controller) initLocked(ctx context.Context, pool []vocab.Word, dailyGoal int) error {
	eligible := pool[:0:0]
	for _, w := range pool {
		if w.Status.Eligible() {
			eligible = append(eligible, w)
		}
	}

	if len(eligible) < WordsPerBatch {
		return &InsufficientWordsError{Available: len(eligible), Required: WordsPerBatch}
	}
	if dailyGoal < WordsPerBatch {
		dailyGoal = WordsPerBatch
	}

	capped := min(len(eligible), dailyGoal)
	totalBatches := (capped + WordsPerBatch - 1) / WordsPerBatch

	now := c.now()
	c.sess = &Session{
		ID:           uuid.New().String(),
		Phase:        PhaseOverview,
		Pool:         eligible,
		DailyGoal:    dailyGoal,
		CurrentBatch: 1,
		TotalBatches: totalBatches,
		CurrentWords: eligible[0:WordsPerBatch],
		Answers:      NewAnswerSet(),
		WordShownAt:  make(map[int64]time.Time),
		StartedAt:    now,
	}

	c.markLearning(ctx, c.sess.CurrentWords)
	return nil
}

// markLearning fires off learning-status writes for any batch word
// still in want_to_learn, as soon as the batch is first shown. Best
// effort: failures are logged and never block the UI, and no guard
// exists against a later promotion racing these writes (the source's
// status writes are idempotent).
func (c *Controller) markLearning(ctx context.Context, words []vocab.Word) {
	detached := context.WithoutCancel(ctx)
	for _, w := range words {
		if w.Status != vocab.StatusWantToLearn {
			continue
		}
		go func(id int64) {
			if err := c.source.SetWordStatus(detached, id, vocab.StatusLearning); err != nil {
				c.logf("sozdyq: mark word %d learning: %v", id, err)
			}
		}(w.ID)
	}
}

// begin claims the transition guard. The returned release func must be
// called once the transition has settled.
func (c *Controller) begin() (release func(), err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending {
		return nil, ErrTransitionPending
	}
	if c.sess == nil {
		return nil, ErrNoSession
	}
	c.pending = true
	return func() {
		c.mu.Lock()
		c.pending = false
		c.mu.Unlock()
	}, nil
}

// StartPractice opens the remote practice session for the current
// batch and enters the practice phase. On failure the phase stays at
// overview and the error is retryable.
func (c *Controller) StartPractice(ctx context.Context) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	sess := c.sess
	c.mu.Unlock()
	if sess.Phase != PhaseOverview {
		return fmt.Errorf("cannot start practice from %s phase", sess.Phase)
	}

	sessionID, err := c.gateway.StartPracticeSession(ctx, StartSessionInput{
		WordCount:    WordsPerBatch,
		LanguageCode: c.langCode,
	})
	if err != nil {
		return &TransitionError{
			Phase:     PhaseOverview,
			Retryable: true,
			Err:       &SessionStartError{Err: err},
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	sess.PracticeSessionID = sessionID
	sess.Phase = PhasePractice
	sess.Answers = NewAnswerSet()
	sess.PracticeCursor = 0
	sess.PracticeStart = now
	sess.WordShownAt[sess.CurrentWords[0].ID] = now
	return nil
}

// RecordPracticeAnswer scores a typed answer against the word's
// translation (normalized exact match), stores the record, and forwards
// it to the gateway with one silent retry. A returned
// AnswerSubmissionError is non-fatal: the local record stands and the
// session proceeds.
func (c *Controller) RecordPracticeAnswer(ctx context.Context, wordID int64, userAnswer string) (correct bool, err error) {
	c.mu.Lock()
	sess := c.sess
	if sess == nil {
		c.mu.Unlock()
		return false, ErrNoSession
	}
	if sess.Phase != PhasePractice {
		c.mu.Unlock()
		return false, fmt.Errorf("cannot record practice answer in %s phase", sess.Phase)
	}

	var word *vocab.Word
	for i := range sess.CurrentWords {
		if sess.CurrentWords[i].ID == wordID {
			word = &sess.CurrentWords[i]
			break
		}
	}
	if word == nil {
		c.mu.Unlock()
		return false, fmt.Errorf("word %d is not in the current batch", wordID)
	}

	correct = vocab.SameTerm(userAnswer, word.Translation)
	sess.Answers.Put(AnswerRecord{
		WordID:     wordID,
		Kind:       KindPractice,
		Correct:    correct,
		UserAnswer: userAnswer,
	})

	shownAt, ok := sess.WordShownAt[wordID]
	if !ok {
		shownAt = sess.PracticeStart
	}
	responseMs := int(c.now().Sub(shownAt).Milliseconds())
	ans := PracticeAnswer{
		WordID:         wordID,
		WasCorrect:     correct,
		UserAnswer:     userAnswer,
		CorrectAnswer:  word.Translation,
		ResponseTimeMs: responseMs,
	}
	sessionID := sess.PracticeSessionID
	c.mu.Unlock()

	if subErr := c.submitWithRetry(ctx, sessionID, ans); subErr != nil {
		c.logf("sozdyq: %v", subErr)
		return correct, subErr
	}
	return correct, nil
}

func (c *Controller) submitWithRetry(ctx context.Context, sessionID string, ans PracticeAnswer) error {
	err := c.gateway.SubmitPracticeAnswer(ctx, sessionID, ans)
	if err == nil {
		return nil
	}
	if err = c.gateway.SubmitPracticeAnswer(ctx, sessionID, ans); err == nil {
		return nil
	}
	return &AnswerSubmissionError{WordID: ans.WordID, Err: err}
}

// AdvanceWord moves the practice cursor to the next batch word. After
// the third word has been answered, it closes the remote session and
// enters the quiz phase. A quiz generation failure is fatal to entering
// quiz for this batch (not retryable); the phase stays at practice.
func (c *Controller) AdvanceWord(ctx context.Context) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	sess := c.sess
	if sess.Phase != PhasePractice {
		c.mu.Unlock()
		return fmt.Errorf("cannot advance word in %s phase", sess.Phase)
	}
	word := sess.CurrentWords[sess.PracticeCursor]
	if _, answered := sess.Answers.Get(word.ID, KindPractice); !answered {
		c.mu.Unlock()
		return fmt.Errorf("word %q has not been answered", word.Headword)
	}

	if sess.PracticeCursor+1 < len(sess.CurrentWords) {
		sess.PracticeCursor++
		sess.WordShownAt[sess.CurrentWords[sess.PracticeCursor].ID] = c.now()
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.finishPracticeAndEnterQuiz(ctx)
}

func (c *Controller) finishPracticeAndEnterQuiz(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	sessionID := sess.PracticeSessionID
	elapsed := int(c.now().Sub(sess.PracticeStart).Seconds())
	words := sess.CurrentWords
	c.mu.Unlock()

	// Closing the remote session is audit logging; local state stays
	// authoritative, so a failure here is logged and not surfaced.
	if err := c.gateway.FinishPracticeSession(ctx, sessionID, elapsed); err != nil {
		c.logf("sozdyq: finish practice session %s: %v", sessionID, err)
	}

	questions, err := c.gen.Generate(words)
	if err != nil {
		return &TransitionError{Phase: PhasePractice, Retryable: false, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sess.QuizQuestions = questions
	sess.QuizCursor = 0
	sess.Phase = PhaseQuiz
	return nil
}

// RecordQuizAnswer scores the selected option against the current
// question and stores the record. Advancing past the question is the
// caller's job (after its feedback dwell) via AdvanceQuiz.
func (c *Controller) RecordQuizAnswer(selectedIndex int) (correct bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess := c.sess
	if sess == nil {
		return false, ErrNoSession
	}
	q, ok := sess.CurrentQuizQuestion()
	if !ok {
		return false, fmt.Errorf("no quiz question is active")
	}
	if selectedIndex < 0 || selectedIndex >= len(q.Options) {
		return false, fmt.Errorf("option index %d out of range", selectedIndex)
	}

	correct = selectedIndex == q.CorrectIndex
	sess.Answers.Put(AnswerRecord{
		WordID:  q.WordID,
		Kind:    KindQuiz,
		Correct: correct,
	})
	return correct, nil
}

// AdvanceQuiz moves to the next quiz question. After the last question
// it completes the batch: scores it, promotes dual-correct words to
// learned, appends the BatchResult, and either starts the next batch's
// overview or completes the session.
//
// A StatusPromotionError is non-fatal: the session has already
// advanced; the named words stay learning and are not retried.
func (c *Controller) AdvanceQuiz(ctx context.Context) error {
	release, err := c.begin()
	if err != nil {
		return err
	}
	defer release()

	c.mu.Lock()
	sess := c.sess
	if sess.Phase != PhaseQuiz {
		c.mu.Unlock()
		return fmt.Errorf("cannot advance quiz in %s phase", sess.Phase)
	}
	q := sess.QuizQuestions[sess.QuizCursor]
	if _, answered := sess.Answers.Get(q.WordID, KindQuiz); !answered {
		c.mu.Unlock()
		return fmt.Errorf("current quiz question has not been answered")
	}

	if sess.QuizCursor+1 < len(sess.QuizQuestions) {
		sess.QuizCursor++
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	return c.completeBatch(ctx)
}

func (c *Controller) completeBatch(ctx context.Context) error {
	c.mu.Lock()
	sess := c.sess
	result := Score(sess.CurrentBatch, sess.CurrentWords, sess.Answers)
	c.mu.Unlock()

	// Promotion writes are awaited; failures are collected and the
	// affected words simply stay learning.
	var promoErr *StatusPromotionError
	for _, id := range result.WordsLearned {
		if err := c.source.SetWordStatus(ctx, id, vocab.StatusLearned); err != nil {
			if promoErr == nil {
				promoErr = &StatusPromotionError{}
			}
			promoErr.WordIDs = append(promoErr.WordIDs, id)
			promoErr.Errs = append(promoErr.Errs, err)
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	sess.BatchResults = append(sess.BatchResults, result)
	sess.PromotionFailures = nil
	if promoErr != nil {
		sess.PromotionFailures = promoErr.WordIDs
	}

	c.advanceBatchOrFinishLocked(ctx)

	if promoErr != nil {
		return promoErr
	}
	return nil
}

// advanceBatchOrFinishLocked starts the next batch's overview when at
// least a full batch of unconsumed words remains, otherwise completes
// the whole session. Leftover words (1-2) stay in the pool for a
// future session.
func (c *Controller) advanceBatchOrFinishLocked(ctx context.Context) {
	sess := c.sess
	if sess.CurrentBatch >= sess.TotalBatches || sess.remainingWords() < WordsPerBatch {
		sess.Phase = PhaseComplete
		return
	}

	sess.CurrentBatch++
	start := sess.batchConsumed()
	sess.CurrentWords = sess.Pool[start : start+WordsPerBatch]
	sess.Answers = NewAnswerSet()
	sess.QuizQuestions = nil
	sess.QuizCursor = 0
	sess.PracticeCursor = 0
	sess.PracticeSessionID = ""
	sess.WordShownAt = make(map[int64]time.Time)
	sess.Phase = PhaseOverview

	c.markLearning(ctx, sess.CurrentWords)
}

// Reset discards the session and derives a fresh one from the latest
// pool. Used after a full session or on user-initiated restart.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return ErrTransitionPending
	}
	dailyGoal := WordsPerBatch
	if c.sess != nil {
		dailyGoal = c.sess.DailyGoal
	}
	c.sess = nil
	c.mu.Unlock()

	pool, err := c.source.FetchLearningPool(ctx, vocab.PoolQuery{DailyGoal: dailyGoal})
	if err != nil {
		return &TransitionError{Phase: PhaseComplete, Retryable: true, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked(ctx, pool, dailyGoal)
}
