package cycle

import (
	"time"

	"github.com/aidosq/sozdyq/internal/quizgen"
	"github.com/aidosq/sozdyq/internal/vocab"
)

// WordsPerBatch is the fixed batch size. A final partial batch is never
// started; leftover words stay in the pool for a future session.
const WordsPerBatch = 3

// Phase is a batch's position in the learning cycle.
type Phase string

const (
	PhaseOverview Phase = "overview"
	PhasePractice Phase = "practice"
	PhaseQuiz     Phase = "quiz"
	PhaseComplete Phase = "complete"
)

// PhaseKind distinguishes the two scored phases of a batch.
type PhaseKind string

const (
	KindPractice PhaseKind = "practice"
	KindQuiz     PhaseKind = "quiz"
)

// AnswerRecord stores one scored attempt, keyed by (word, phase kind).
// UserAnswer is populated for practice answers only.
type AnswerRecord struct {
	WordID     int64
	Kind       PhaseKind
	Correct    bool
	UserAnswer string
}

type answerKey struct {
	wordID int64
	kind   PhaseKind
}

// AnswerSet holds the answer records for the current batch. It is
// cleared when a new batch starts.
type AnswerSet struct {
	records map[answerKey]AnswerRecord
}

// NewAnswerSet creates an empty AnswerSet.
func NewAnswerSet() *AnswerSet {
	return &AnswerSet{records: make(map[answerKey]AnswerRecord)}
}

// Put records an attempt, replacing any prior record for the same
// word and phase kind.
func (a *AnswerSet) Put(rec AnswerRecord) {
	a.records[answerKey{rec.WordID, rec.Kind}] = rec
}

// Get returns the record for (wordID, kind) and whether one exists.
func (a *AnswerSet) Get(wordID int64, kind PhaseKind) (AnswerRecord, bool) {
	rec, ok := a.records[answerKey{wordID, kind}]
	return rec, ok
}

// Correct reports whether a correct record exists for (wordID, kind).
func (a *AnswerSet) Correct(wordID int64, kind PhaseKind) bool {
	rec, ok := a.Get(wordID, kind)
	return ok && rec.Correct
}

// Len returns the number of records.
func (a *AnswerSet) Len() int {
	return len(a.records)
}

// BatchResult is the immutable per-batch outcome appended when a batch
// completes.
type BatchResult struct {
	BatchNumber          int
	PracticeCorrectCount int
	QuizCorrectCount     int
	WordsLearned         []int64
}

// Session is the aggregate root of a learning cycle: the full sequence
// of batches from start to completion. It is owned by a single learner
// on a single device and mutated only by Controller transitions.
type Session struct {
	ID    string
	Phase Phase

	// Pool is the eligible word pool captured at init, in source order.
	Pool []vocab.Word

	// DailyGoal bounds TotalBatches at init.
	DailyGoal int

	// CurrentBatch is 1-based. TotalBatches = ceil(min(len(Pool), DailyGoal) / 3).
	CurrentBatch int
	TotalBatches int

	// CurrentWords holds exactly WordsPerBatch words while a batch is
	// active.
	CurrentWords []vocab.Word

	// PracticeSessionID is the gateway's session reference, set when
	// the practice phase starts.
	PracticeSessionID string

	// PracticeCursor indexes CurrentWords during the practice phase.
	PracticeCursor int

	// QuizQuestions are regenerated each time the batch enters quiz.
	QuizQuestions []quizgen.Question
	QuizCursor    int

	// Answers is scoped to the current batch.
	Answers *AnswerSet

	// WordShownAt records when each word was first displayed, for
	// response time measurement.
	WordShownAt map[int64]time.Time

	// BatchResults accumulates completed batch outcomes.
	BatchResults []BatchResult

	// PromotionFailures lists word IDs whose learned-status write
	// failed in the most recent batch completion.
	PromotionFailures []int64

	StartedAt     time.Time
	PracticeStart time.Time
}

// batchConsumed returns how many pool words earlier batches used.
func (s *Session) batchConsumed() int {
	return (s.CurrentBatch - 1) * WordsPerBatch
}

// remainingWords returns how many pool words are unconsumed beyond the
// current batch. The daily goal bounds TotalBatches at init; advancing
// depends only on the pool itself.
func (s *Session) remainingWords() int {
	used := s.CurrentBatch * WordsPerBatch
	if len(s.Pool) < used {
		return 0
	}
	return len(s.Pool) - used
}

// CurrentPracticeWord returns the word under the practice cursor.
func (s *Session) CurrentPracticeWord() (vocab.Word, bool) {
	if s.Phase != PhasePractice || s.PracticeCursor >= len(s.CurrentWords) {
		return vocab.Word{}, false
	}
	return s.CurrentWords[s.PracticeCursor], true
}

// CurrentQuizQuestion returns the question under the quiz cursor.
func (s *Session) CurrentQuizQuestion() (quizgen.Question, bool) {
	if s.Phase != PhaseQuiz || s.QuizCursor >= len(s.QuizQuestions) {
		return quizgen.Question{}, false
	}
	return s.QuizQuestions[s.QuizCursor], true
}
