package learn

import "github.com/aidosq/sozdyq/internal/cycle"

// cycleReadyMsg is sent when the word pool has been fetched and the
// session derived.
type cycleReadyMsg struct {
	Err error
}

// wordsAddedMsg is sent after random catalog words were added to the
// learner's list from the insufficient-words prompt.
type wordsAddedMsg struct {
	Added int
	Err   error
}

// practiceStartedMsg is sent when the practice phase transition
// finishes.
type practiceStartedMsg struct {
	Err error
}

// answerRecordedMsg is sent after a practice answer was scored and
// forwarded to the gateway.
type answerRecordedMsg struct {
	Correct       bool
	CorrectAnswer string
	Kind          cycle.PhaseKind
	Warn          error // non-fatal: local scoring succeeded, submission did not
}

// advancedMsg is sent after AdvanceWord or AdvanceQuiz. The phase may
// have changed underneath it.
type advancedMsg struct {
	Err  error
	Warn error // non-fatal: promotion failures
}
