package cycle

import (
	"errors"
	"fmt"
)

// ErrTransitionPending is returned when a phase transition is requested
// while a prior transition's async work has not settled. Callers should
// treat it as a no-op and retry after the pending transition resolves.
var ErrTransitionPending = errors.New("a phase transition is already in flight")

// ErrNoSession is returned when a transition is requested before Init.
var ErrNoSession = errors.New("no active learning session")

// InsufficientWordsError means fewer than WordsPerBatch eligible words
// were available at session start. Not retried automatically; the user
// is prompted to add more words.
type InsufficientWordsError struct {
	Available int
	Required  int
}

func (e *InsufficientWordsError) Error() string {
	return fmt.Sprintf("need at least %d words to start learning, have %d", e.Required, e.Available)
}

// SessionStartError means the remote practice session could not be
// opened. Recoverable by retry; the phase stays at overview.
type SessionStartError struct {
	Err error
}

func (e *SessionStartError) Error() string {
	return fmt.Sprintf("start practice session: %v", e.Err)
}

func (e *SessionStartError) Unwrap() error { return e.Err }

// AnswerSubmissionError means remote logging of an answer failed after
// its single silent retry. Non-fatal: local scoring is authoritative
// for promotion, so the session proceeds.
type AnswerSubmissionError struct {
	WordID int64
	Err    error
}

func (e *AnswerSubmissionError) Error() string {
	return fmt.Sprintf("submit answer for word %d: %v", e.WordID, e.Err)
}

func (e *AnswerSubmissionError) Unwrap() error { return e.Err }

// StatusPromotionError reports promoted words whose learned-status
// write failed. Non-fatal to session progression; the words stay
// learning server-side and are picked up by a future session.
type StatusPromotionError struct {
	WordIDs []int64
	Errs    []error
}

func (e *StatusPromotionError) Error() string {
	return fmt.Sprintf("%d word(s) could not be saved as learned", len(e.WordIDs))
}

func (e *StatusPromotionError) Unwrap() error {
	return errors.Join(e.Errs...)
}

// TransitionError is the structured result handed to the UI when a
// phase transition fails. The in-memory session is guaranteed to be in
// the pre-transition state.
type TransitionError struct {
	Phase     Phase
	Retryable bool
	Err       error
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s phase: %v", e.Phase, e.Err)
}

func (e *TransitionError) Unwrap() error { return e.Err }

// Retryable reports whether err (or anything it wraps) is worth
// offering a retry for.
func Retryable(err error) bool {
	var te *TransitionError
	if errors.As(err, &te) {
		return te.Retryable
	}
	return false
}
