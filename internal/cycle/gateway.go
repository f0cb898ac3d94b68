package cycle

import "context"

// StartSessionInput carries the metadata sent when a practice session
// is opened for a batch.
type StartSessionInput struct {
	WordCount    int
	CategoryID   int64
	DifficultyID int
	LanguageCode string
}

// PracticeAnswer is the remote record of a single practice attempt.
// Local scoring does not depend on it; the gateway is an audit log.
type PracticeAnswer struct {
	WordID         int64
	WasCorrect     bool
	UserAnswer     string
	CorrectAnswer  string
	ResponseTimeMs int
}

// BatchSessionGateway is the remote session lifecycle for practice
// batches. Timeouts are the implementation's responsibility; the
// controller treats a timeout like any other failure.
//
// Implementations: api.Client (remote backend) and store.EventLog
// (offline local recording).
type BatchSessionGateway interface {
	// StartPracticeSession opens a remote session and returns its ID.
	StartPracticeSession(ctx context.Context, in StartSessionInput) (sessionID string, err error)

	// SubmitPracticeAnswer logs one practice attempt.
	SubmitPracticeAnswer(ctx context.Context, sessionID string, ans PracticeAnswer) error

	// FinishPracticeSession closes the session with its total duration.
	FinishPracticeSession(ctx context.Context, sessionID string, durationSeconds int) error
}
