package vocab

import "context"

// PoolQuery narrows the learning pool fetched from a WordSource.
// Zero values mean "no filter".
type PoolQuery struct {
	DailyGoal    int
	CategoryID   int64
	DifficultyID int
}

// AddedWords reports the outcome of an AddRandomWords call.
type AddedWords struct {
	WordsAdded int
	Words      []Word
}

// WordSource supplies candidate words for a learner and accepts status
// updates. It is the system of record for word status; the cycle engine
// only ever writes learning (on first display) and learned (on promotion).
//
// Implementations: api.Client (remote backend) and store.WordStore (local
// SQLite catalog).
type WordSource interface {
	// FetchLearningPool returns words with an eligible status
	// (want_to_learn, learning, review), in collaborator order.
	FetchLearningPool(ctx context.Context, q PoolQuery) ([]Word, error)

	// SetWordStatus updates a word's lifecycle status. Idempotent:
	// re-setting the same status is harmless.
	SetWordStatus(ctx context.Context, wordID int64, status Status) error

	// AddRandomWords moves up to count unseen catalog words into the
	// learner's want_to_learn list.
	AddRandomWords(ctx context.Context, count int, categoryID int64, difficultyID int) (*AddedWords, error)
}
