package vocab

import "time"

// Word is a single catalog entry as seen by the learner. The cycle engine
// treats it as read-only input; the WordSource owns the record.
type Word struct {
	// ID uniquely identifies the word within the catalog.
	ID int64

	// Headword is the Kazakh form, e.g. "ауыл".
	Headword string

	// Transliteration is the optional Latin rendering, e.g. "auyl".
	Transliteration string

	// Translation is the learner-language meaning, e.g. "village".
	Translation string

	// DifficultyLevel ranges 1 (easiest) to 5 (hardest).
	DifficultyLevel int

	// CategoryName is the display name of the word's category.
	CategoryName string

	// TimesSeen counts how often the learner has encountered the word.
	TimesSeen int

	// LastPracticedAt is nil if the word has never been practiced.
	LastPracticedAt *time.Time

	// Status is the lifecycle status at fetch time. The WordSource
	// stays the system of record; this is a point-in-time copy.
	Status Status
}

// Status represents a word's position in the learning lifecycle.
type Status string

const (
	StatusWantToLearn Status = "want_to_learn"
	StatusLearning    Status = "learning"
	StatusLearned     Status = "learned"
	StatusMastered    Status = "mastered"
	StatusReview      Status = "review"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusWantToLearn, StatusLearning, StatusLearned, StatusMastered, StatusReview:
		return true
	}
	return false
}

// Eligible reports whether a word with this status belongs in the
// learning pool. Learned and mastered words are excluded until the
// review scheduler flips them back.
func (s Status) Eligible() bool {
	switch s {
	case StatusWantToLearn, StatusLearning, StatusReview:
		return true
	}
	return false
}
