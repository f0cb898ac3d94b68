package cycle

// SessionSummary is the pure reduction over a session's batch results,
// shown on the completion screen. Display only; no side effects.
type SessionSummary struct {
	BatchesCompleted  int
	TotalWordsLearned int
	PracticeAccuracy  float64 // percent, 0-100
	QuizAccuracy      float64 // percent, 0-100
}

// Summarize aggregates batch results. Accuracies are over the full
// batch count (3 answers per batch per phase) and always land in
// [0, 100].
func Summarize(results []BatchResult) SessionSummary {
	sum := SessionSummary{BatchesCompleted: len(results)}
	if len(results) == 0 {
		return sum
	}

	var practiceCorrect, quizCorrect int
	for _, r := range results {
		sum.TotalWordsLearned += len(r.WordsLearned)
		practiceCorrect += r.PracticeCorrectCount
		quizCorrect += r.QuizCorrectCount
	}

	total := float64(WordsPerBatch * len(results))
	sum.PracticeAccuracy = 100 * float64(practiceCorrect) / total
	sum.QuizAccuracy = 100 * float64(quizCorrect) / total
	return sum
}
