package cycle

import "github.com/aidosq/sozdyq/internal/vocab"

// Score computes the outcome of a completed batch from its recorded
// answers. Promotion rule: a word is learned iff its practice AND quiz
// records are both correct. Pure; the Controller applies the result.
func Score(batchNumber int, words []vocab.Word, answers *AnswerSet) BatchResult {
	result := BatchResult{BatchNumber: batchNumber}
	for _, w := range words {
		practiceOK := answers.Correct(w.ID, KindPractice)
		quizOK := answers.Correct(w.ID, KindQuiz)
		if practiceOK {
			result.PracticeCorrectCount++
		}
		if quizOK {
			result.QuizCorrectCount++
		}
		if practiceOK && quizOK {
			result.WordsLearned = append(result.WordsLearned, w.ID)
		}
	}
	return result
}
