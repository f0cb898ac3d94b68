package cycle

import "testing"

func TestSummarize_Empty(t *testing.T) {
	sum := Summarize(nil)
	if sum.BatchesCompleted != 0 || sum.TotalWordsLearned != 0 {
		t.Errorf("empty summary = %+v", sum)
	}
	if sum.PracticeAccuracy != 0 || sum.QuizAccuracy != 0 {
		t.Errorf("empty accuracies = %v/%v, want 0/0", sum.PracticeAccuracy, sum.QuizAccuracy)
	}
}

func TestSummarize_Totals(t *testing.T) {
	results := []BatchResult{
		{BatchNumber: 1, PracticeCorrectCount: 3, QuizCorrectCount: 3, WordsLearned: []int64{1, 2, 3}},
		{BatchNumber: 2, PracticeCorrectCount: 2, QuizCorrectCount: 1, WordsLearned: []int64{4}},
		{BatchNumber: 3, PracticeCorrectCount: 1, QuizCorrectCount: 2, WordsLearned: []int64{8}},
	}

	sum := Summarize(results)
	if sum.BatchesCompleted != 3 {
		t.Errorf("BatchesCompleted = %d, want 3", sum.BatchesCompleted)
	}
	if sum.TotalWordsLearned != 5 {
		t.Errorf("TotalWordsLearned = %d, want 5", sum.TotalWordsLearned)
	}
	// 6 of 9 practice answers, 6 of 9 quiz answers.
	if want := 100 * 6.0 / 9.0; !approxEqual(sum.PracticeAccuracy, want) {
		t.Errorf("PracticeAccuracy = %v, want %v", sum.PracticeAccuracy, want)
	}
	if want := 100 * 6.0 / 9.0; !approxEqual(sum.QuizAccuracy, want) {
		t.Errorf("QuizAccuracy = %v, want %v", sum.QuizAccuracy, want)
	}
}

func TestSummarize_AccuracyBounds(t *testing.T) {
	cases := [][]BatchResult{
		{{BatchNumber: 1}},
		{{BatchNumber: 1, PracticeCorrectCount: 3, QuizCorrectCount: 3}},
		{
			{BatchNumber: 1, PracticeCorrectCount: 0, QuizCorrectCount: 3},
			{BatchNumber: 2, PracticeCorrectCount: 3, QuizCorrectCount: 0},
		},
	}

	for i, results := range cases {
		sum := Summarize(results)
		for _, acc := range []float64{sum.PracticeAccuracy, sum.QuizAccuracy} {
			if acc < 0 || acc > 100 {
				t.Errorf("case %d: accuracy %v out of [0,100]", i, acc)
			}
		}
	}
}

func approxEqual(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
