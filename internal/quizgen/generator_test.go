package quizgen

import (
	"testing"

	"github.com/aidosq/sozdyq/internal/vocab"
)

// noShuffle keeps options in insertion order: correct answer first.
func noShuffle(_ int, _ func(i, j int)) {}

// reverseShuffle reverses the slice, pushing the correct answer last.
func reverseShuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func genBatch() []vocab.Word {
	return []vocab.Word{
		{ID: 1, Headword: "ауыл", Translation: "village"},
		{ID: 2, Headword: "су", Translation: "water"},
		{ID: 3, Headword: "нан", Translation: "bread"},
	}
}

func TestGenerate_OptionIntegrity(t *testing.T) {
	g := New()
	questions, err := g.Generate(genBatch())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(questions) != 3 {
		t.Fatalf("len(questions) = %d, want 3", len(questions))
	}

	for _, q := range questions {
		if len(q.Options) != OptionCount {
			t.Errorf("word %d: %d options, want %d", q.WordID, len(q.Options), OptionCount)
		}
		if q.Options[q.CorrectIndex] != q.CorrectAnswer {
			t.Errorf("word %d: options[%d] = %q, want %q",
				q.WordID, q.CorrectIndex, q.Options[q.CorrectIndex], q.CorrectAnswer)
		}
		seen := make(map[string]bool)
		for _, opt := range q.Options {
			key := vocab.NormalizeTerm(opt)
			if seen[key] {
				t.Errorf("word %d: duplicate option %q", q.WordID, opt)
			}
			seen[key] = true
		}
	}
}

func TestGenerate_PromptAndDistractors(t *testing.T) {
	g := New(WithShuffle(noShuffle))
	questions, err := g.Generate(genBatch())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	q := questions[0]
	if q.Prompt != "What does 'ауыл' mean?" {
		t.Errorf("Prompt = %q", q.Prompt)
	}
	// Unshuffled: correct answer, then the two batch distractors, then
	// one fallback word.
	if q.CorrectIndex != 0 {
		t.Errorf("CorrectIndex = %d, want 0 with no shuffle", q.CorrectIndex)
	}
	if q.Options[1] != "water" || q.Options[2] != "bread" {
		t.Errorf("batch distractors not preferred: %v", q.Options)
	}
}

func TestGenerate_CorrectIndexFollowsShuffle(t *testing.T) {
	g := New(WithShuffle(reverseShuffle))
	questions, err := g.Generate(genBatch())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, q := range questions {
		if q.CorrectIndex != OptionCount-1 {
			t.Errorf("word %d: CorrectIndex = %d, want %d after reverse shuffle",
				q.WordID, q.CorrectIndex, OptionCount-1)
		}
		if q.Options[q.CorrectIndex] != q.CorrectAnswer {
			t.Errorf("word %d: correct index lost after shuffle", q.WordID)
		}
	}
}

func TestGenerate_FallbackOnDuplicateTranslations(t *testing.T) {
	// Both other words share the target's translation: all three
	// distractors must come from the fallback pool.
	batch := []vocab.Word{
		{ID: 1, Headword: "үй", Translation: "house"},
		{ID: 2, Headword: "там", Translation: "house"},
		{ID: 3, Headword: "шаңырақ", Translation: "house"},
	}
	g := New(WithShuffle(noShuffle))
	questions, err := g.Generate(batch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, q := range questions {
		houses := 0
		for _, opt := range q.Options {
			if opt == "house" {
				houses++
			}
		}
		if houses != 1 {
			t.Errorf("word %d: %d options equal the correct answer, want 1", q.WordID, houses)
		}
	}
}

func TestGenerate_FallbackSkipsCorrectAnswer(t *testing.T) {
	// The target's translation appears in the fallback pool; it must
	// not be drawn as a distractor.
	batch := []vocab.Word{
		{ID: 1, Headword: "нан", Translation: "bread"},
		{ID: 2, Headword: "н1", Translation: "bread"},
		{ID: 3, Headword: "н2", Translation: "bread"},
	}
	g := New(WithShuffle(noShuffle), WithFallback([]string{"bread", "Bread", "salt", "milk", "tea"}))
	questions, err := g.Generate(batch)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, opt := range questions[0].Options[1:] {
		if vocab.SameTerm(opt, "bread") {
			t.Errorf("correct answer drawn as distractor: %v", questions[0].Options)
		}
	}
}

func TestGenerate_FailsWithoutEnoughOptions(t *testing.T) {
	batch := []vocab.Word{
		{ID: 1, Headword: "a", Translation: "same"},
		{ID: 2, Headword: "b", Translation: "same"},
		{ID: 3, Headword: "c", Translation: "same"},
	}
	g := New(WithFallback([]string{"same", "other"}))
	_, err := g.Generate(batch)
	genErr, ok := err.(*GenerationError)
	if !ok {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	if genErr.Have >= OptionCount {
		t.Errorf("Have = %d, should be under %d", genErr.Have, OptionCount)
	}
}

func TestGenerate_CorrectIndexDistribution(t *testing.T) {
	// With the real shuffle the correct index should land on every
	// position over many runs. Rough spread check, not uniformity.
	g := New()
	counts := make(map[int]int)
	for i := 0; i < 400; i++ {
		questions, err := g.Generate(genBatch())
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		counts[questions[0].CorrectIndex]++
	}
	for idx := 0; idx < OptionCount; idx++ {
		if counts[idx] == 0 {
			t.Errorf("correct index never landed on position %d: %v", idx, counts)
		}
	}
}
