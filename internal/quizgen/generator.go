package quizgen

import (
	"fmt"
	"math/rand/v2"

	"github.com/aidosq/sozdyq/internal/vocab"
)

// OptionCount is the number of choices per quiz question.
const OptionCount = 4

// Question is a derived, ephemeral multiple-choice question. Questions
// are recomputed every time a batch enters the quiz phase and are never
// persisted.
type Question struct {
	WordID        int64
	Prompt        string
	CorrectAnswer string
	Options       []string
	CorrectIndex  int
}

// GenerationError indicates a quiz question could not be assembled for
// a word. This should not happen given the fallback pool and is treated
// as a defect when it does.
type GenerationError struct {
	WordID   int64
	Headword string
	Have     int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("quiz generation for %q (word %d): only %d distinct options available, need %d",
		e.Headword, e.WordID, e.Have, OptionCount)
}

// ShuffleFunc shuffles n elements using swap. Injectable so tests can
// pin option order.
type ShuffleFunc func(n int, swap func(i, j int))

// Generator builds quiz questions for a batch of words. It is pure:
// no network or state access, deterministic given a fixed ShuffleFunc.
type Generator struct {
	shuffle  ShuffleFunc
	fallback []string
}

// Option configures a Generator.
type Option func(*Generator)

// WithShuffle overrides the shuffle function.
func WithShuffle(fn ShuffleFunc) Option {
	return func(g *Generator) { g.shuffle = fn }
}

// WithFallback overrides the generic distractor pool.
func WithFallback(words []string) Option {
	return func(g *Generator) { g.fallback = words }
}

// New creates a Generator with a math/rand shuffle and the default
// fallback pool.
func New(opts ...Option) *Generator {
	g := &Generator{
		shuffle:  rand.Shuffle,
		fallback: DefaultFallback,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds one question per batch word. Each question has exactly
// OptionCount pairwise-distinct options with exactly one matching the
// correct translation. Distractors come first from the other batch
// words' translations, then from the fallback pool.
func (g *Generator) Generate(batch []vocab.Word) ([]Question, error) {
	questions := make([]Question, 0, len(batch))
	for _, w := range batch {
		q, err := g.generateOne(w, batch)
		if err != nil {
			return nil, err
		}
		questions = append(questions, *q)
	}
	return questions, nil
}

func (g *Generator) generateOne(target vocab.Word, batch []vocab.Word) (*Question, error) {
	options := []string{target.Translation}
	seen := map[string]bool{vocab.NormalizeTerm(target.Translation): true}

	add := func(candidate string) {
		if len(options) >= OptionCount {
			return
		}
		key := vocab.NormalizeTerm(candidate)
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		options = append(options, candidate)
	}

	for _, w := range batch {
		if w.ID != target.ID {
			add(w.Translation)
		}
	}
	for _, fb := range g.fallback {
		add(fb)
	}

	if len(options) < OptionCount {
		return nil, &GenerationError{
			WordID:   target.ID,
			Headword: target.Headword,
			Have:     len(options),
		}
	}

	g.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correctIndex := -1
	for i, opt := range options {
		if opt == target.Translation {
			correctIndex = i
			break
		}
	}

	return &Question{
		WordID:        target.ID,
		Prompt:        fmt.Sprintf("What does '%s' mean?", target.Headword),
		CorrectAnswer: target.Translation,
		Options:       options,
		CorrectIndex:  correctIndex,
	}, nil
}
