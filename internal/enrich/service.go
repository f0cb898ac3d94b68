package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aidosq/sozdyq/internal/vocab"
)

// Enrichment is the generated study material for a single word.
type Enrichment struct {
	ExampleSentence     string `json:"example_sentence"`
	SentenceTranslation string `json:"sentence_translation"`
	Mnemonic            string `json:"mnemonic"`
	UsageNote           string `json:"usage_note"`
}

// enrichmentSchema constrains the LLM output for EnrichWord.
var enrichmentSchema = &Schema{
	Name:        "word-enrichment",
	Description: "Study material for one Kazakh vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"example_sentence": map[string]any{
				"type":        "string",
				"description": "A short, natural Kazakh sentence using the word",
			},
			"sentence_translation": map[string]any{
				"type":        "string",
				"description": "English translation of the example sentence",
			},
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "A one-sentence memory aid linking sound or spelling to the meaning",
			},
			"usage_note": map[string]any{
				"type":        "string",
				"description": "A brief note on register, grammar, or cultural context; empty if nothing notable",
			},
		},
		"required":             []any{"example_sentence", "sentence_translation", "mnemonic", "usage_note"},
		"additionalProperties": false,
	},
}

const enricherSystemPrompt = `You are a Kazakh language tutor helping an English-speaking learner.
Write simple, natural Kazakh suitable for a beginner. Keep every field to one sentence.`

// Enricher generates study material for vocabulary words.
type Enricher struct {
	provider Provider
	timeout  time.Duration
}

// NewEnricher creates an Enricher. Zero timeout uses the config
// default.
func NewEnricher(p Provider, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}
	return &Enricher{provider: p, timeout: timeout}
}

// EnrichWord generates an example sentence, mnemonic, and usage note
// for the given word.
func (e *Enricher) EnrichWord(ctx context.Context, w vocab.Word) (*Enrichment, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	ctx = WithPurpose(ctx, "word-enrichment")

	prompt := fmt.Sprintf(
		"Word: %s (%s)\nMeaning: %s\nDifficulty level: %d\n\nProduce the study material for this word.",
		w.Headword, w.Transliteration, w.Translation, w.DifficultyLevel)

	resp, err := e.provider.Generate(ctx, Request{
		System:    enricherSystemPrompt,
		Prompt:    prompt,
		Schema:    enrichmentSchema,
		MaxTokens: 512,
	})
	if err != nil {
		return nil, fmt.Errorf("enrich %q: %w", w.Headword, err)
	}

	var out Enrichment
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &out, nil
}
