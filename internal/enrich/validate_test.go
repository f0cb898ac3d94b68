package enrich

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestValidateResponse_Enrichment(t *testing.T) {
	raw := json.RawMessage(enrichmentJSON)
	if err := validateResponse(enrichmentSchema, raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"example_sentence":"Тау биік.","mnemonic":"towering"}`)
	err := validateResponse(enrichmentSchema, raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("err = %T (%v), want ErrInvalidResponse", err, err)
	}
}

func TestValidateResponse_ExtraField(t *testing.T) {
	// additionalProperties is false: the model must not invent fields.
	raw := json.RawMessage(`{"example_sentence":"Тау биік.","sentence_translation":"The mountain is tall.","mnemonic":"towering","usage_note":"","etymology":"Turkic"}`)
	err := validateResponse(enrichmentSchema, raw)
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("err = %T (%v), want ErrInvalidResponse", err, err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	schema := &Schema{
		Name: "word-card",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"headword":   map[string]any{"type": "string"},
				"difficulty": map[string]any{"type": "integer", "minimum": 1},
				"register":   map[string]any{"type": "string", "enum": []any{"formal", "informal", "neutral"}},
			},
			"required": []any{"headword", "difficulty"},
		},
	}

	tests := []struct {
		name string
		raw  string
		ok   bool
	}{
		{"valid", `{"headword":"нан","difficulty":1,"register":"neutral"}`, true},
		{"optional omitted", `{"headword":"су","difficulty":2}`, true},
		{"difficulty as string", `{"headword":"нан","difficulty":"one"}`, false},
		{"register outside enum", `{"headword":"нан","difficulty":1,"register":"slangy"}`, false},
		{"below minimum", `{"headword":"нан","difficulty":0}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(schema, json.RawMessage(tt.raw))
			if tt.ok && err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if !tt.ok {
				var invErr *ErrInvalidResponse
				if !errors.As(err, &invErr) {
					t.Fatalf("err = %T (%v), want ErrInvalidResponse", err, err)
				}
			}
		})
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	for _, raw := range []string{`{not json}`, ``} {
		err := validateResponse(enrichmentSchema, json.RawMessage(raw))
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`{"anything":"goes"}`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("expected no error with nil schema, got: %v", err)
	}
}
