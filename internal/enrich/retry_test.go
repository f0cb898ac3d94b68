package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func enrichRequest() Request {
	return Request{
		System:    enricherSystemPrompt,
		Prompt:    "Word: тау (tau)\nMeaning: mountain",
		Schema:    enrichmentSchema,
		MaxTokens: 512,
	}
}

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(enrichmentJSON)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), enrichRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != enrichmentJSON {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1", mock.CallCount())
	}
}

func TestRetry_TransientOutageThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(enrichmentJSON)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), enrichRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != enrichmentJSON {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), enrichRequest())
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %T, want ErrProviderUnavailable", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("calls = %d, want 3", mock.CallCount())
	}
}

func TestRetry_TruncationNotRetried(t *testing.T) {
	// Retrying an identical request that hit the token limit would
	// just truncate again.
	mock := NewMockProvider(
		MockResponse{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{`)}},
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), enrichRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("err = %T, want ErrMaxTokensExceeded", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("calls = %d, want 1 (no retry)", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := MockResponse{Err: &ErrInvalidResponse{
		Content: json.RawMessage(`{"example_sentence":"Тау биік."}`),
		Err:     errors.New("missing required fields"),
	}}
	mock := NewMockProvider(bad, bad,
		MockResponse{Content: json.RawMessage(enrichmentJSON)}, // never reached
	)
	p := WithRetry(mock, retryConfig())

	_, err := p.Generate(context.Background(), enrichRequest())
	if err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2 (one retry, then stop)", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(enrichmentJSON)},
	)
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Generate(ctx, enrichRequest()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 1 * time.Millisecond, Err: errors.New("429")}},
		MockResponse{Content: json.RawMessage(enrichmentJSON)},
	)
	p := WithRetry(mock, retryConfig())

	resp, err := p.Generate(context.Background(), enrichRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != enrichmentJSON {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("calls = %d, want 2", mock.CallCount())
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig())
	if p.ModelID() != "mock" {
		t.Fatalf("model = %q, want mock", p.ModelID())
	}
}
