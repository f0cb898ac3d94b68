package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aidosq/sozdyq/internal/cycle"
)

// StartPracticeSession opens a remote practice session for a batch.
func (c *Client) StartPracticeSession(ctx context.Context, in cycle.StartSessionInput) (string, error) {
	body := map[string]any{
		"word_count":    in.WordCount,
		"language_code": in.LanguageCode,
	}
	if in.CategoryID > 0 {
		body["category_id"] = in.CategoryID
	}
	if in.DifficultyID > 0 {
		body["difficulty_id"] = in.DifficultyID
	}

	var resp struct {
		SessionID string `json:"session_id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/practice/sessions", body, &resp); err != nil {
		return "", fmt.Errorf("start practice session: %w", err)
	}
	if resp.SessionID == "" {
		return "", fmt.Errorf("start practice session: backend returned empty session id")
	}
	return resp.SessionID, nil
}

// SubmitPracticeAnswer logs one practice attempt against a session.
func (c *Client) SubmitPracticeAnswer(ctx context.Context, sessionID string, ans cycle.PracticeAnswer) error {
	path := fmt.Sprintf("/api/v1/practice/sessions/%s/answers", url.PathEscape(sessionID))
	body := map[string]any{
		"word_id":          ans.WordID,
		"was_correct":      ans.WasCorrect,
		"user_answer":      ans.UserAnswer,
		"correct_answer":   ans.CorrectAnswer,
		"response_time_ms": ans.ResponseTimeMs,
	}
	if err := c.doJSON(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("submit practice answer: %w", err)
	}
	return nil
}

// FinishPracticeSession closes a session with its total duration.
func (c *Client) FinishPracticeSession(ctx context.Context, sessionID string, durationSeconds int) error {
	path := fmt.Sprintf("/api/v1/practice/sessions/%s/finish", url.PathEscape(sessionID))
	body := map[string]any{"duration_seconds": durationSeconds}
	if err := c.doJSON(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("finish practice session: %w", err)
	}
	return nil
}
