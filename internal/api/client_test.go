package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/vocab"
)

func TestFetchLearningPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/words/pool", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "headword": "ауыл", "translation": "village", "status": "want_to_learn", "difficulty_level": 2, "category_name": "Places"},
			{"id": 2, "headword": "су", "translation": "water", "status": "learning", "difficulty_level": 1, "category_name": "Nature"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithToken("tok"))
	words, err := c.FetchLearningPool(context.Background(), vocab.PoolQuery{DailyGoal: 10})
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "ауыл", words[0].Headword)
	assert.Equal(t, vocab.StatusWantToLearn, words[0].Status)
	assert.Equal(t, vocab.StatusLearning, words[1].Status)
}

func TestSetWordStatus(t *testing.T) {
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/v1/words/7/status", r.URL.Path)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.SetWordStatus(context.Background(), 7, vocab.StatusLearned)
	require.NoError(t, err)
	assert.Equal(t, "learned", gotBody["status"])
}

func TestSetWordStatus_RejectsInvalid(t *testing.T) {
	c := NewClient("http://unused.invalid")
	err := c.SetWordStatus(context.Background(), 7, vocab.Status("gone"))
	require.Error(t, err)
}

func TestSessionLifecycle(t *testing.T) {
	var answers, finishes int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/practice/sessions":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			assert.EqualValues(t, 3, body["word_count"])
			assert.Equal(t, "kk", body["language_code"])
			json.NewEncoder(w).Encode(map[string]string{"session_id": "s-42"})
		case "/api/v1/practice/sessions/s-42/answers":
			answers++
			w.WriteHeader(http.StatusCreated)
		case "/api/v1/practice/sessions/s-42/finish":
			finishes++
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	id, err := c.StartPracticeSession(ctx, cycle.StartSessionInput{WordCount: 3, LanguageCode: "kk"})
	require.NoError(t, err)
	assert.Equal(t, "s-42", id)

	err = c.SubmitPracticeAnswer(ctx, id, cycle.PracticeAnswer{WordID: 1, WasCorrect: true, ResponseTimeMs: 1200})
	require.NoError(t, err)
	err = c.FinishPracticeSession(ctx, id, 95)
	require.NoError(t, err)

	assert.Equal(t, 1, answers)
	assert.Equal(t, 1, finishes)
}

func TestStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pool unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchLearningPool(context.Background(), vocab.PoolQuery{})
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "pool unavailable")
}

func TestAddRandomWords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/words/random", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"words_added": 2,
			"words": []map[string]any{
				{"id": 5, "headword": "тау", "translation": "mountain", "status": "want_to_learn"},
				{"id": 6, "headword": "дос", "translation": "friend", "status": "want_to_learn"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	added, err := c.AddRandomWords(context.Background(), 2, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, added.WordsAdded)
	require.Len(t, added.Words, 2)
	assert.Equal(t, "тау", added.Words[0].Headword)
}

// Interface conformance.
var (
	_ vocab.WordSource          = (*Client)(nil)
	_ cycle.BatchSessionGateway = (*Client)(nil)
)
