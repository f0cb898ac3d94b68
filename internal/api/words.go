package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/aidosq/sozdyq/internal/vocab"
)

// wordDTO is the backend's word representation.
type wordDTO struct {
	ID              int64      `json:"id"`
	Headword        string     `json:"headword"`
	Transliteration string     `json:"transliteration,omitempty"`
	Translation     string     `json:"translation"`
	DifficultyLevel int        `json:"difficulty_level"`
	CategoryName    string     `json:"category_name"`
	TimesSeen       int        `json:"times_seen"`
	LastPracticedAt *time.Time `json:"last_practiced_at,omitempty"`
	Status          string     `json:"status"`
}

func (d wordDTO) toWord() vocab.Word {
	return vocab.Word{
		ID:              d.ID,
		Headword:        d.Headword,
		Transliteration: d.Transliteration,
		Translation:     d.Translation,
		DifficultyLevel: d.DifficultyLevel,
		CategoryName:    d.CategoryName,
		TimesSeen:       d.TimesSeen,
		LastPracticedAt: d.LastPracticedAt,
		Status:          vocab.Status(d.Status),
	}
}

// FetchLearningPool returns the learner's eligible words in backend
// order. The core does not re-sort.
func (c *Client) FetchLearningPool(ctx context.Context, q vocab.PoolQuery) ([]vocab.Word, error) {
	params := url.Values{}
	if q.DailyGoal > 0 {
		params.Set("limit", strconv.Itoa(q.DailyGoal))
	}
	if q.CategoryID > 0 {
		params.Set("category_id", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.DifficultyID > 0 {
		params.Set("difficulty_id", strconv.Itoa(q.DifficultyID))
	}

	path := "/api/v1/words/pool"
	if enc := params.Encode(); enc != "" {
		path += "?" + enc
	}

	var dtos []wordDTO
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &dtos); err != nil {
		return nil, fmt.Errorf("fetch learning pool: %w", err)
	}

	words := make([]vocab.Word, 0, len(dtos))
	for _, d := range dtos {
		words = append(words, d.toWord())
	}
	return words, nil
}

// SetWordStatus updates a word's lifecycle status. The backend treats
// repeated writes of the same status as a no-op.
func (c *Client) SetWordStatus(ctx context.Context, wordID int64, status vocab.Status) error {
	if !status.Valid() {
		return fmt.Errorf("invalid word status %q", status)
	}
	path := fmt.Sprintf("/api/v1/words/%d/status", wordID)
	body := map[string]string{"status": string(status)}
	if err := c.doJSON(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("set word %d status: %w", wordID, err)
	}
	return nil
}

// AddRandomWords asks the backend to move unseen catalog words into
// the learner's want_to_learn list.
func (c *Client) AddRandomWords(ctx context.Context, count int, categoryID int64, difficultyID int) (*vocab.AddedWords, error) {
	body := map[string]any{"count": count}
	if categoryID > 0 {
		body["category_id"] = categoryID
	}
	if difficultyID > 0 {
		body["difficulty_id"] = difficultyID
	}

	var resp struct {
		WordsAdded int       `json:"words_added"`
		Words      []wordDTO `json:"words"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/words/random", body, &resp); err != nil {
		return nil, fmt.Errorf("add random words: %w", err)
	}

	added := &vocab.AddedWords{WordsAdded: resp.WordsAdded}
	for _, d := range resp.Words {
		added.Words = append(added.Words, d.toWord())
	}
	return added, nil
}
