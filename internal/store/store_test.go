package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/aidosq/sozdyq/internal/cycle"
	"github.com/aidosq/sozdyq/internal/vocab"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sozdyq.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenSeedsCatalog(t *testing.T) {
	s := openTestStore(t)

	var total, withStatus int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM words`).Scan(&total); err != nil {
		t.Fatalf("count words: %v", err)
	}
	if total != len(seedCatalog) {
		t.Errorf("seeded %d words, want %d", total, len(seedCatalog))
	}
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM words WHERE status != ''`).Scan(&withStatus); err != nil {
		t.Fatalf("count statused words: %v", err)
	}
	if withStatus != 0 {
		t.Errorf("%d seeded words have a status, want all catalog-only", withStatus)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	s := openTestStore(t)
	if err := seedWords(s.DB()); err != nil {
		t.Fatalf("second seed: %v", err)
	}
	var total int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM words`).Scan(&total); err != nil {
		t.Fatalf("count words: %v", err)
	}
	if total != len(seedCatalog) {
		t.Errorf("after reseed %d words, want %d", total, len(seedCatalog))
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAddRandomWords(t *testing.T) {
	s := openTestStore(t)
	ws := s.Words()
	ctx := context.Background()

	added, err := ws.AddRandomWords(ctx, 5, 0, 0)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	if added.WordsAdded != 5 || len(added.Words) != 5 {
		t.Fatalf("added %d/%d words, want 5", added.WordsAdded, len(added.Words))
	}
	for _, w := range added.Words {
		if w.Status != vocab.StatusWantToLearn {
			t.Errorf("word %q status = %q, want want_to_learn", w.Headword, w.Status)
		}
	}

	pool, err := ws.FetchLearningPool(ctx, vocab.PoolQuery{DailyGoal: 10})
	if err != nil {
		t.Fatalf("fetch pool: %v", err)
	}
	if len(pool) != 5 {
		t.Errorf("pool has %d words, want 5", len(pool))
	}
}

func TestAddRandomWordsRespectsDifficulty(t *testing.T) {
	s := openTestStore(t)
	ws := s.Words()
	ctx := context.Background()

	added, err := ws.AddRandomWords(ctx, 3, 0, 3)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	for _, w := range added.Words {
		if w.DifficultyLevel != 3 {
			t.Errorf("word %q difficulty = %d, want 3", w.Headword, w.DifficultyLevel)
		}
	}
}

func TestFindWord(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	w, err := st.Words().Find(ctx, "нан")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if w.Translation != "bread" {
		t.Errorf("Translation = %q, want %q", w.Translation, "bread")
	}

	if _, err := st.Words().Find(ctx, "no-such-word"); err == nil {
		t.Error("expected error for unknown headword")
	}
}

func TestSetWordStatus(t *testing.T) {
	s := openTestStore(t)
	ws := s.Words()
	ctx := context.Background()

	added, err := ws.AddRandomWords(ctx, 1, 0, 0)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	id := added.Words[0].ID

	if err := ws.SetWordStatus(ctx, id, vocab.StatusLearning); err != nil {
		t.Fatalf("set status: %v", err)
	}
	// Idempotent.
	if err := ws.SetWordStatus(ctx, id, vocab.StatusLearning); err != nil {
		t.Fatalf("set status again: %v", err)
	}

	words, err := ws.ListByStatus(ctx, vocab.StatusLearning)
	if err != nil {
		t.Fatalf("list by status: %v", err)
	}
	if len(words) != 1 || words[0].ID != id {
		t.Fatalf("learning list = %v, want word %d", words, id)
	}

	if err := ws.SetWordStatus(ctx, id, "bogus"); err == nil {
		t.Error("expected error for invalid status")
	}
	if err := ws.SetWordStatus(ctx, 999999, vocab.StatusLearning); err == nil {
		t.Error("expected error for unknown word")
	}
}

func TestFetchLearningPoolOrdering(t *testing.T) {
	s := openTestStore(t)
	ws := s.Words()
	ctx := context.Background()

	added, err := ws.AddRandomWords(ctx, 4, 0, 0)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	ids := make([]int64, len(added.Words))
	for i, w := range added.Words {
		ids[i] = w.ID
	}

	// One word is due for review; it must come first.
	if err := ws.SetWordStatus(ctx, ids[3], vocab.StatusReview); err != nil {
		t.Fatalf("set review: %v", err)
	}
	// One word was practiced recently; it sorts after the untouched ones.
	if err := recordPractice(ctx, s.DB(), ids[0], time.Now()); err != nil {
		t.Fatalf("record practice: %v", err)
	}

	pool, err := ws.FetchLearningPool(ctx, vocab.PoolQuery{DailyGoal: 10})
	if err != nil {
		t.Fatalf("fetch pool: %v", err)
	}
	if len(pool) != 4 {
		t.Fatalf("pool has %d words, want 4", len(pool))
	}
	if pool[0].ID != ids[3] {
		t.Errorf("first pool word = %d, want review word %d", pool[0].ID, ids[3])
	}
	if pool[len(pool)-1].ID != ids[0] {
		t.Errorf("last pool word = %d, want recently practiced %d", pool[len(pool)-1].ID, ids[0])
	}
}

func TestFetchLearningPoolExcludesLearned(t *testing.T) {
	s := openTestStore(t)
	ws := s.Words()
	ctx := context.Background()

	added, err := ws.AddRandomWords(ctx, 3, 0, 0)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	if err := ws.SetWordStatus(ctx, added.Words[0].ID, vocab.StatusLearned); err != nil {
		t.Fatalf("set learned: %v", err)
	}

	pool, err := ws.FetchLearningPool(ctx, vocab.PoolQuery{DailyGoal: 10})
	if err != nil {
		t.Fatalf("fetch pool: %v", err)
	}
	if len(pool) != 2 {
		t.Errorf("pool has %d words, want 2", len(pool))
	}
	for _, w := range pool {
		if w.ID == added.Words[0].ID {
			t.Error("learned word appeared in pool")
		}
	}
}

func TestEventLogSessionLifecycle(t *testing.T) {
	s := openTestStore(t)
	el, err := s.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	ctx := context.Background()

	added, err := s.Words().AddRandomWords(ctx, 1, 0, 0)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	wordID := added.Words[0].ID

	id, err := el.StartPracticeSession(ctx, cycle.StartSessionInput{
		WordCount:    3,
		LanguageCode: "kk",
	})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	err = el.SubmitPracticeAnswer(ctx, id, cycle.PracticeAnswer{
		WordID:         wordID,
		WasCorrect:     true,
		UserAnswer:     "water",
		CorrectAnswer:  "water",
		ResponseTimeMs: 1200,
	})
	if err != nil {
		t.Fatalf("submit answer: %v", err)
	}

	if err := el.FinishPracticeSession(ctx, id, 45); err != nil {
		t.Fatalf("finish session: %v", err)
	}
	if err := el.FinishPracticeSession(ctx, "no-such-session", 45); err == nil {
		t.Error("expected error finishing unknown session")
	}

	// The answer bumped the word's exposure counters.
	var timesSeen int
	err = s.DB().QueryRow(`SELECT times_seen FROM words WHERE id = ?`, wordID).Scan(&timesSeen)
	if err != nil {
		t.Fatalf("read times_seen: %v", err)
	}
	if timesSeen != 1 {
		t.Errorf("times_seen = %d, want 1", timesSeen)
	}
}

func TestSequenceInterleavesRecords(t *testing.T) {
	s := openTestStore(t)
	el, err := s.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	ctx := context.Background()

	id1, err := el.StartPracticeSession(ctx, cycle.StartSessionInput{WordCount: 3, LanguageCode: "kk"})
	if err != nil {
		t.Fatalf("start session 1: %v", err)
	}
	if err := el.SubmitPracticeAnswer(ctx, id1, cycle.PracticeAnswer{WordID: 1, WasCorrect: true}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	id2, err := el.StartPracticeSession(ctx, cycle.StartSessionInput{WordCount: 3, LanguageCode: "kk"})
	if err != nil {
		t.Fatalf("start session 2: %v", err)
	}

	var seq1, seqAns, seq2 int64
	if err := s.DB().QueryRow(`SELECT sequence FROM practice_sessions WHERE id = ?`, id1).Scan(&seq1); err != nil {
		t.Fatalf("read seq1: %v", err)
	}
	if err := s.DB().QueryRow(`SELECT sequence FROM answer_events WHERE session_id = ?`, id1).Scan(&seqAns); err != nil {
		t.Fatalf("read answer seq: %v", err)
	}
	if err := s.DB().QueryRow(`SELECT sequence FROM practice_sessions WHERE id = ?`, id2).Scan(&seq2); err != nil {
		t.Fatalf("read seq2: %v", err)
	}

	if !(seq1 < seqAns && seqAns < seq2) {
		t.Errorf("sequences not interleaved in order: %d, %d, %d", seq1, seqAns, seq2)
	}
}

func TestStatsAndReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	added, err := s.Words().AddRandomWords(ctx, 2, 0, 0)
	if err != nil {
		t.Fatalf("add random words: %v", err)
	}
	if err := s.Words().SetWordStatus(ctx, added.Words[0].ID, vocab.StatusLearned); err != nil {
		t.Fatalf("set learned: %v", err)
	}

	el, err := s.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	id, err := el.StartPracticeSession(ctx, cycle.StartSessionInput{WordCount: 3, LanguageCode: "kk"})
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	answers := []bool{true, true, false}
	for i, ok := range answers {
		err := el.SubmitPracticeAnswer(ctx, id, cycle.PracticeAnswer{
			WordID:     added.Words[i%2].ID,
			WasCorrect: ok,
		})
		if err != nil {
			t.Fatalf("submit answer %d: %v", i, err)
		}
	}
	if err := el.FinishPracticeSession(ctx, id, 60); err != nil {
		t.Fatalf("finish session: %v", err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.SessionCount != 1 {
		t.Errorf("session count = %d, want 1", st.SessionCount)
	}
	if st.AnswerCount != 3 || st.CorrectCount != 2 {
		t.Errorf("answers = %d/%d correct, want 3/2", st.AnswerCount, st.CorrectCount)
	}
	if got := st.Accuracy(); got < 66 || got > 67 {
		t.Errorf("accuracy = %.1f, want ~66.7", got)
	}
	if st.WordsByStatus[vocab.StatusLearned] != 1 {
		t.Errorf("learned count = %d, want 1", st.WordsByStatus[vocab.StatusLearned])
	}
	if st.LastPracticeAt == nil {
		t.Error("expected last practice time")
	}

	if err := s.ResetProgress(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	st, err = s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats after reset: %v", err)
	}
	if st.SessionCount != 0 || st.AnswerCount != 0 || len(st.WordsByStatus) != 0 {
		t.Errorf("stats not cleared after reset: %+v", st)
	}

	// Catalog survives the reset.
	var total int
	if err := s.DB().QueryRow(`SELECT COUNT(*) FROM words`).Scan(&total); err != nil {
		t.Fatalf("count words: %v", err)
	}
	if total != len(seedCatalog) {
		t.Errorf("catalog has %d words after reset, want %d", total, len(seedCatalog))
	}
}
