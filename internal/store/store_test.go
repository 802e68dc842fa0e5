package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/keyz/internal/typing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "keyz.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession(id string, wpm int) typing.TypingSession {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return typing.TypingSession{
		ID:              id,
		UserID:          "u1",
		LayoutID:        "qwerty",
		StartTime:       start,
		EndTime:         start.Add(time.Minute),
		DurationSeconds: 60,
		TotalChars:      100,
		CorrectChars:    95,
		IncorrectChars:  5,
		WPM:             wpm,
		Accuracy:        95,
		Consistency:     80,
		ErrorRate:       5,
		Keystrokes: []typing.KeystrokeEvent{
			{Key: "a", Expected: "a", Correct: true, Finger: 0},
			{Key: "x", Expected: "s", Correct: false, TimeSinceLastMs: 180, Finger: 1},
		},
		Mistakes: []typing.MistakeEvent{
			{Expected: "s", Actual: "x", Position: 1, Finger: 1, Frequency: 1},
		},
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

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"typing_sessions", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSessionSaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	sessions, err := repo.List(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("list (empty): %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}

	if err := repo.Save(ctx, testSession("s1", 40)); err != nil {
		t.Fatalf("save: %v", err)
	}

	sessions, err = repo.List(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("got %d sessions, want 1", len(sessions))
	}

	got := sessions[0]
	if got.ID != "s1" || got.WPM != 40 || got.Accuracy != 95 {
		t.Errorf("session = %+v", got)
	}
	if len(got.Keystrokes) != 2 {
		t.Errorf("keystrokes round-trip: got %d, want 2", len(got.Keystrokes))
	}
	if len(got.Mistakes) != 1 || got.Mistakes[0].Actual != "x" {
		t.Errorf("mistakes round-trip: %+v", got.Mistakes)
	}
	if !got.StartTime.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("start time = %v", got.StartTime)
	}
}

func TestSessionSaveDuplicateIDFails(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	if err := repo.Save(ctx, testSession("s1", 40)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, testSession("s1", 50)); err == nil {
		t.Fatal("expected error saving duplicate session ID")
	}
}

func TestSessionListWindow(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		sess := testSession("", 30+i)
		sess.ID = string(rune('a' + i - 1))
		if err := repo.Save(ctx, sess); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Limit keeps the newest 3, returned oldest first.
	sessions, err := repo.List(ctx, "u1", 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	if sessions[0].ID != "c" || sessions[2].ID != "e" {
		t.Errorf("window order: %s..%s, want c..e", sessions[0].ID, sessions[2].ID)
	}
	if sessions[0].WPM != 33 {
		t.Errorf("oldest windowed wpm = %d, want 33", sessions[0].WPM)
	}
}

func TestSessionListScopedToUser(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	mine := testSession("s1", 40)
	theirs := testSession("s2", 40)
	theirs.UserID = "u2"
	if err := repo.Save(ctx, mine); err != nil {
		t.Fatal(err)
	}
	if err := repo.Save(ctx, theirs); err != nil {
		t.Fatal(err)
	}

	sessions, err := repo.List(ctx, "u1", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].ID != "s1" {
		t.Errorf("got %+v, want only u1's session", sessions)
	}
}

func TestSessionCountAndDeleteAll(t *testing.T) {
	s := openTestStore(t)
	repo := s.Sessions()
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		if err := repo.Save(ctx, testSession(id, 40)); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	n, err := repo.Count(ctx, "u1")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}

	deleted, err := repo.DeleteAll(ctx, "u1")
	if err != nil {
		t.Fatalf("delete all: %v", err)
	}
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	n, _ = repo.Count(ctx, "u1")
	if n != 0 {
		t.Errorf("count after delete = %d, want 0", n)
	}
}

func TestAppendLLMRequest(t *testing.T) {
	s := openTestStore(t)
	events := s.Events()
	ctx := context.Background()

	err := events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "word_generation",
		InputTokens:  120,
		OutputTokens: 80,
		LatencyMs:    900,
		Success:      true,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = events.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "anthropic",
		Model:        "claude-sonnet-4-5",
		Purpose:      "word_generation",
		Success:      false,
		ErrorMessage: "rate limited",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := events.RecentLLMRequests(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	// Newest first.
	if got[0].Success || got[0].ErrorMessage != "rate limited" {
		t.Errorf("newest event = %+v", got[0])
	}
	if got[1].Purpose != "word_generation" || got[1].InputTokens != 120 {
		t.Errorf("oldest event = %+v", got[1])
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}
