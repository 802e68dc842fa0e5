package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/abhisek/keyz/internal/typing"
)

// SessionRepo manages persisted typing sessions.
type SessionRepo interface {
	// Save appends a finished session. Saving the same session ID twice
	// is an error; sessions are immutable once stored.
	Save(ctx context.Context, s typing.TypingSession) error

	// List returns the user's sessions ordered oldest first, limited to
	// the most recent limit sessions (0 = unlimited).
	List(ctx context.Context, userID string, limit int) ([]typing.TypingSession, error)

	// Count returns the number of stored sessions for the user.
	Count(ctx context.Context, userID string) (int, error)

	// DeleteAll removes every session for the user and reports how many
	// rows were deleted.
	DeleteAll(ctx context.Context, userID string) (int, error)
}

type sessionRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *sessionRepo) Save(ctx context.Context, s typing.TypingSession) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	keystrokes, err := json.Marshal(s.Keystrokes)
	if err != nil {
		return fmt.Errorf("marshal keystrokes: %w", err)
	}
	mistakes, err := json.Marshal(s.Mistakes)
	if err != nil {
		return fmt.Errorf("marshal mistakes: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO typing_sessions (
		id, sequence, user_id, layout_id, lesson_id,
		start_time, end_time, duration_seconds,
		total_chars, correct_chars, incorrect_chars,
		wpm, accuracy, consistency, error_rate,
		keystrokes, mistakes
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, seqNum, s.UserID, s.LayoutID, s.LessonID,
		s.StartTime, s.EndTime, s.DurationSeconds,
		s.TotalChars, s.CorrectChars, s.IncorrectChars,
		s.WPM, s.Accuracy, s.Consistency, s.ErrorRate,
		string(keystrokes), string(mistakes),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context, userID string, limit int) ([]typing.TypingSession, error) {
	// Newest first so LIMIT keeps the most recent window; reversed below
	// to hand the analyzers chronological order.
	q := `SELECT id, user_id, layout_id, lesson_id,
		start_time, end_time, duration_seconds,
		total_chars, correct_chars, incorrect_chars,
		wpm, accuracy, consistency, error_rate,
		keystrokes, mistakes
	FROM typing_sessions WHERE user_id = ? ORDER BY sequence DESC`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []typing.TypingSession
	for rows.Next() {
		var s typing.TypingSession
		var keystrokes, mistakes string
		err := rows.Scan(
			&s.ID, &s.UserID, &s.LayoutID, &s.LessonID,
			&s.StartTime, &s.EndTime, &s.DurationSeconds,
			&s.TotalChars, &s.CorrectChars, &s.IncorrectChars,
			&s.WPM, &s.Accuracy, &s.Consistency, &s.ErrorRate,
			&keystrokes, &mistakes,
		)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(keystrokes), &s.Keystrokes); err != nil {
			return nil, fmt.Errorf("unmarshal keystrokes for %s: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(mistakes), &s.Mistakes); err != nil {
			return nil, fmt.Errorf("unmarshal mistakes for %s: %w", s.ID, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *sessionRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM typing_sessions WHERE user_id = ?`, userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return n, nil
}

func (r *sessionRepo) DeleteAll(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM typing_sessions WHERE user_id = ?`, userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}
