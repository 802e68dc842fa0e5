// Package session owns the live typing session: it stamps keystrokes as
// they arrive, derives mistake events, and finalizes the session metrics
// once the attempt ends. A Recorder handles one session at a time; the
// finished session is handed off by value so later mutation of the
// recorder cannot reach persisted data.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/keyz/internal/layout"
	"github.com/abhisek/keyz/internal/metrics"
	"github.com/abhisek/keyz/internal/typing"
)

var (
	// ErrNoActiveSession is returned when recording or ending without a
	// started session.
	ErrNoActiveSession = errors.New("session: no active session")
	// ErrSessionActive is returned by Start when a session is already live.
	ErrSessionActive = errors.New("session: a session is already active")
)

// Recorder accumulates one live session. Safe for concurrent use; the
// TUI event loop and a ticker-driven live view may both touch it.
type Recorder struct {
	mu        sync.Mutex
	now       func() time.Time
	newID     func() string
	keymap    layout.Keymap
	active    *typing.TypingSession
	startedAt time.Time
	lastKeyAt time.Time
	latencies []int
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) { r.now = now }
}

// WithIDSource overrides session ID generation.
func WithIDSource(newID func() string) Option {
	return func(r *Recorder) { r.newID = newID }
}

// NewRecorder creates a Recorder bound to a keyboard layout.
func NewRecorder(keymap layout.Keymap, opts ...Option) *Recorder {
	r := &Recorder{
		now:    time.Now,
		newID:  uuid.NewString,
		keymap: keymap,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start opens a new session for the user. LessonID may be empty for
// free practice.
func (r *Recorder) Start(userID, lessonID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active != nil {
		return ErrSessionActive
	}

	now := r.now()
	r.active = &typing.TypingSession{
		ID:        r.newID(),
		UserID:    userID,
		LayoutID:  r.keymap.ID(),
		LessonID:  lessonID,
		StartTime: now,
	}
	r.startedAt = now
	r.lastKeyAt = time.Time{}
	r.latencies = nil
	return nil
}

// Active reports whether a session is currently live.
func (r *Recorder) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil
}

// RecordKeystroke stamps one key press against the expected character at
// the given position in the exercise text. An incorrect press also
// derives a mistake event.
func (r *Recorder) RecordKeystroke(key, expected string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return ErrNoActiveSession
	}

	now := r.now()
	sinceStart := now.Sub(r.startedAt).Milliseconds()

	latency := 0
	if !r.lastKeyAt.IsZero() {
		latency = int(now.Sub(r.lastKeyAt).Milliseconds())
		r.latencies = append(r.latencies, latency)
	}
	r.lastKeyAt = now

	finger := -1
	if f, ok := r.keymap.KeyToFinger(expected); ok {
		finger = f
	}

	correct := key == expected
	r.active.Keystrokes = append(r.active.Keystrokes, typing.KeystrokeEvent{
		Key:             key,
		Expected:        expected,
		Correct:         correct,
		TimeSinceLastMs: latency,
		Finger:          finger,
		TimestampMs:     sinceStart,
	})

	r.active.TotalChars++
	if correct {
		r.active.CorrectChars++
	} else {
		r.active.IncorrectChars++
		r.active.Mistakes = append(r.active.Mistakes, typing.MistakeEvent{
			Expected:    expected,
			Actual:      key,
			Position:    position,
			Finger:      finger,
			TimestampMs: sinceStart,
			Frequency:   1,
		})
	}
	return nil
}

// RecordMistake registers a mistake that is not a plain wrong key press:
// an omission (actual empty) or an insertion (expected empty). It does
// not count as a keystroke.
func (r *Recorder) RecordMistake(expected, actual string, position int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return ErrNoActiveSession
	}

	finger := -1
	if expected != "" {
		if f, ok := r.keymap.KeyToFinger(expected); ok {
			finger = f
		}
	}

	r.active.Mistakes = append(r.active.Mistakes, typing.MistakeEvent{
		Expected:    expected,
		Actual:      actual,
		Position:    position,
		Finger:      finger,
		TimestampMs: r.now().Sub(r.startedAt).Milliseconds(),
		Frequency:   1,
	})
	return nil
}

// Snapshot is a point-in-time view of the live session's metrics.
type Snapshot struct {
	ElapsedSeconds float64
	TotalChars     int
	CorrectChars   int
	IncorrectChars int
	WPM            int
	Accuracy       int
	Consistency    int
	ErrorRate      int
}

// Live computes the current metrics without ending the session.
func (r *Recorder) Live() (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return Snapshot{}, ErrNoActiveSession
	}

	elapsed := r.now().Sub(r.startedAt).Seconds()
	s := r.active
	return Snapshot{
		ElapsedSeconds: elapsed,
		TotalChars:     s.TotalChars,
		CorrectChars:   s.CorrectChars,
		IncorrectChars: s.IncorrectChars,
		WPM:            metrics.WPM(s.TotalChars, elapsed, s.IncorrectChars),
		Accuracy:       metrics.Accuracy(s.CorrectChars, s.TotalChars),
		Consistency:    metrics.Consistency(r.latencies),
		ErrorRate:      metrics.ErrorRate(s.IncorrectChars, s.TotalChars),
	}, nil
}

// End finalizes the session: stamps the end time, computes the derived
// metrics, and returns the session by value. The recorder is ready for
// a new Start afterwards.
func (r *Recorder) End() (typing.TypingSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.active == nil {
		return typing.TypingSession{}, ErrNoActiveSession
	}

	now := r.now()
	s := r.active
	s.EndTime = now
	s.DurationSeconds = now.Sub(r.startedAt).Seconds()
	s.WPM = metrics.WPM(s.TotalChars, s.DurationSeconds, s.IncorrectChars)
	s.Accuracy = metrics.Accuracy(s.CorrectChars, s.TotalChars)
	s.Consistency = metrics.Consistency(r.latencies)
	s.ErrorRate = metrics.ErrorRate(s.IncorrectChars, s.TotalChars)

	done := *s
	r.active = nil
	r.latencies = nil
	r.lastKeyAt = time.Time{}
	return done, nil
}

// Abort discards the live session without finalizing it.
func (r *Recorder) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active = nil
	r.latencies = nil
	r.lastKeyAt = time.Time{}
}
