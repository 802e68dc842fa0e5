// Package typing defines the data model shared by the analytics engine:
// keystroke and mistake events, sessions, derived analytics, and
// generated training content.
package typing

import "time"

// KeystrokeEvent records a single key press within a session.
// Immutable once recorded; ordered by occurrence.
type KeystrokeEvent struct {
	// Key is the character the learner actually typed.
	Key string `json:"key"`
	// Expected is the character the exercise asked for.
	Expected string `json:"expected"`
	// Correct is true when Key matches Expected.
	Correct bool `json:"correct"`
	// TimeSinceLastMs is the latency since the previous keystroke.
	// Zero for the first keystroke of a session.
	TimeSinceLastMs int `json:"time_since_last_ms"`
	// Finger is the finger index (0–9) assigned by the active layout,
	// or -1 when the layout has no mapping for the key.
	Finger int `json:"finger"`
	// TimestampMs is milliseconds since session start.
	TimestampMs int64 `json:"timestamp_ms"`
}

// MistakeEvent is derived whenever a keystroke is incorrect.
type MistakeEvent struct {
	// Expected is the character that should have been typed.
	Expected string `json:"expected"`
	// Actual is the character typed instead. Empty for omissions.
	Actual string `json:"actual"`
	// Position is the index in the exercise text where the mistake occurred.
	Position int `json:"position"`
	// Finger is the finger index assigned to the expected key, or -1.
	Finger int `json:"finger"`
	// TimestampMs is milliseconds since session start.
	TimestampMs int64 `json:"timestamp_ms"`
	// Frequency counts repeated occurrences when events are pre-aggregated.
	// A raw mistake has Frequency 1.
	Frequency int `json:"frequency"`
}

// TypingSession is one practice attempt. Mutable while live (owned by the
// session recorder), immutable once ended and handed to the store.
type TypingSession struct {
	ID              string           `json:"id"`
	UserID          string           `json:"user_id"`
	LayoutID        string           `json:"layout_id"`
	LessonID        string           `json:"lesson_id,omitempty"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"`
	DurationSeconds float64          `json:"duration_seconds"`
	TotalChars      int              `json:"total_chars"`
	CorrectChars    int              `json:"correct_chars"`
	IncorrectChars  int              `json:"incorrect_chars"`
	WPM             int              `json:"wpm"`
	Accuracy        int              `json:"accuracy"`
	Consistency     int              `json:"consistency"`
	ErrorRate       int              `json:"error_rate"`
	Keystrokes      []KeystrokeEvent `json:"keystrokes"`
	Mistakes        []MistakeEvent   `json:"mistakes"`
}

// Recommendation is the practice priority assigned to a letter.
type Recommendation string

const (
	RecommendLow    Recommendation = "low"
	RecommendMedium Recommendation = "medium"
	RecommendHigh   Recommendation = "high"
)

// LetterAnalytics is a derived per-letter view over a window of sessions.
// Never persisted; recomputed on demand.
type LetterAnalytics struct {
	Letter          string         `json:"letter"`
	TotalAttempts   int            `json:"total_attempts"`
	ErrorCount      int            `json:"error_count"`
	Accuracy        int            `json:"accuracy"`
	AverageSpeedMs  float64        `json:"average_speed_ms"`
	DifficultyScore int            `json:"difficulty_score"`
	Recommendation  Recommendation `json:"recommendation"`
}

// Hand identifies which hand a finger belongs to.
type Hand string

const (
	HandLeft  Hand = "left"
	HandRight Hand = "right"
)

// FingerAnalytics aggregates performance per finger (0–9).
type FingerAnalytics struct {
	Finger          int      `json:"finger"`
	Name            string   `json:"name"`
	Hand            Hand     `json:"hand"`
	Keys            []string `json:"keys"`
	AverageAccuracy int      `json:"average_accuracy"`
	AverageSpeedMs  float64  `json:"average_speed_ms"`
	WeakestKeys     []string `json:"weakest_keys"`
	StrongestKeys   []string `json:"strongest_keys"`
}

// PatternType classifies a recurring mistake.
type PatternType string

const (
	PatternSubstitution  PatternType = "substitution"
	PatternOmission      PatternType = "omission"
	PatternInsertion     PatternType = "insertion"
	PatternTransposition PatternType = "transposition"
)

// Difficulty is a coarse learner level.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ErrorPattern is a cluster of mistakes sharing an (expected, actual) pair,
// classified by type.
type ErrorPattern struct {
	ID                 string      `json:"id"`
	Type               PatternType `json:"type"`
	Letters            []string    `json:"letters"`
	Frequency          int         `json:"frequency"`
	Difficulty         Difficulty  `json:"difficulty"`
	Description        string      `json:"description"`
	SuggestedExercises []string    `json:"suggested_exercises"`
}

// ExerciseType is the kind of generated practice content.
type ExerciseType string

const (
	ExerciseLetterDrill      ExerciseType = "letter_drill"
	ExerciseWordPractice     ExerciseType = "word_practice"
	ExerciseSentencePractice ExerciseType = "sentence_practice"
	ExercisePatternPractice  ExerciseType = "pattern_practice"
)

// SuccessCriteria are the numeric pass thresholds for an exercise.
type SuccessCriteria struct {
	MinAccuracy int `json:"min_accuracy"`
	MinWPM      int `json:"min_wpm"`
	MaxErrors   int `json:"max_errors"`
}

// CustomExercise is generated practice content. Consumed and discarded by
// the UI after a round is attempted.
type CustomExercise struct {
	ID                   string          `json:"id"`
	Name                 string          `json:"name"`
	Description          string          `json:"description"`
	Type                 ExerciseType    `json:"type"`
	Content              string          `json:"content"`
	TargetLetters        []string        `json:"target_letters"`
	EstimatedTimeMinutes int             `json:"estimated_time_minutes"`
	// Difficulty is a 1–10 scale, independent of the plan-level level.
	Difficulty  int             `json:"difficulty"`
	Repetitions int             `json:"repetitions"`
	Criteria    SuccessCriteria `json:"success_criteria"`
}

// Priority is how urgently a plan should be practiced.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// TrainingPlan is a generated, time-boxed set of exercises targeting the
// learner's current weak letters and error patterns. Regenerated on
// demand; a new plan replaces the old one.
type TrainingPlan struct {
	UserID                       string           `json:"user_id"`
	LayoutID                     string           `json:"layout_id"`
	GeneratedAt                  time.Time        `json:"generated_at"`
	FocusLetters                 []string         `json:"focus_letters"`
	ErrorPatterns                []ErrorPattern   `json:"error_patterns"`
	Exercises                    []CustomExercise `json:"exercises"`
	EstimatedPracticeTimeMinutes int              `json:"estimated_practice_time_minutes"`
	Difficulty                   Difficulty       `json:"difficulty_level"`
	Priority                     Priority         `json:"priority"`
}
