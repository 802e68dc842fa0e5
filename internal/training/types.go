package training

import "github.com/abhisek/keyz/internal/typing"

// ContentSource supplies practice vocabulary and sentences. Implemented
// by the built-in corpus and by the optional AI-backed source; injected
// so larger corpora can be swapped in without touching the generation
// rules.
type ContentSource interface {
	// WordsContaining returns words that contain any of the given
	// letters, in a stable order.
	WordsContaining(letters []string) []string
	// SentenceTemplates returns full practice sentences.
	SentenceTemplates() []string
}

// Success criteria are a fixed part of the content-generation contract:
// golden outputs depend on these exact thresholds.
var (
	letterDrillCriteria      = typing.SuccessCriteria{MinAccuracy: 95, MinWPM: 15, MaxErrors: 2}
	wordPracticeCriteria     = typing.SuccessCriteria{MinAccuracy: 90, MinWPM: 20, MaxErrors: 3}
	sentencePracticeCriteria = typing.SuccessCriteria{MinAccuracy: 92, MinWPM: 25, MaxErrors: 5}
	patternPracticeCriteria  = typing.SuccessCriteria{MinAccuracy: 93, MinWPM: 18, MaxErrors: 3}
)

// Config holds the generation limits.
type Config struct {
	// MaxFocusLetters caps the plan's focus letters.
	MaxFocusLetters int
	// MaxErrorPatterns caps the surfaced error patterns.
	MaxErrorPatterns int
	// WordCount is how many words a word-practice exercise contains.
	WordCount int
	// SentenceCount is how many sentences a sentence exercise contains.
	SentenceCount int
	// DrillGroups is how many letter groups a single-letter drill contains.
	DrillGroups int
	// MaxPatternOccurrences bounds pattern-exercise content length.
	MaxPatternOccurrences int
}

// DefaultConfig returns the standard generation limits.
func DefaultConfig() Config {
	return Config{
		MaxFocusLetters:       8,
		MaxErrorPatterns:      5,
		WordCount:             20,
		SentenceCount:         3,
		DrillGroups:           8,
		MaxPatternOccurrences: 8,
	}
}
