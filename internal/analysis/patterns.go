package analysis

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/keyz/internal/typing"
)

// PatternConfig holds the mistake-classification boundaries. They are
// heuristics, kept configurable for product-level calibration rather
// than hard-coded.
type PatternConfig struct {
	// CommonLetters are the letters treated as high-frequency English
	// letters when assigning pattern difficulty.
	CommonLetters string
	// BeginnerMinFrequency is the cluster size at which an error on a
	// common letter counts as a fundamental (beginner-level) weakness.
	BeginnerMinFrequency int
	// MaxSuggestions caps the suggested exercise strings per pattern.
	MaxSuggestions int
}

// DefaultPatternConfig returns the standard classification boundaries.
func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		CommonLetters:        "etaoinshrdlu",
		BeginnerMinFrequency: 3,
		MaxSuggestions:       3,
	}
}

// AnalyzeErrorPatterns clusters mistakes by (expected, actual) pair and
// classifies each cluster. Clusters keep the order their pair first
// occurred, then sort by frequency descending (stable), so output is
// deterministic.
func AnalyzeErrorPatterns(mistakes []typing.MistakeEvent, lay Layout) []typing.ErrorPattern {
	return AnalyzeErrorPatternsWith(mistakes, lay, DefaultPatternConfig())
}

// AnalyzeErrorPatternsWith is AnalyzeErrorPatterns with explicit
// boundaries.
func AnalyzeErrorPatternsWith(mistakes []typing.MistakeEvent, lay Layout, cfg PatternConfig) []typing.ErrorPattern {
	type cluster struct {
		expected string
		actual   string
		count    int
	}

	byPair := make(map[[2]string]*cluster)
	var order []*cluster
	for _, m := range mistakes {
		n := m.Frequency
		if n <= 0 {
			n = 1
		}
		key := [2]string{m.Expected, m.Actual}
		c, ok := byPair[key]
		if !ok {
			c = &cluster{expected: m.Expected, actual: m.Actual}
			byPair[key] = c
			order = append(order, c)
		}
		c.count += n
	}

	patterns := make([]typing.ErrorPattern, 0, len(order))
	for _, c := range order {
		// Reverse-pair presence marks both clusters as transpositions.
		_, reversed := byPair[[2]string{c.actual, c.expected}]
		ptype := classify(lay, c.expected, c.actual, reversed)

		patterns = append(patterns, typing.ErrorPattern{
			ID:                 patternID(ptype, c.expected, c.actual),
			Type:               ptype,
			Letters:            patternLetters(ptype, c.expected, c.actual),
			Frequency:          c.count,
			Difficulty:         patternDifficulty(cfg, c.expected, c.count),
			Description:        describe(lay, ptype, c.expected, c.actual),
			SuggestedExercises: suggest(cfg, ptype, c.expected, c.actual),
		})
	}

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Frequency > patterns[j].Frequency
	})
	return patterns
}

// classify applies the type heuristics in priority order: missing or
// extra characters are structural (omission/insertion), a mutual pair is
// a transposition, anything else is a substitution.
func classify(lay Layout, expected, actual string, reversed bool) typing.PatternType {
	switch {
	case actual == "":
		return typing.PatternOmission
	case expected == "":
		return typing.PatternInsertion
	case reversed && lay != nil && (lay.Adjacent(expected, actual) || lay.SameFinger(expected, actual)):
		return typing.PatternTransposition
	default:
		return typing.PatternSubstitution
	}
}

// patternDifficulty grades a cluster by letter commonality and size.
// Frequent errors on common letters are fundamental weaknesses
// (beginner); errors on rare letters alone are advanced refinements.
func patternDifficulty(cfg PatternConfig, expected string, frequency int) typing.Difficulty {
	common := expected != "" && strings.Contains(cfg.CommonLetters, expected)
	switch {
	case common && frequency >= cfg.BeginnerMinFrequency:
		return typing.DifficultyBeginner
	case common || frequency >= cfg.BeginnerMinFrequency:
		return typing.DifficultyIntermediate
	default:
		return typing.DifficultyAdvanced
	}
}

// patternID is deterministic so regenerating patterns over the same
// history yields identical IDs.
func patternID(t typing.PatternType, expected, actual string) string {
	e, a := expected, actual
	if e == "" {
		e = "_"
	}
	if a == "" {
		a = "_"
	}
	return fmt.Sprintf("%s-%s-%s", t, e, a)
}

func patternLetters(t typing.PatternType, expected, actual string) []string {
	switch t {
	case typing.PatternOmission:
		return []string{expected}
	case typing.PatternInsertion:
		return []string{actual}
	default:
		return []string{expected, actual}
	}
}

func describe(lay Layout, t typing.PatternType, expected, actual string) string {
	switch t {
	case typing.PatternOmission:
		return fmt.Sprintf("Tends to skip '%s'", expected)
	case typing.PatternInsertion:
		return fmt.Sprintf("Adds stray '%s' characters", actual)
	case typing.PatternTransposition:
		return fmt.Sprintf("Swaps the order of '%s' and '%s'", expected, actual)
	default:
		if lay != nil && lay.Adjacent(expected, actual) {
			return fmt.Sprintf("Often hits '%s' instead of '%s' (adjacent keys)", actual, expected)
		}
		return fmt.Sprintf("Types '%s' instead of '%s'", actual, expected)
	}
}

func suggest(cfg PatternConfig, t typing.PatternType, expected, actual string) []string {
	var out []string
	switch t {
	case typing.PatternOmission:
		out = []string{
			fmt.Sprintf("Slow-motion words containing '%s'", expected),
			fmt.Sprintf("Repetition drill: '%s' in letter triplets", expected),
			"Read-ahead practice at reduced speed",
		}
	case typing.PatternInsertion:
		out = []string{
			fmt.Sprintf("Controlled pacing drill avoiding '%s'", actual),
			"Metronome typing at a fixed rhythm",
			"Accuracy-first sentences with no corrections",
		}
	case typing.PatternTransposition:
		out = []string{
			fmt.Sprintf("Alternation drill: '%s%s' and '%s%s' pairs", expected, actual, actual, expected),
			fmt.Sprintf("Words containing the '%s%s' sequence", expected, actual),
			"Slow bigram practice with exaggerated pauses",
		}
	default:
		out = []string{
			fmt.Sprintf("Contrast drill: '%s' vs '%s'", expected, actual),
			fmt.Sprintf("Single-letter reps of '%s'", expected),
			fmt.Sprintf("Words rich in '%s'", expected),
		}
	}
	if len(out) > cfg.MaxSuggestions {
		out = out[:cfg.MaxSuggestions]
	}
	return out
}
