// Package training turns the analyzer's weak-letter and error-pattern
// views into a concrete practice plan. Generation is deterministic for a
// given session history: content comes from repetition and combination
// rules plus the injected content source, never from randomness, so
// plans can be cached by (user, layout, history) fingerprint.
package training

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/abhisek/keyz/internal/analysis"
	"github.com/abhisek/keyz/internal/typing"
)

// Difficulty-level thresholds over the letter analytics.
const (
	beginnerAccuracyBelow     = 70
	intermediateAccuracyBelow = 85
	beginnerProblemLetters    = 6
	intermediateProblemLetters = 3
)

// Priority thresholds on the focus-letter count.
const (
	highPriorityFocus   = 5
	mediumPriorityFocus = 2
)

// Generator builds adaptive training plans.
type Generator struct {
	content    ContentSource
	cfg        Config
	letterCfg  analysis.Config
	patternCfg analysis.PatternConfig
	now        func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithConfig overrides the generation limits.
func WithConfig(cfg Config) Option {
	return func(g *Generator) { g.cfg = cfg }
}

// WithAnalysisConfig overrides the letter and pattern thresholds.
func WithAnalysisConfig(letterCfg analysis.Config, patternCfg analysis.PatternConfig) Option {
	return func(g *Generator) {
		g.letterCfg = letterCfg
		g.patternCfg = patternCfg
	}
}

// WithClock overrides the plan timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// New creates a Generator with the given content source.
func New(content ContentSource, opts ...Option) *Generator {
	g := &Generator{
		content:    content,
		cfg:        DefaultConfig(),
		letterCfg:  analysis.DefaultConfig(),
		patternCfg: analysis.DefaultPatternConfig(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds a plan for the user from their session history.
// Returns nil when there is no evidence to plan from — an empty history
// is an expected steady state for new users, not an error.
func (g *Generator) Generate(userID, layoutID string, sessions []typing.TypingSession, lay analysis.Layout) *typing.TrainingPlan {
	if len(sessions) == 0 {
		return nil
	}

	letters := analysis.AnalyzeLetterPerformanceWith(sessions, g.letterCfg)
	if len(letters) == 0 {
		return nil
	}

	focus := focusLetters(letters, g.cfg.MaxFocusLetters)

	var mistakes []typing.MistakeEvent
	for _, s := range sessions {
		mistakes = append(mistakes, s.Mistakes...)
	}
	patterns := analysis.AnalyzeErrorPatternsWith(mistakes, lay, g.patternCfg)
	if len(patterns) > g.cfg.MaxErrorPatterns {
		patterns = patterns[:g.cfg.MaxErrorPatterns]
	}

	problemCount := countHigh(letters)
	difficulty := planDifficulty(averageAccuracy(letters), problemCount)

	exercises := g.buildExercises(focus, patterns, difficulty)

	total := 0
	for _, ex := range exercises {
		total += ex.EstimatedTimeMinutes
	}

	return &typing.TrainingPlan{
		UserID:                       userID,
		LayoutID:                     layoutID,
		GeneratedAt:                  g.now(),
		FocusLetters:                 focus,
		ErrorPatterns:                patterns,
		Exercises:                    exercises,
		EstimatedPracticeTimeMinutes: total,
		Difficulty:                   difficulty,
		Priority:                     planPriority(len(focus)),
	}
}

// focusLetters picks up to max high-priority letters. The analytics are
// already ranked hardest first, so order carries over.
func focusLetters(letters []typing.LetterAnalytics, max int) []string {
	var focus []string
	for _, l := range letters {
		if l.Recommendation != typing.RecommendHigh {
			continue
		}
		focus = append(focus, l.Letter)
		if len(focus) == max {
			break
		}
	}
	return focus
}

func countHigh(letters []typing.LetterAnalytics) int {
	n := 0
	for _, l := range letters {
		if l.Recommendation == typing.RecommendHigh {
			n++
		}
	}
	return n
}

func averageAccuracy(letters []typing.LetterAnalytics) float64 {
	if len(letters) == 0 {
		return 0
	}
	sum := 0.0
	for _, l := range letters {
		sum += float64(l.Accuracy)
	}
	return sum / float64(len(letters))
}

func planDifficulty(avgAccuracy float64, problemLetters int) typing.Difficulty {
	switch {
	case avgAccuracy < beginnerAccuracyBelow || problemLetters > beginnerProblemLetters:
		return typing.DifficultyBeginner
	case avgAccuracy < intermediateAccuracyBelow || problemLetters > intermediateProblemLetters:
		return typing.DifficultyIntermediate
	default:
		return typing.DifficultyAdvanced
	}
}

func planPriority(focusCount int) typing.Priority {
	switch {
	case focusCount > highPriorityFocus:
		return typing.PriorityHigh
	case focusCount > mediumPriorityFocus:
		return typing.PriorityMedium
	default:
		return typing.PriorityLow
	}
}

func (g *Generator) buildExercises(focus []string, patterns []typing.ErrorPattern, difficulty typing.Difficulty) []typing.CustomExercise {
	var out []typing.CustomExercise

	// Single-letter repetition drills, one per focus letter.
	for _, letter := range focus {
		out = append(out, g.letterDrill(letter))
	}

	// Combination drills for consecutive focus-letter pairs.
	for i := 0; i+1 < len(focus); i++ {
		out = append(out, g.pairDrill(focus[i], focus[i+1]))
	}

	// A multi-letter pattern drill once there are enough focus letters.
	if len(focus) >= 3 {
		out = append(out, g.multiLetterDrill(focus))
	}

	// Word practice over the content source.
	if ex, ok := g.wordPractice(focus); ok {
		out = append(out, ex)
	}

	// Sentences only once the basics hold.
	if difficulty != typing.DifficultyBeginner {
		if ex, ok := g.sentencePractice(focus); ok {
			out = append(out, ex)
		}
	}

	// One exercise per surfaced error pattern.
	for _, p := range patterns {
		out = append(out, g.patternExercise(p))
	}

	return out
}

func (g *Generator) letterDrill(letter string) typing.CustomExercise {
	groups := make([]string, g.cfg.DrillGroups)
	for i := range groups {
		groups[i] = strings.Repeat(letter, 3)
	}
	return typing.CustomExercise{
		ID:                   fmt.Sprintf("drill-%s", letter),
		Name:                 fmt.Sprintf("Letter drill: %s", letter),
		Description:          fmt.Sprintf("Repetition drill building accuracy on '%s'", letter),
		Type:                 typing.ExerciseLetterDrill,
		Content:              strings.Join(groups, " "),
		TargetLetters:        []string{letter},
		EstimatedTimeMinutes: 2,
		Difficulty:           3,
		Repetitions:          3,
		Criteria:             letterDrillCriteria,
	}
}

func (g *Generator) pairDrill(a, b string) typing.CustomExercise {
	// Permute the pair: joined, reversed, doubled both ways.
	groups := []string{a + b, b + a, a + a + b + b, b + b + a + a, a + b + a + b}
	return typing.CustomExercise{
		ID:                   fmt.Sprintf("drill-%s%s", a, b),
		Name:                 fmt.Sprintf("Combination drill: %s and %s", a, b),
		Description:          fmt.Sprintf("Alternation drill for the '%s'/'%s' pair", a, b),
		Type:                 typing.ExerciseLetterDrill,
		Content:              strings.Join(groups, " "),
		TargetLetters:        []string{a, b},
		EstimatedTimeMinutes: 2,
		Difficulty:           4,
		Repetitions:          3,
		Criteria:             letterDrillCriteria,
	}
}

func (g *Generator) multiLetterDrill(focus []string) typing.CustomExercise {
	forward := strings.Join(focus, "")
	reversed := reverse(forward)
	alternating := alternate(focus)
	content := strings.Join([]string{forward, reversed, alternating, forward, reversed, alternating}, " ")
	return typing.CustomExercise{
		ID:                   "drill-multi-" + forward,
		Name:                 "Multi-letter pattern drill",
		Description:          "Forward, reversed, and alternating sequences over all focus letters",
		Type:                 typing.ExerciseLetterDrill,
		Content:              content,
		TargetLetters:        append([]string(nil), focus...),
		EstimatedTimeMinutes: 3,
		Difficulty:           5,
		Repetitions:          2,
		Criteria:             letterDrillCriteria,
	}
}

func (g *Generator) wordPractice(focus []string) (typing.CustomExercise, bool) {
	words := g.content.WordsContaining(focus)
	if len(words) == 0 {
		return typing.CustomExercise{}, false
	}

	// Cycle the filtered list to reach the requested count.
	picked := make([]string, g.cfg.WordCount)
	totalLen := 0
	for i := range picked {
		w := words[i%len(words)]
		picked[i] = w
		totalLen += len(w)
	}
	avgLen := float64(totalLen) / float64(len(picked))

	return typing.CustomExercise{
		ID:                   "words-" + strings.Join(focus, ""),
		Name:                 "Word practice",
		Description:          "Common words containing the focus letters",
		Type:                 typing.ExerciseWordPractice,
		Content:              strings.Join(picked, " "),
		TargetLetters:        append([]string(nil), focus...),
		EstimatedTimeMinutes: 3,
		Difficulty:           wordDifficulty(avgLen),
		Repetitions:          2,
		Criteria:             wordPracticeCriteria,
	}, true
}

func (g *Generator) sentencePractice(focus []string) (typing.CustomExercise, bool) {
	templates := g.content.SentenceTemplates()
	if len(templates) == 0 {
		return typing.CustomExercise{}, false
	}
	picked := make([]string, g.cfg.SentenceCount)
	for i := range picked {
		picked[i] = templates[i%len(templates)]
	}
	return typing.CustomExercise{
		ID:                   "sentences",
		Name:                 "Sentence practice",
		Description:          "Full sentences at natural rhythm",
		Type:                 typing.ExerciseSentencePractice,
		Content:              strings.Join(picked, " "),
		TargetLetters:        append([]string(nil), focus...),
		EstimatedTimeMinutes: 4,
		Difficulty:           6,
		Repetitions:          1,
		Criteria:             sentencePracticeCriteria,
	}, true
}

func (g *Generator) patternExercise(p typing.ErrorPattern) typing.CustomExercise {
	occurrences := p.Frequency
	if occurrences > g.cfg.MaxPatternOccurrences {
		occurrences = g.cfg.MaxPatternOccurrences
	}
	if occurrences < 1 {
		occurrences = 1
	}

	var groups []string
	switch p.Type {
	case typing.PatternTransposition:
		// Alternate the swapped letters to retrain their order.
		if len(p.Letters) >= 2 {
			a, b := p.Letters[0], p.Letters[1]
			for range occurrences {
				groups = append(groups, a+b+a+b)
			}
		}
	default:
		// Substitution, omission, insertion: repeat the affected letter
		// three times per occurrence.
		letter := p.Letters[0]
		for range occurrences {
			groups = append(groups, strings.Repeat(letter, 3))
		}
	}

	return typing.CustomExercise{
		ID:                   "pattern-" + p.ID,
		Name:                 fmt.Sprintf("Error pattern: %s", p.Type),
		Description:          p.Description,
		Type:                 typing.ExercisePatternPractice,
		Content:              strings.Join(groups, " "),
		TargetLetters:        append([]string(nil), p.Letters...),
		EstimatedTimeMinutes: 2,
		Difficulty:           5,
		Repetitions:          2,
		Criteria:             patternPracticeCriteria,
	}
}

// wordDifficulty scores 1–10 from average word length.
func wordDifficulty(avgLen float64) int {
	d := int(math.Round(avgLen))
	if d < 1 {
		d = 1
	}
	if d > 10 {
		d = 10
	}
	return d
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// alternate interleaves the letters pairwise: [a b c] → "ababcbc"-style
// neighbour alternation, one group per adjacent pair.
func alternate(letters []string) string {
	var groups []string
	for i := 0; i+1 < len(letters); i++ {
		groups = append(groups, letters[i]+letters[i+1]+letters[i]+letters[i+1])
	}
	return strings.Join(groups, "")
}
