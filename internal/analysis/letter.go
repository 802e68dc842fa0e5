// Package analysis derives per-letter and per-finger weakness views and
// recurring error patterns from a window of historical sessions. All
// analysis is pure: the same session list always produces the same
// output, with ties broken by first-appearance order.
package analysis

import (
	"math"
	"sort"

	"github.com/abhisek/keyz/internal/metrics"
	"github.com/abhisek/keyz/internal/typing"
)

// DefaultHistoryWindow is how many recent sessions analysis usually runs
// over. Callers pass the window they loaded; this is the suggested limit.
const DefaultHistoryWindow = 100

// Config holds the letter-analysis thresholds.
type Config struct {
	// HighAccuracyBelow: accuracy under this ⇒ high practice priority.
	HighAccuracyBelow int
	// LowAccuracyAtLeast: accuracy at or above this ⇒ low priority.
	LowAccuracyAtLeast int
	// SlowFactor: average latency above SlowFactor × the cross-letter
	// average also forces high priority.
	SlowFactor float64
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		HighAccuracyBelow:  80,
		LowAccuracyAtLeast: 95,
		SlowFactor:         1.5,
	}
}

// AnalyzeLetterPerformance aggregates keystrokes across sessions per
// target letter and ranks letters hardest-first by difficulty score.
func AnalyzeLetterPerformance(sessions []typing.TypingSession) []typing.LetterAnalytics {
	return AnalyzeLetterPerformanceWith(sessions, DefaultConfig())
}

// AnalyzeLetterPerformanceWith is AnalyzeLetterPerformance with explicit
// thresholds.
func AnalyzeLetterPerformanceWith(sessions []typing.TypingSession, cfg Config) []typing.LetterAnalytics {
	type agg struct {
		letter     string
		attempts   int
		errors     int
		latencySum int
		latencyN   int
	}

	byLetter := make(map[string]*agg)
	var order []*agg
	for _, s := range sessions {
		for _, k := range s.Keystrokes {
			if k.Expected == "" {
				continue
			}
			a, ok := byLetter[k.Expected]
			if !ok {
				a = &agg{letter: k.Expected}
				byLetter[k.Expected] = a
				order = append(order, a)
			}
			a.attempts++
			if !k.Correct {
				a.errors++
			}
			if k.TimeSinceLastMs > 0 {
				a.latencySum += k.TimeSinceLastMs
				a.latencyN++
			}
		}
	}
	if len(order) == 0 {
		return nil
	}

	// Cross-letter average latency, for the slow-letter threshold.
	crossSum, crossN := 0.0, 0
	avgSpeed := make(map[string]float64, len(order))
	for _, a := range order {
		if a.latencyN > 0 {
			avg := float64(a.latencySum) / float64(a.latencyN)
			avgSpeed[a.letter] = avg
			crossSum += avg
			crossN++
		}
	}
	crossAvg := 0.0
	if crossN > 0 {
		crossAvg = crossSum / float64(crossN)
	}

	out := make([]typing.LetterAnalytics, 0, len(order))
	for _, a := range order {
		accuracy := metrics.Accuracy(a.attempts-a.errors, a.attempts)
		speed := avgSpeed[a.letter]
		out = append(out, typing.LetterAnalytics{
			Letter:          a.letter,
			TotalAttempts:   a.attempts,
			ErrorCount:      a.errors,
			Accuracy:        accuracy,
			AverageSpeedMs:  speed,
			DifficultyScore: difficultyScore(accuracy, speed, crossAvg),
			Recommendation:  recommendation(cfg, accuracy, speed, crossAvg),
		})
	}

	// Hardest letters first; equal scores keep first-appearance order.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DifficultyScore > out[j].DifficultyScore
	})
	return out
}

// difficultyScore is monotonic in low accuracy and high latency:
// 60% weight on the error share, 40% on latency relative to twice the
// cross-letter average (so an average-speed letter scores 50 on the
// latency axis).
func difficultyScore(accuracy int, avgMs, crossAvgMs float64) int {
	latencyScore := 0.0
	if crossAvgMs > 0 && avgMs > 0 {
		latencyScore = math.Min(100, 100*avgMs/(2*crossAvgMs))
	}
	score := 0.6*float64(100-accuracy) + 0.4*latencyScore
	return int(math.Round(math.Min(100, math.Max(0, score))))
}

func recommendation(cfg Config, accuracy int, avgMs, crossAvgMs float64) typing.Recommendation {
	slow := crossAvgMs > 0 && avgMs > cfg.SlowFactor*crossAvgMs
	switch {
	case accuracy < cfg.HighAccuracyBelow || slow:
		return typing.RecommendHigh
	case accuracy >= cfg.LowAccuracyAtLeast:
		return typing.RecommendLow
	default:
		return typing.RecommendMedium
	}
}
