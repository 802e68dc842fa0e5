// Package metrics computes speed, accuracy, and consistency scores for
// typing sessions. All functions are pure and total: degenerate inputs
// (zero elapsed time, empty samples) return a documented neutral value
// instead of failing, since these run on the per-keystroke UI path.
package metrics

import (
	"math"

	"github.com/abhisek/keyz/internal/typing"
)

// CharsPerWord is the standard typing convention: one word = 5 characters.
const CharsPerWord = 5.0

// ExperienceCap is the session count at which the experience component of
// the confidence score saturates.
const ExperienceCap = 100

// WPM computes words per minute from character counts and elapsed time.
// Errors reduce the numerator rather than the denominator, so slow wrong
// typing is penalized on speed as well. Returns 0 when elapsedSeconds <= 0.
func WPM(totalChars int, elapsedSeconds float64, errorChars int) int {
	if elapsedSeconds <= 0 {
		return 0
	}
	netChars := totalChars - errorChars
	if netChars < 0 {
		netChars = 0
	}
	words := float64(netChars) / CharsPerWord
	minutes := elapsedSeconds / 60.0
	return int(math.Round(words / minutes))
}

// Accuracy returns the percentage of correct characters, 0–100.
// Returns 0 when total <= 0.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return clampScore(math.Round(100 * float64(correct) / float64(total)))
}

// Consistency maps the coefficient of variation of inter-keystroke
// latencies to a 0–100 rhythm-stability score. Fewer than 2 samples is
// maximal consistency (there is no variance to penalize).
func Consistency(interKeyMs []int) int {
	if len(interKeyMs) < 2 {
		return 100
	}
	mean := 0.0
	for _, v := range interKeyMs {
		mean += float64(v)
	}
	mean /= float64(len(interKeyMs))
	if mean <= 0 {
		return 100
	}

	variance := 0.0
	for _, v := range interKeyMs {
		d := float64(v) - mean
		variance += d * d
	}
	variance /= float64(len(interKeyMs))

	cv := math.Sqrt(variance) / mean
	return clampScore(math.Round(100 - 100*cv))
}

// ErrorRate returns the percentage of errored characters, 0 when total <= 0.
func ErrorRate(errors, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(errors) / float64(total)))
}

// Improvement returns the percentage change from oldValue to newValue.
// When oldValue <= 0 there is no meaningful baseline: returns 100 if
// newValue is positive (any delta counts as improvement), else 0.
func Improvement(oldValue, newValue float64) float64 {
	if oldValue <= 0 {
		if newValue > 0 {
			return 100
		}
		return 0
	}
	return 100 * (newValue - oldValue) / oldValue
}

// LearningVelocity measures WPM improvement across a time-ordered session
// history, normalized by session count. Requires at least 2 sessions;
// returns 0 otherwise.
func LearningVelocity(sessions []typing.TypingSession) float64 {
	if len(sessions) < 2 {
		return 0
	}
	mid := len(sessions) / 2
	first := averageWPM(sessions[:mid])
	second := averageWPM(sessions[mid:])
	return Improvement(first, second) / float64(len(sessions))
}

// ConfidenceScore combines accuracy, consistency, and experience into a
// single 0–100 score. Experience saturates at ExperienceCap sessions.
func ConfidenceScore(accuracy, consistency, experienceCount int) int {
	experience := math.Min(100, 100*float64(experienceCount)/float64(ExperienceCap))
	score := 0.4*float64(accuracy) + 0.3*float64(consistency) + 0.3*experience
	return clampScore(math.Round(score))
}

func averageWPM(sessions []typing.TypingSession) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range sessions {
		sum += float64(s.WPM)
	}
	return sum / float64(len(sessions))
}

// clampScore bounds a rounded score to [0, 100].
func clampScore(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(v)
}
