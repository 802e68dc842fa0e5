package analysis

import (
	"sort"

	"github.com/abhisek/keyz/internal/metrics"
	"github.com/abhisek/keyz/internal/typing"
)

// maxKeyHighlights caps the weakest/strongest key lists per finger.
const maxKeyHighlights = 5

// Layout is the keyboard mapping the analyzer consumes. Satisfied by
// layout.Keymap; supplied by the caller so the analyzer never picks a
// layout itself.
type Layout interface {
	KeyToFinger(key string) (int, bool)
	AssignedKeys(finger int) []string
	FingerName(finger int) string
	FingerHand(finger int) typing.Hand
	Adjacent(a, b string) bool
	SameFinger(a, b string) bool
}

// fingerCount mirrors the 0–9 finger index convention.
const fingerCount = 10

// AnalyzeFingerPerformance aggregates accuracy and speed per finger and
// extracts each finger's weakest and strongest keys from the per-letter
// analytics. Keys the layout cannot map are excluded from the aggregates.
func AnalyzeFingerPerformance(sessions []typing.TypingSession, letters []typing.LetterAnalytics, lay Layout) []typing.FingerAnalytics {
	type agg struct {
		attempts   int
		correct    int
		latencySum int
		latencyN   int
	}

	var aggs [fingerCount]agg
	for _, s := range sessions {
		for _, k := range s.Keystrokes {
			finger, ok := lay.KeyToFinger(k.Expected)
			if !ok || finger < 0 || finger >= fingerCount {
				continue
			}
			a := &aggs[finger]
			a.attempts++
			if k.Correct {
				a.correct++
			}
			if k.TimeSinceLastMs > 0 {
				a.latencySum += k.TimeSinceLastMs
				a.latencyN++
			}
		}
	}

	byLetter := make(map[string]typing.LetterAnalytics, len(letters))
	letterOrder := make(map[string]int, len(letters))
	for i, l := range letters {
		byLetter[l.Letter] = l
		letterOrder[l.Letter] = i
	}

	out := make([]typing.FingerAnalytics, 0, fingerCount)
	for finger := range fingerCount {
		a := aggs[finger]
		speed := 0.0
		if a.latencyN > 0 {
			speed = float64(a.latencySum) / float64(a.latencyN)
		}

		keys := lay.AssignedKeys(finger)
		out = append(out, typing.FingerAnalytics{
			Finger:          finger,
			Name:            lay.FingerName(finger),
			Hand:            lay.FingerHand(finger),
			Keys:            keys,
			AverageAccuracy: metrics.Accuracy(a.correct, a.attempts),
			AverageSpeedMs:  speed,
			WeakestKeys:     rankKeys(keys, byLetter, letterOrder, true),
			StrongestKeys:   rankKeys(keys, byLetter, letterOrder, false),
		})
	}
	return out
}

// rankKeys orders a finger's keys by letter accuracy (ascending for
// weakest, descending for strongest), keeping the letter analytics order
// for ties, capped at maxKeyHighlights. Keys without analytics are
// skipped.
func rankKeys(keys []string, byLetter map[string]typing.LetterAnalytics, order map[string]int, weakest bool) []string {
	var known []string
	for _, k := range keys {
		if _, ok := byLetter[k]; ok {
			known = append(known, k)
		}
	}
	sort.SliceStable(known, func(i, j int) bool {
		ai := byLetter[known[i]].Accuracy
		aj := byLetter[known[j]].Accuracy
		if ai == aj {
			return order[known[i]] < order[known[j]]
		}
		if weakest {
			return ai < aj
		}
		return ai > aj
	})
	if len(known) > maxKeyHighlights {
		known = known[:maxKeyHighlights]
	}
	return known
}
