package metrics

import (
	"sort"

	"github.com/abhisek/keyz/internal/typing"
)

// topN limits the fastest/slowest/most/least accurate key lists.
const topN = 5

// KeyStat summarizes a single target key's performance within a session.
type KeyStat struct {
	Key              string  `json:"key"`
	Count            int     `json:"count"`
	AverageLatencyMs float64 `json:"average_latency_ms"`
	Accuracy         int     `json:"accuracy"`
}

// PatternSummary is the output of KeystrokePatternAnalysis.
type PatternSummary struct {
	Fastest       []KeyStat `json:"fastest"`
	Slowest       []KeyStat `json:"slowest"`
	MostAccurate  []KeyStat `json:"most_accurate"`
	LeastAccurate []KeyStat `json:"least_accurate"`
}

// MistakePair is one (expected, actual) confusion with its share of all
// mistakes.
type MistakePair struct {
	Expected   string  `json:"expected"`
	Actual     string  `json:"actual"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// KeystrokePatternAnalysis groups keystrokes by target key and extracts
// the 5 fastest, slowest, most accurate, and least accurate keys. Ties are
// broken by the order a key first appeared in the input, so the result is
// deterministic for a given session.
func KeystrokePatternAnalysis(keystrokes []typing.KeystrokeEvent) PatternSummary {
	type agg struct {
		key        string
		count      int
		correct    int
		latencySum int
		latencyN   int
	}

	byKey := make(map[string]*agg)
	var order []*agg
	for _, k := range keystrokes {
		if k.Expected == "" {
			continue
		}
		a, ok := byKey[k.Expected]
		if !ok {
			a = &agg{key: k.Expected}
			byKey[k.Expected] = a
			order = append(order, a)
		}
		a.count++
		if k.Correct {
			a.correct++
		}
		if k.TimeSinceLastMs > 0 {
			a.latencySum += k.TimeSinceLastMs
			a.latencyN++
		}
	}

	stats := make([]KeyStat, 0, len(order))
	for _, a := range order {
		latency := 0.0
		if a.latencyN > 0 {
			latency = float64(a.latencySum) / float64(a.latencyN)
		}
		stats = append(stats, KeyStat{
			Key:              a.key,
			Count:            a.count,
			AverageLatencyMs: latency,
			Accuracy:         Accuracy(a.correct, a.count),
		})
	}

	return PatternSummary{
		Fastest:       topBy(stats, func(a, b KeyStat) bool { return a.AverageLatencyMs < b.AverageLatencyMs }),
		Slowest:       topBy(stats, func(a, b KeyStat) bool { return a.AverageLatencyMs > b.AverageLatencyMs }),
		MostAccurate:  topBy(stats, func(a, b KeyStat) bool { return a.Accuracy > b.Accuracy }),
		LeastAccurate: topBy(stats, func(a, b KeyStat) bool { return a.Accuracy < b.Accuracy }),
	}
}

// MistakeFrequency groups mistakes by (expected, actual) pair and returns
// counts with percentage of the total, sorted descending by count. Ties
// keep first-occurrence order.
func MistakeFrequency(mistakes []typing.MistakeEvent) []MistakePair {
	type agg struct {
		expected string
		actual   string
		count    int
	}

	byPair := make(map[[2]string]*agg)
	var order []*agg
	total := 0
	for _, m := range mistakes {
		n := m.Frequency
		if n <= 0 {
			n = 1
		}
		total += n
		key := [2]string{m.Expected, m.Actual}
		a, ok := byPair[key]
		if !ok {
			a = &agg{expected: m.Expected, actual: m.Actual}
			byPair[key] = a
			order = append(order, a)
		}
		a.count += n
	}
	if total == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].count > order[j].count
	})

	out := make([]MistakePair, len(order))
	for i, a := range order {
		out[i] = MistakePair{
			Expected:   a.expected,
			Actual:     a.actual,
			Count:      a.count,
			Percentage: 100 * float64(a.count) / float64(total),
		}
	}
	return out
}

// topBy returns up to topN stats ordered by less, stable on input order.
func topBy(stats []KeyStat, less func(a, b KeyStat) bool) []KeyStat {
	sorted := make([]KeyStat, len(stats))
	copy(sorted, stats)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if len(sorted) > topN {
		sorted = sorted[:topN]
	}
	return sorted
}
