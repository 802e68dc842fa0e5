package metrics

import (
	"math"
	"testing"

	"github.com/abhisek/keyz/internal/typing"
)

const epsilon = 0.001

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestWPM_ZeroElapsed(t *testing.T) {
	if got := WPM(100, 0, 0); got != 0 {
		t.Errorf("WPM = %d, want 0", got)
	}
	if got := WPM(100, -5, 0); got != 0 {
		t.Errorf("WPM = %d, want 0 for negative elapsed", got)
	}
}

func TestWPM_ZeroChars(t *testing.T) {
	if got := WPM(0, 60, 0); got != 0 {
		t.Errorf("WPM = %d, want 0", got)
	}
}

func TestWPM_Scenario(t *testing.T) {
	// 88 net chars over 60s: round((88/5)/1) = 18.
	if got := WPM(100, 60, 12); got != 18 {
		t.Errorf("WPM = %d, want 18", got)
	}
}

func TestWPM_ErrorsExceedTotal(t *testing.T) {
	// Net chars floor at 0 — errors never produce a negative WPM.
	if got := WPM(10, 60, 20); got != 0 {
		t.Errorf("WPM = %d, want 0", got)
	}
}

func TestAccuracy_ZeroTotal(t *testing.T) {
	if got := Accuracy(5, 0); got != 0 {
		t.Errorf("Accuracy = %d, want 0", got)
	}
}

func TestAccuracy_Scenario(t *testing.T) {
	if got := Accuracy(88, 100); got != 88 {
		t.Errorf("Accuracy = %d, want 88", got)
	}
}

func TestAccuracy_Rounding(t *testing.T) {
	// 2/3 = 66.67 → 67.
	if got := Accuracy(2, 3); got != 67 {
		t.Errorf("Accuracy = %d, want 67", got)
	}
}

func TestConsistency_FewSamples(t *testing.T) {
	if got := Consistency(nil); got != 100 {
		t.Errorf("Consistency(nil) = %d, want 100", got)
	}
	if got := Consistency([]int{150}); got != 100 {
		t.Errorf("Consistency(1 sample) = %d, want 100", got)
	}
}

func TestConsistency_PerfectRhythm(t *testing.T) {
	if got := Consistency([]int{200, 200, 200, 200}); got != 100 {
		t.Errorf("Consistency = %d, want 100 for zero variance", got)
	}
}

func TestConsistency_HighVariance(t *testing.T) {
	// mean 500, stddev ~499 → cv ~1 → score ~0; must clamp at >= 0.
	got := Consistency([]int{1, 999, 1, 999})
	if got < 0 || got > 5 {
		t.Errorf("Consistency = %d, want near 0", got)
	}
}

func TestConsistency_ModerateVariance(t *testing.T) {
	// mean 200, stddev ~40.8 → cv 0.204 → round(100-20.4) = 80.
	if got := Consistency([]int{150, 200, 250, 200}); got != 80 {
		t.Errorf("Consistency = %d, want 80", got)
	}
}

func TestErrorRate(t *testing.T) {
	if got := ErrorRate(12, 100); got != 12 {
		t.Errorf("ErrorRate = %d, want 12", got)
	}
	if got := ErrorRate(3, 0); got != 0 {
		t.Errorf("ErrorRate = %d, want 0 for zero total", got)
	}
}

func TestImprovement_ZeroBaseline(t *testing.T) {
	if got := Improvement(0, 30); !almostEqual(got, 100) {
		t.Errorf("Improvement = %f, want 100", got)
	}
	if got := Improvement(0, 0); !almostEqual(got, 0) {
		t.Errorf("Improvement = %f, want 0", got)
	}
}

func TestImprovement_Change(t *testing.T) {
	if got := Improvement(20, 30); !almostEqual(got, 50) {
		t.Errorf("Improvement = %f, want 50", got)
	}
	if got := Improvement(40, 30); !almostEqual(got, -25) {
		t.Errorf("Improvement = %f, want -25", got)
	}
}

func TestLearningVelocity_TooFewSessions(t *testing.T) {
	if got := LearningVelocity(nil); !almostEqual(got, 0) {
		t.Errorf("LearningVelocity = %f, want 0", got)
	}
	one := []typing.TypingSession{{WPM: 30}}
	if got := LearningVelocity(one); !almostEqual(got, 0) {
		t.Errorf("LearningVelocity = %f, want 0", got)
	}
}

func TestLearningVelocity_Improving(t *testing.T) {
	// Halves average 20 and 30: improvement 50%, over 4 sessions = 12.5.
	sessions := []typing.TypingSession{
		{WPM: 18}, {WPM: 22}, {WPM: 28}, {WPM: 32},
	}
	if got := LearningVelocity(sessions); !almostEqual(got, 12.5) {
		t.Errorf("LearningVelocity = %f, want 12.5", got)
	}
}

func TestConfidenceScore(t *testing.T) {
	// 0.4*90 + 0.3*80 + 0.3*min(100, 50) = 36 + 24 + 15 = 75.
	if got := ConfidenceScore(90, 80, 50); got != 75 {
		t.Errorf("ConfidenceScore = %d, want 75", got)
	}
}

func TestConfidenceScore_ExperienceSaturates(t *testing.T) {
	// 0.4*90 + 0.3*80 + 0.3*100 = 90.
	if got := ConfidenceScore(90, 80, 500); got != 90 {
		t.Errorf("ConfidenceScore = %d, want 90", got)
	}
}

func TestConfidenceScore_Clamped(t *testing.T) {
	if got := ConfidenceScore(100, 100, 1000); got != 100 {
		t.Errorf("ConfidenceScore = %d, want 100", got)
	}
}
