package analysis

import (
	"reflect"
	"testing"

	"github.com/abhisek/keyz/internal/typing"
)

func mistake(expected, actual string) typing.MistakeEvent {
	return typing.MistakeEvent{Expected: expected, Actual: actual}
}

func TestAnalyzeErrorPatterns_Empty(t *testing.T) {
	got := AnalyzeErrorPatterns(nil, qwerty())
	if len(got) != 0 {
		t.Errorf("expected no patterns, got %+v", got)
	}
}

func TestAnalyzeErrorPatterns_Substitution(t *testing.T) {
	patterns := AnalyzeErrorPatterns([]typing.MistakeEvent{
		mistake("e", "r"), mistake("e", "r"), mistake("e", "r"),
	}, qwerty())

	if len(patterns) != 1 {
		t.Fatalf("got %d patterns, want 1", len(patterns))
	}
	p := patterns[0]
	if p.Type != typing.PatternSubstitution {
		t.Errorf("type = %s, want substitution", p.Type)
	}
	if p.Frequency != 3 {
		t.Errorf("frequency = %d, want 3", p.Frequency)
	}
	if p.ID != "substitution-e-r" {
		t.Errorf("id = %q, want deterministic substitution-e-r", p.ID)
	}
	if len(p.SuggestedExercises) == 0 || len(p.SuggestedExercises) > 3 {
		t.Errorf("suggestions = %d, want 1–3", len(p.SuggestedExercises))
	}
}

func TestAnalyzeErrorPatterns_Omission(t *testing.T) {
	patterns := AnalyzeErrorPatterns([]typing.MistakeEvent{mistake("t", "")}, qwerty())
	if patterns[0].Type != typing.PatternOmission {
		t.Errorf("type = %s, want omission", patterns[0].Type)
	}
	if !reflect.DeepEqual(patterns[0].Letters, []string{"t"}) {
		t.Errorf("letters = %v, want [t]", patterns[0].Letters)
	}
}

func TestAnalyzeErrorPatterns_Insertion(t *testing.T) {
	patterns := AnalyzeErrorPatterns([]typing.MistakeEvent{mistake("", "j")}, qwerty())
	if patterns[0].Type != typing.PatternInsertion {
		t.Errorf("type = %s, want insertion", patterns[0].Type)
	}
}

func TestAnalyzeErrorPatterns_Transposition(t *testing.T) {
	// e↔r in both directions on adjacent keys ⇒ transposition.
	patterns := AnalyzeErrorPatterns([]typing.MistakeEvent{
		mistake("e", "r"), mistake("r", "e"),
	}, qwerty())

	for _, p := range patterns {
		if p.Type != typing.PatternTransposition {
			t.Errorf("pattern %s type = %s, want transposition", p.ID, p.Type)
		}
	}
}

func TestAnalyzeErrorPatterns_DistantReversePairIsSubstitution(t *testing.T) {
	// q↔m occur both ways but share neither adjacency nor a finger.
	patterns := AnalyzeErrorPatterns([]typing.MistakeEvent{
		mistake("q", "m"), mistake("m", "q"),
	}, qwerty())
	for _, p := range patterns {
		if p.Type != typing.PatternSubstitution {
			t.Errorf("pattern %s type = %s, want substitution", p.ID, p.Type)
		}
	}
}

func TestAnalyzeErrorPatterns_SortedByFrequency(t *testing.T) {
	patterns := AnalyzeErrorPatterns([]typing.MistakeEvent{
		mistake("i", "o"),
		mistake("e", "r"), mistake("e", "r"), mistake("e", "r"), mistake("e", "r"),
	}, qwerty())

	if patterns[0].ID != "substitution-e-r" {
		t.Errorf("top pattern = %s, want the 4x e→r cluster", patterns[0].ID)
	}
}

func TestAnalyzeErrorPatterns_Difficulty(t *testing.T) {
	// Common letter, frequent ⇒ beginner.
	frequent := AnalyzeErrorPatterns([]typing.MistakeEvent{
		mistake("e", "w"), mistake("e", "w"), mistake("e", "w"),
	}, qwerty())
	if frequent[0].Difficulty != typing.DifficultyBeginner {
		t.Errorf("difficulty = %s, want beginner", frequent[0].Difficulty)
	}

	// Rare letter, single occurrence ⇒ advanced.
	rare := AnalyzeErrorPatterns([]typing.MistakeEvent{mistake("q", "w")}, qwerty())
	if rare[0].Difficulty != typing.DifficultyAdvanced {
		t.Errorf("difficulty = %s, want advanced", rare[0].Difficulty)
	}
}

func TestAnalyzeErrorPatterns_Idempotent(t *testing.T) {
	mistakes := []typing.MistakeEvent{
		mistake("e", "r"), mistake("t", ""), mistake("", "k"), mistake("e", "r"),
	}
	first := AnalyzeErrorPatterns(mistakes, qwerty())
	second := AnalyzeErrorPatterns(mistakes, qwerty())
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated pattern analysis produced different output")
	}
}
