package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/abhisek/keyz/internal/llm"
)

func primedSource(t *testing.T, words, sentences string) *AISource {
	t.Helper()
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(words)},
		llm.MockResponse{Content: json.RawMessage(sentences)},
	)
	src := NewAISource(mock)
	if err := src.Prime(context.Background(), []string{"e", "r"}); err != nil {
		t.Fatalf("prime: %v", err)
	}
	return src
}

func TestAISource_ServesGeneratedContent(t *testing.T) {
	src := primedSource(t,
		`{"words":["were","error","river"]}`,
		`{"sentences":["every river runs east."]}`,
	)

	words := src.WordsContaining([]string{"e"})
	if len(words) != 3 {
		t.Fatalf("got %d words, want 3", len(words))
	}
	if words[0] != "were" {
		t.Errorf("words[0] = %q, want generation order preserved", words[0])
	}

	sentences := src.SentenceTemplates()
	if len(sentences) != 1 || sentences[0] != "every river runs east." {
		t.Errorf("sentences = %v", sentences)
	}
}

func TestAISource_FiltersCachedWords(t *testing.T) {
	src := primedSource(t,
		`{"words":["were","quit"]}`,
		`{"sentences":["ok."]}`,
	)

	words := src.WordsContaining([]string{"q"})
	if len(words) != 1 || words[0] != "quit" {
		t.Errorf("words = %v, want [quit]", words)
	}
}

func TestAISource_NormalizesWords(t *testing.T) {
	src := primedSource(t,
		`{"words":[" Were ","were","WERE","  "]}`,
		`{"sentences":["ok."]}`,
	)

	words := src.WordsContaining([]string{"w"})
	if len(words) != 1 || words[0] != "were" {
		t.Errorf("words = %v, want deduped lowercase [were]", words)
	}
}

func TestAISource_FallsBackWithoutPrime(t *testing.T) {
	src := NewAISource(llm.NewMockProvider())

	words := src.WordsContaining([]string{"e"})
	if len(words) == 0 {
		t.Error("expected static corpus words without a primed cache")
	}
	if len(src.SentenceTemplates()) == 0 {
		t.Error("expected static sentences without a primed cache")
	}
}

func TestAISource_FallsBackWhenCacheHasNoMatch(t *testing.T) {
	src := primedSource(t,
		`{"words":["aaa"]}`,
		`{"sentences":["ok."]}`,
	)

	// No cached word contains z; the static corpus answers.
	words := src.WordsContaining([]string{"z"})
	if len(words) == 0 {
		t.Error("expected fallback words when nothing cached matches")
	}
}

func TestAISource_PrimeErrorKeepsFallback(t *testing.T) {
	src := NewAISource(llm.NewMockProvider()) // empty queue: provider unavailable

	if err := src.Prime(context.Background(), []string{"e"}); err == nil {
		t.Fatal("expected prime error from unavailable provider")
	}
	if len(src.WordsContaining(nil)) == 0 {
		t.Error("fallback must keep serving after a failed prime")
	}
}

func TestAISource_RequestsCarrySchema(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: json.RawMessage(`{"words":["were"]}`)},
		llm.MockResponse{Content: json.RawMessage(`{"sentences":["ok."]}`)},
	)
	src := NewAISource(mock)
	if err := src.Prime(context.Background(), []string{"e"}); err != nil {
		t.Fatal(err)
	}

	if mock.CallCount() != 2 {
		t.Fatalf("got %d calls, want 2", mock.CallCount())
	}
	if mock.Calls[0].Schema == nil || mock.Calls[0].Schema.Name != "practice-words" {
		t.Errorf("first call schema = %+v", mock.Calls[0].Schema)
	}
	if mock.Calls[1].Schema == nil || mock.Calls[1].Schema.Name != "practice-sentences" {
		t.Errorf("second call schema = %+v", mock.Calls[1].Schema)
	}
}
