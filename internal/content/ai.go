package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/keyz/internal/llm"
)

// wordsSchema constrains the LLM to a flat word list.
var wordsSchema = &llm.Schema{
	Name:        "practice-words",
	Description: "Common English words for typing practice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"words": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"words"},
		"additionalProperties": false,
	},
}

var sentencesSchema = &llm.Schema{
	Name:        "practice-sentences",
	Description: "Short English sentences for typing practice",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"sentences": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"sentences"},
		"additionalProperties": false,
	},
}

// AISource serves practice content generated by an LLM. Generation is
// explicit: Prime fetches content for a letter set up front, and the
// ContentSource accessors read the cached results. When the provider
// fails or Prime was never called, the static corpus answers instead,
// so plan generation never depends on network availability.
type AISource struct {
	provider llm.Provider
	fallback *StaticSource

	mu        sync.Mutex
	words     []string
	sentences []string
}

// NewAISource creates an AISource backed by the given provider.
func NewAISource(provider llm.Provider) *AISource {
	return &AISource{
		provider: provider,
		fallback: NewStaticSource(),
	}
}

// Prime fetches words and sentences emphasizing the given letters and
// caches them for the accessors. A provider error leaves the cache
// untouched; the static fallback keeps serving.
func (s *AISource) Prime(ctx context.Context, letters []string) error {
	words, err := s.fetchWords(ctx, letters)
	if err != nil {
		return fmt.Errorf("fetch words: %w", err)
	}
	sentences, err := s.fetchSentences(ctx, letters)
	if err != nil {
		return fmt.Errorf("fetch sentences: %w", err)
	}

	s.mu.Lock()
	s.words = words
	s.sentences = sentences
	s.mu.Unlock()
	return nil
}

// WordsContaining returns cached generated words that contain at least
// one of the given letters, falling back to the static corpus when the
// cache is empty or nothing matches.
func (s *AISource) WordsContaining(letters []string) []string {
	s.mu.Lock()
	cached := s.words
	s.mu.Unlock()

	if len(cached) > 0 {
		matched := filterWords(cached, letters)
		if len(matched) > 0 {
			return matched
		}
	}
	return s.fallback.WordsContaining(letters)
}

// SentenceTemplates returns cached generated sentences, or the static
// templates when none are cached.
func (s *AISource) SentenceTemplates() []string {
	s.mu.Lock()
	cached := s.sentences
	s.mu.Unlock()

	if len(cached) > 0 {
		return cached
	}
	return s.fallback.SentenceTemplates()
}

func (s *AISource) fetchWords(ctx context.Context, letters []string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeWordGeneration)

	prompt := "Generate 30 common lowercase English words for typing practice."
	if len(letters) > 0 {
		prompt = fmt.Sprintf(
			"Generate 30 common lowercase English words for typing practice. Each word must contain at least one of these letters: %s.",
			strings.Join(letters, ", "),
		)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    "You are a typing coach. Respond with JSON only.",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    wordsSchema,
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Words []string `json:"words"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("decode words: %w", err)
	}
	return normalize(parsed.Words), nil
}

func (s *AISource) fetchSentences(ctx context.Context, letters []string) ([]string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeSentenceGeneration)

	prompt := "Generate 5 short English sentences for typing practice, each under 60 characters."
	if len(letters) > 0 {
		prompt = fmt.Sprintf(
			"Generate 5 short English sentences for typing practice, each under 60 characters, emphasizing these letters: %s.",
			strings.Join(letters, ", "),
		)
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:    "You are a typing coach. Respond with JSON only.",
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:    sentencesSchema,
		MaxTokens: 1024,
	})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Sentences []string `json:"sentences"`
	}
	if err := json.Unmarshal(resp.Content, &parsed); err != nil {
		return nil, fmt.Errorf("decode sentences: %w", err)
	}

	var out []string
	for _, sent := range parsed.Sentences {
		sent = strings.TrimSpace(sent)
		if sent != "" {
			out = append(out, sent)
		}
	}
	return out, nil
}

// normalize lowercases, trims, and dedupes generated words, keeping
// first-seen order.
func normalize(words []string) []string {
	seen := make(map[string]bool, len(words))
	var out []string
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
