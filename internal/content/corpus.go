// Package content supplies practice text: a built-in corpus of common
// words and sentence templates, plus an optional AI-backed source.
package content

import "strings"

// commonWords is the built-in practice vocabulary, ordered by rough
// frequency. Kept lowercase; exercises control their own casing.
var commonWords = []string{
	"the", "and", "for", "are", "but", "not", "you", "all", "can", "her",
	"was", "one", "our", "out", "day", "get", "has", "him", "his", "how",
	"man", "new", "now", "old", "see", "two", "way", "who", "boy", "did",
	"its", "let", "put", "say", "she", "too", "use", "that", "with",
	"have", "this", "will", "your", "from", "they", "know", "want",
	"been", "good", "much", "some", "time", "very", "when", "come",
	"here", "just", "like", "long", "make", "many", "more", "only",
	"over", "such", "take", "than", "them", "well", "were", "what",
	"work", "first", "would", "there", "their", "about", "could",
	"other", "after", "right", "think", "three", "years", "where",
	"sound", "great", "again", "still", "every", "small", "found",
	"those", "never", "under", "might", "while", "house", "world",
	"below", "asked", "going", "large", "until", "along", "shall",
	"being", "often", "earth", "began", "since", "study", "night",
	"light", "above", "paper", "parts", "young", "story", "point",
	"times", "heard", "whole", "white", "given", "means", "music",
	"miles", "thing", "today", "later", "using", "money", "lines",
	"order", "group", "among", "learn", "known", "space", "table",
	"early", "trees", "short", "hands", "state", "black", "shown",
}

// sentenceTemplates are fixed practice sentences covering the full
// alphabet at varied difficulty.
var sentenceTemplates = []string{
	"the quick brown fox jumps over the lazy dog",
	"pack my box with five dozen liquor jugs",
	"how vexingly quick daft zebras jump",
	"practice makes perfect when you type every day",
	"good typing comes from steady rhythm not raw speed",
	"keep your eyes on the text and trust your fingers",
	"accuracy first speed second is the golden rule",
	"the five boxing wizards jump quickly",
	"a slow steady pace builds lasting muscle memory",
	"watch the screen not the keyboard while you type",
}

// StaticSource serves practice content from the built-in corpus.
type StaticSource struct {
	words     []string
	sentences []string
}

// NewStaticSource returns a source backed by the built-in corpus.
func NewStaticSource() *StaticSource {
	return &StaticSource{words: commonWords, sentences: sentenceTemplates}
}

// WordsContaining returns the corpus words containing at least one of
// the given letters, in corpus order. With no letters it returns the
// whole corpus.
func (s *StaticSource) WordsContaining(letters []string) []string {
	return filterWords(s.words, letters)
}

// filterWords keeps the words containing at least one of the given
// letters, preserving order. With no letters it copies the whole list.
func filterWords(words, letters []string) []string {
	if len(letters) == 0 {
		out := make([]string, len(words))
		copy(out, words)
		return out
	}
	var out []string
	for _, w := range words {
		for _, l := range letters {
			if l != "" && strings.Contains(w, l) {
				out = append(out, w)
				break
			}
		}
	}
	return out
}

// SentenceTemplates returns the fixed sentence list.
func (s *StaticSource) SentenceTemplates() []string {
	out := make([]string, len(s.sentences))
	copy(out, s.sentences)
	return out
}
