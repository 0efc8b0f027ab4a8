// Package tagging derives keyword tags from review text.
//
// This is a heuristic membership filter over a fixed vocabulary, not NLP:
// no stemming, no synonym matching.
package tagging

import (
	"strings"
	"unicode"

	"fitbooks-backend/internal/domains/review/model"
)

// Extractor maps free text to a small, ordered set of vocabulary tags.
type Extractor struct {
	vocabulary map[string]struct{}
}

// NewExtractor builds an extractor over the given word list.
func NewExtractor(vocabulary []string) *Extractor {
	vocab := make(map[string]struct{}, len(vocabulary))
	for _, word := range vocabulary {
		vocab[strings.ToLower(word)] = struct{}{}
	}
	return &Extractor{vocabulary: vocab}
}

// Extract lower-cases the text, splits it on non-word boundaries and keeps
// tokens that are in the vocabulary and longer than three characters.
// First occurrence wins, order is stable, at most model.MaxTags are returned.
// Absent text yields an empty result; Extract never fails.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return []string{}
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	})

	tags := []string{}
	seen := make(map[string]struct{})
	for _, word := range words {
		if len(word) < model.MinTagLength {
			continue
		}
		if _, ok := e.vocabulary[word]; !ok {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tags = append(tags, word)
		if len(tags) == model.MaxTags {
			break
		}
	}

	return tags
}
