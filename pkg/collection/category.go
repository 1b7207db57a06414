// Package collection defines metadata and document helpers for kioku
// study collections.
package collection

import (
	"fmt"
	"strings"
)

// Category identifies how a collection's cards are studied and which
// field correlates a card with learned/focus progress.
type Category string

const (
	// CategoryGeneric is the default free-form collection. Its cards
	// carry no study key and cannot be filtered by progress.
	CategoryGeneric Category = "generic"
	// CategoryVocabulary keys progress on the kanji field.
	CategoryVocabulary Category = "vocabulary"
	// CategoryGrammar keys progress on the pattern field.
	CategoryGrammar Category = "grammar"
	// CategoryTrivia is quiz-style content without progress tracking.
	CategoryTrivia Category = "trivia"
)

// AllCategories returns the list of supported collection categories.
func AllCategories() []Category {
	return []Category{
		CategoryGeneric,
		CategoryVocabulary,
		CategoryGrammar,
		CategoryTrivia,
	}
}

// ParseCategory converts a string to a Category or returns an error for
// unknown values.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	if c == "" {
		return CategoryGeneric, nil
	}
	for _, candidate := range AllCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return CategoryGeneric, fmt.Errorf("collection: unknown category %q", raw)
}

// MustCategory parses the input and panics on error. Intended for tests.
func MustCategory(raw string) Category {
	c, err := ParseCategory(raw)
	if err != nil {
		panic(err)
	}
	return c
}

// GuessCategory inspects card fields to infer a category for documents
// that do not declare one.
func GuessCategory(fields []string) Category {
	has := make(map[string]bool, len(fields))
	for _, f := range fields {
		has[strings.ToLower(f)] = true
	}
	switch {
	case has["pattern"]:
		return CategoryGrammar
	case has["kanji"] || has["kana"]:
		return CategoryVocabulary
	case has["question"] && has["answer"]:
		return CategoryTrivia
	default:
		return CategoryGeneric
	}
}
