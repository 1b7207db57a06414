// Package progress tracks learned/focus study tags and decides card
// visibility under the study filter. Progress is keyed on a string
// derived from a card's identifying field so it survives collection
// reorganization: the same kanji in two collections shares one record.
package progress

import (
	"sort"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/collection"
)

// Kind tags the progress-tracking variant in use.
type Kind string

const (
	// KindVocabulary keys progress on a lexical field (kanji by default).
	KindVocabulary Kind = "vocabulary"
	// KindGrammar keys progress on the pattern field.
	KindGrammar Kind = "grammar"
)

// Tracker resolves a card to its study key and reports its progress
// tags. The view composer depends only on this read side.
type Tracker interface {
	Kind() Kind
	Key(c card.Card) string
	Learned(key string) bool
	Focus(key string) bool
}

// Book is the mutable progress record behind a Tracker. Learned and
// focus are independent tags on the same key space.
type Book struct {
	kind    Kind
	field   string
	learned map[string]bool
	focus   map[string]bool
}

// NewVocabularyBook returns a Book keyed on the kanji field.
func NewVocabularyBook() *Book {
	return newBook(KindVocabulary, "kanji")
}

// NewGrammarBook returns a Book keyed on the pattern field.
func NewGrammarBook() *Book {
	return newBook(KindGrammar, "pattern")
}

// ForCategory selects the tracking variant for a collection category,
// or nil for categories that do not track progress.
func ForCategory(cat collection.Category) *Book {
	switch cat {
	case collection.CategoryVocabulary:
		return NewVocabularyBook()
	case collection.CategoryGrammar:
		return NewGrammarBook()
	default:
		return nil
	}
}

// KindForCategory maps a collection category to its tracker kind, or ""
// for untracked categories.
func KindForCategory(cat collection.Category) Kind {
	switch cat {
	case collection.CategoryVocabulary:
		return KindVocabulary
	case collection.CategoryGrammar:
		return KindGrammar
	default:
		return ""
	}
}

func newBook(kind Kind, field string) *Book {
	return &Book{
		kind:    kind,
		field:   field,
		learned: make(map[string]bool),
		focus:   make(map[string]bool),
	}
}

// Kind returns the tracking variant tag.
func (b *Book) Kind() Kind { return b.kind }

// Key extracts the study key from a card, or "" when the card carries
// no recognizable identity.
func (b *Book) Key(c card.Card) string {
	return c.String(b.field)
}

// Learned reports whether key carries the learned tag.
func (b *Book) Learned(key string) bool { return b.learned[key] }

// Focus reports whether key carries the focus tag.
func (b *Book) Focus(key string) bool { return b.focus[key] }

// MarkLearned tags key as learned. Empty keys are ignored.
func (b *Book) MarkLearned(key string) {
	if key != "" {
		b.learned[key] = true
	}
}

// ClearLearned removes the learned tag from key.
func (b *Book) ClearLearned(key string) {
	delete(b.learned, key)
}

// MarkFocus tags key for focused study. Empty keys are ignored.
func (b *Book) MarkFocus(key string) {
	if key != "" {
		b.focus[key] = true
	}
}

// ClearFocus removes the focus tag from key.
func (b *Book) ClearFocus(key string) {
	delete(b.focus, key)
}

// Counts returns the number of learned and focus keys.
func (b *Book) Counts() (learned, focus int) {
	return len(b.learned), len(b.focus)
}

// Record is the serialisable form of a Book.
type Record struct {
	Learned []string `json:"learned,omitempty"`
	Focus   []string `json:"focus,omitempty"`
}

// Record snapshots the book with sorted key lists.
func (b *Book) Record() Record {
	return Record{
		Learned: sortedKeys(b.learned),
		Focus:   sortedKeys(b.focus),
	}
}

// Restore replaces the book's tags with those in rec.
func (b *Book) Restore(rec Record) {
	b.learned = make(map[string]bool, len(rec.Learned))
	for _, k := range rec.Learned {
		b.learned[k] = true
	}
	b.focus = make(map[string]bool, len(rec.Focus))
	for _, k := range rec.Focus {
		b.focus[k] = true
	}
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
