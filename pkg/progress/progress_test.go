package progress

import (
	"reflect"
	"testing"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/state"
)

func TestBookKeyExtraction(t *testing.T) {
	vocab := NewVocabularyBook()
	if got := vocab.Key(card.Card{"kanji": "日", "kana": "ひ"}); got != "日" {
		t.Fatalf("vocabulary key = %q, want 日", got)
	}
	if got := vocab.Key(card.Card{"kana": "ひ"}); got != "" {
		t.Fatalf("expected empty key for card without kanji, got %q", got)
	}

	grammar := NewGrammarBook()
	if got := grammar.Key(card.Card{"pattern": "〜たことがある"}); got != "〜たことがある" {
		t.Fatalf("grammar key = %q", got)
	}
}

func TestBookMarkAndClear(t *testing.T) {
	b := NewVocabularyBook()
	b.MarkLearned("日")
	b.MarkFocus("月")
	if !b.Learned("日") || b.Learned("月") {
		t.Fatalf("unexpected learned state")
	}
	if !b.Focus("月") || b.Focus("日") {
		t.Fatalf("unexpected focus state")
	}
	b.ClearLearned("日")
	b.ClearFocus("月")
	learned, focus := b.Counts()
	if learned != 0 || focus != 0 {
		t.Fatalf("expected empty book, got %d learned %d focus", learned, focus)
	}
	// Empty keys never enter the book.
	b.MarkLearned("")
	b.MarkFocus("")
	learned, focus = b.Counts()
	if learned != 0 || focus != 0 {
		t.Fatalf("empty keys should be ignored")
	}
}

func TestRecordRestoreRoundTrip(t *testing.T) {
	b := NewGrammarBook()
	b.MarkLearned("〜ば")
	b.MarkLearned("〜たら")
	b.MarkFocus("〜なら")
	rec := b.Record()
	if !reflect.DeepEqual(rec.Learned, []string{"〜たら", "〜ば"}) {
		t.Fatalf("unexpected learned record %v", rec.Learned)
	}

	restored := NewGrammarBook()
	restored.Restore(rec)
	if !restored.Learned("〜ば") || !restored.Learned("〜たら") || !restored.Focus("〜なら") {
		t.Fatalf("restore lost tags: %+v", restored.Record())
	}
}

func TestForCategory(t *testing.T) {
	if b := ForCategory(collection.CategoryVocabulary); b == nil || b.Kind() != KindVocabulary {
		t.Fatalf("expected vocabulary book")
	}
	if b := ForCategory(collection.CategoryGrammar); b == nil || b.Kind() != KindGrammar {
		t.Fatalf("expected grammar book")
	}
	if b := ForCategory(collection.CategoryTrivia); b != nil {
		t.Fatalf("trivia should not track progress")
	}
	if b := ForCategory(collection.CategoryGeneric); b != nil {
		t.Fatalf("generic should not track progress")
	}
}

func TestVisibleRules(t *testing.T) {
	b := NewVocabularyBook()
	b.MarkLearned("日")
	b.MarkFocus("月")

	sun := card.Card{"kanji": "日"}
	moon := card.Card{"kanji": "月"}
	fire := card.Card{"kanji": "火"}
	anon := card.Card{"note": "no key field"}

	tests := []struct {
		name  string
		c     card.Card
		flags state.Flags
		want  bool
	}{
		{name: "no filter passes learned", c: sun, flags: state.Flags{}, want: true},
		{name: "skipLearned excludes learned", c: sun, flags: state.Flags{SkipLearned: true}, want: false},
		{name: "skipLearned keeps unlearned", c: fire, flags: state.Flags{SkipLearned: true}, want: true},
		{name: "focusOnly keeps focus", c: moon, flags: state.Flags{FocusOnly: true}, want: true},
		{name: "focusOnly excludes non-focus", c: fire, flags: state.Flags{FocusOnly: true}, want: false},
		{name: "both flags apply both rules", c: sun, flags: state.Flags{SkipLearned: true, FocusOnly: true}, want: false},
		{name: "both flags keep focused unlearned", c: moon, flags: state.Flags{SkipLearned: true, FocusOnly: true}, want: true},
		{name: "keyless card always passes", c: anon, flags: state.Flags{SkipLearned: true, FocusOnly: true}, want: true},
	}
	for _, tc := range tests {
		if got := Visible(tc.c, b, tc.flags); got != tc.want {
			t.Fatalf("%s: Visible = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestVisibleNilTracker(t *testing.T) {
	c := card.Card{"kanji": "日"}
	if !Visible(c, nil, state.Flags{SkipLearned: true, FocusOnly: true}) {
		t.Fatalf("nil tracker must pass everything")
	}
}

// Exclusion under skipLearned alone implies exclusion when focusOnly is
// added on top; the second rule can only remove more cards.
func TestVisibleMonotonicity(t *testing.T) {
	b := NewVocabularyBook()
	b.MarkLearned("日")
	b.MarkFocus("日")
	cards := []card.Card{
		{"kanji": "日"},
		{"kanji": "月"},
		{},
	}
	skip := state.Flags{SkipLearned: true}
	both := state.Flags{SkipLearned: true, FocusOnly: true}
	for i, c := range cards {
		if !Visible(c, b, skip) {
			if Visible(c, b, both) {
				t.Fatalf("card %d re-included by adding focusOnly", i)
			}
		}
	}
}
