package collection

import (
	"reflect"
	"testing"

	"tableflip.dev/kioku/pkg/card"
)

func TestGroupCards(t *testing.T) {
	cards := []card.Card{
		{"kanji": "日", "level": "N5", "chapter": float64(1)},
		{"kanji": "月", "level": "N5", "chapter": float64(2)},
		{"kanji": "火", "level": "N5", "chapter": float64(1)},
		{"kanji": "薔", "level": "N1", "chapter": float64(1)},
		{"kanji": "謎"},
	}
	groups := GroupCards(cards, []string{"level", "chapter"})
	if len(groups) != 4 {
		t.Fatalf("expected 4 groups, got %d", len(groups))
	}
	// First-appearance order.
	wantKeys := []string{"N5|1", "N5|2", "N1|1", ""}
	for i, want := range wantKeys {
		if groups[i].Key != want {
			t.Fatalf("group %d key = %q, want %q", i, groups[i].Key, want)
		}
	}
	if len(groups[0].Cards) != 2 {
		t.Fatalf("expected 日 and 火 grouped, got %d cards", len(groups[0].Cards))
	}
	if groups[0].Cards[1].String("kanji") != "火" {
		t.Fatalf("card order within group not preserved")
	}
}

func TestGroupCardsNoFields(t *testing.T) {
	cards := []card.Card{{"a": "1"}, {"b": "2"}}
	groups := GroupCards(cards, nil)
	if len(groups) != 1 || len(groups[0].Cards) != 2 {
		t.Fatalf("expected single group, got %+v", groups)
	}
}

func TestLiftDefaults(t *testing.T) {
	cards := []card.Card{
		{"kanji": "日", "level": "N5", "source": "minna"},
		{"kanji": "月", "level": "N5", "source": "minna"},
		{"kanji": "火", "level": "N5", "source": "minna"},
	}
	defaults, trimmed := LiftDefaults(cards)
	want := card.Card{"level": "N5", "source": "minna"}
	if !reflect.DeepEqual(defaults, want) {
		t.Fatalf("defaults = %+v, want %+v", defaults, want)
	}
	for i, c := range trimmed {
		if c.Has("level") || c.Has("source") {
			t.Fatalf("lifted field still on card %d: %+v", i, c)
		}
		if !c.Has("kanji") {
			t.Fatalf("distinct field removed from card %d", i)
		}
	}
	// Originals untouched.
	if !cards[0].Has("level") {
		t.Fatalf("input cards mutated")
	}
}

func TestLiftDefaultsNothingShared(t *testing.T) {
	cards := []card.Card{
		{"kanji": "日", "level": "N5"},
		{"kanji": "月", "level": "N4"},
	}
	defaults, trimmed := LiftDefaults(cards)
	if defaults != nil {
		t.Fatalf("expected no defaults, got %+v", defaults)
	}
	if !reflect.DeepEqual(trimmed, cards) {
		t.Fatalf("cards should pass through unchanged")
	}
}

func TestLiftDefaultsSingleCard(t *testing.T) {
	cards := []card.Card{{"kanji": "日", "level": "N5"}}
	defaults, trimmed := LiftDefaults(cards)
	if defaults != nil || len(trimmed) != 1 {
		t.Fatalf("single card should lift nothing")
	}
}

func TestReorganize(t *testing.T) {
	doc := &Document{
		Name:     "JLPT Vocabulary",
		Category: CategoryVocabulary,
		Cards: []card.Card{
			{"kanji": "日", "level": "N5", "source": "minna"},
			{"kanji": "月", "level": "N5", "source": "minna"},
			{"kanji": "薔", "level": "N1", "source": "minna"},
			{"kanji": "薇", "level": "N1", "source": "minna"},
		},
	}
	out := Reorganize(doc, []string{"level"})
	if len(out) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(out))
	}
	// Sorted by name.
	if out[0].Name != "JLPT Vocabulary - N1" || out[1].Name != "JLPT Vocabulary - N5" {
		t.Fatalf("unexpected names: %q, %q", out[0].Name, out[1].Name)
	}
	for _, d := range out {
		if d.Category != CategoryVocabulary {
			t.Fatalf("category dropped on %q", d.Name)
		}
		if !d.Defaults.Has("level") || !d.Defaults.Has("source") {
			t.Fatalf("common fields not lifted on %q: %+v", d.Name, d.Defaults)
		}
		for i, c := range d.Cards {
			if c.Has("level") || c.Has("source") {
				t.Fatalf("%q card %d still carries lifted fields", d.Name, i)
			}
		}
	}
}
