package view

import (
	"reflect"
	"testing"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/state"
)

func kanjiCards(kanji ...string) []card.Card {
	cards := make([]card.Card, 0, len(kanji))
	for _, k := range kanji {
		cards = append(cards, card.Card{"kanji": k})
	}
	return cards
}

func TestComposeNaturalOrder(t *testing.T) {
	cards := kanjiCards("日", "月", "火", "水", "木")
	v := Compose(cards, state.State{}, nil)
	if v.IsShuffled || v.OrderHash != nil {
		t.Fatalf("expected unshuffled view, got %+v", v)
	}
	if !reflect.DeepEqual(v.Indices, []int{0, 1, 2, 3, 4}) {
		t.Fatalf("expected identity indices, got %v", v.Indices)
	}
	for i := range cards {
		if !reflect.DeepEqual(v.Cards[i], cards[i]) {
			t.Fatalf("card %d reordered without a seed", i)
		}
	}
}

func TestComposeKnownPermutation(t *testing.T) {
	cards := kanjiCards("日", "月", "火", "水", "木")
	var st state.State
	st.Shuffle(12345)
	v := Compose(cards, st, nil)

	// Permute(5, 12345) is fixed as [0 2 3 1 4].
	wantIndices := []int{0, 2, 3, 1, 4}
	if !reflect.DeepEqual(v.Indices, wantIndices) {
		t.Fatalf("indices = %v, want %v", v.Indices, wantIndices)
	}
	wantOrder := []string{"日", "火", "水", "月", "木"}
	for i, w := range wantOrder {
		if got := v.Cards[i].String("kanji"); got != w {
			t.Fatalf("position %d = %q, want %q", i, got, w)
		}
	}
	if !v.IsShuffled || v.OrderHash == nil || *v.OrderHash != 12345 {
		t.Fatalf("shuffle metadata wrong: %+v", v)
	}
}

func TestComposeIdempotent(t *testing.T) {
	cards := kanjiCards("日", "月", "火", "水", "木", "金", "土")
	b := progress.NewVocabularyBook()
	b.MarkLearned("火")
	var st state.State
	st.Shuffle(42)
	st.SetFlags(state.Flags{SkipLearned: true})

	first := Compose(cards, st, b)
	second := Compose(cards, st, b)
	if !reflect.DeepEqual(first.Indices, second.Indices) {
		t.Fatalf("indices differ across identical calls: %v vs %v", first.Indices, second.Indices)
	}
	if !reflect.DeepEqual(first.Cards, second.Cards) {
		t.Fatalf("cards differ across identical calls")
	}
}

func TestComposeIndexRoundTrip(t *testing.T) {
	cards := kanjiCards("日", "月", "火", "水", "木", "金", "土")
	b := progress.NewVocabularyBook()
	b.MarkLearned("月")
	b.MarkLearned("土")
	var st state.State
	st.Shuffle(2026)
	st.SetFlags(state.Flags{SkipLearned: true})

	v := Compose(cards, st, b)
	if len(v.Cards) != len(v.Indices) {
		t.Fatalf("length mismatch: %d cards, %d indices", len(v.Cards), len(v.Indices))
	}
	for i := range v.Cards {
		if !reflect.DeepEqual(v.Cards[i], cards[v.Indices[i]]) {
			t.Fatalf("Cards[%d] does not match original at index %d", i, v.Indices[i])
		}
	}
}

func TestComposeFilterScenario(t *testing.T) {
	cards := kanjiCards("日", "月")
	b := progress.NewVocabularyBook()
	b.MarkLearned("日")
	st := state.State{StudyFilter: "skipLearned"}

	v := Compose(cards, st, b)
	if len(v.Cards) != 1 {
		t.Fatalf("expected 1 visible card, got %d", len(v.Cards))
	}
	if got := v.Cards[0].String("kanji"); got != "月" {
		t.Fatalf("expected 月, got %q", got)
	}
	if !reflect.DeepEqual(v.Indices, []int{1}) {
		t.Fatalf("indices = %v, want [1]", v.Indices)
	}
}

func TestComposeKeylessCardSurvivesFilter(t *testing.T) {
	cards := []card.Card{{}, {"kanji": "日"}}
	b := progress.NewVocabularyBook()
	b.MarkLearned("日")
	st := state.State{StudyFilter: "skipLearned,focusOnly"}

	v := Compose(cards, st, b)
	if len(v.Cards) != 1 || v.Indices[0] != 0 {
		t.Fatalf("keyless card must always be included, got %+v", v)
	}
}

func TestComposeEmptyInput(t *testing.T) {
	var st state.State
	st.Shuffle(12345)
	v := Compose(nil, st, nil)
	if len(v.Cards) != 0 || len(v.Indices) != 0 {
		t.Fatalf("expected empty view, got %+v", v)
	}
	if v.IsShuffled || v.OrderHash != nil {
		t.Fatalf("empty view must not claim a shuffle: %+v", v)
	}
}

func TestComposeFilterEmptiesShuffledView(t *testing.T) {
	cards := kanjiCards("日")
	b := progress.NewVocabularyBook()
	b.MarkLearned("日")
	var st state.State
	st.Shuffle(42)
	st.SetFlags(state.Flags{SkipLearned: true})

	v := Compose(cards, st, b)
	if len(v.Cards) != 0 {
		t.Fatalf("expected everything filtered, got %d cards", len(v.Cards))
	}
	if v.IsShuffled || v.OrderHash != nil {
		t.Fatalf("empty view must report natural order: %+v", v)
	}
}

func TestComposeDoesNotMutateInputs(t *testing.T) {
	cards := kanjiCards("日", "月", "火")
	var st state.State
	st.Shuffle(99)
	_ = Compose(cards, st, nil)
	want := []string{"日", "月", "火"}
	for i, w := range want {
		if got := cards[i].String("kanji"); got != w {
			t.Fatalf("original slice mutated at %d: %q", i, got)
		}
	}
}

func TestComposeShuffleOfFilteredSubset(t *testing.T) {
	// The seed permutes the filtered subset, not the full list: with
	// 火 learned and skipped, the permutation for length 4 applies to
	// the remaining four cards.
	cards := kanjiCards("日", "月", "火", "水", "木")
	b := progress.NewVocabularyBook()
	b.MarkLearned("火")
	var st state.State
	st.Shuffle(12345)
	st.SetFlags(state.Flags{SkipLearned: true})

	v := Compose(cards, st, b)
	if len(v.Cards) != 4 {
		t.Fatalf("expected 4 cards, got %d", len(v.Cards))
	}
	for i := range v.Cards {
		if !reflect.DeepEqual(v.Cards[i], cards[v.Indices[i]]) {
			t.Fatalf("round trip broken at %d", i)
		}
		if v.Indices[i] == 2 {
			t.Fatalf("learned card leaked into view")
		}
	}
}
