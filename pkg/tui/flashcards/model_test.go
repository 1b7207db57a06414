package flashcards

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/progress"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func testDeck() ([]card.Card, *progress.Book) {
	cards := []card.Card{
		{"kanji": "日", "kana": "ひ", "meaning": "sun"},
		{"kanji": "月", "kana": "つき", "meaning": "moon"},
		{"kanji": "火", "kana": "ひ", "meaning": "fire"},
	}
	return cards, progress.NewVocabularyBook()
}

func update(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("update returned unexpected model type %T", next)
		}
	}
	return m
}

func TestViewHidesBackUntilRevealed(t *testing.T) {
	cards, book := testDeck()
	m := New("JLPT N5", cards, []string{"kanji"}, []string{"kana", "meaning"}, book, nil)

	out := m.View()
	if !strings.Contains(out, "日") {
		t.Fatalf("front field missing:\n%s", out)
	}
	if strings.Contains(out, "sun") {
		t.Fatalf("back field leaked before reveal:\n%s", out)
	}

	m = update(t, m, key(" "))
	out = m.View()
	if !strings.Contains(out, "sun") {
		t.Fatalf("back field missing after reveal:\n%s", out)
	}
}

func TestNavigationBoundsAndRevealReset(t *testing.T) {
	cards, book := testDeck()
	m := New("JLPT N5", cards, []string{"kanji"}, []string{"meaning"}, book, nil)

	m = update(t, m, key("p"))
	if m.idx != 0 {
		t.Fatalf("prev on first card moved to %d", m.idx)
	}

	m = update(t, m, key(" "), key("n"))
	if m.idx != 1 {
		t.Fatalf("expected second card, got %d", m.idx)
	}
	if m.revealed {
		t.Fatalf("reveal should reset on navigation")
	}

	m = update(t, m, key("n"), key("n"))
	if m.idx != 2 {
		t.Fatalf("next on last card moved to %d", m.idx)
	}
}

func TestLearnedToggleUpdatesBook(t *testing.T) {
	cards, book := testDeck()
	saved := 0
	save := func(b *progress.Book) error { saved++; return nil }
	m := New("JLPT N5", cards, []string{"kanji"}, []string{"meaning"}, book, save)

	m = update(t, m, key("l"))
	if !book.Learned("日") {
		t.Fatalf("expected 日 learned")
	}
	m = update(t, m, key("l"))
	if book.Learned("日") {
		t.Fatalf("expected 日 unlearned after second toggle")
	}
	if saved != 2 {
		t.Fatalf("expected 2 saves, got %d", saved)
	}
}

func TestFocusToggleShowsTag(t *testing.T) {
	cards, book := testDeck()
	m := New("JLPT N5", cards, []string{"kanji"}, []string{"meaning"}, book, nil)

	m = update(t, m, key("f"))
	if !book.Focus("日") {
		t.Fatalf("expected 日 in focus")
	}
	if out := m.View(); !strings.Contains(out, "focus") {
		t.Fatalf("focus tag not rendered:\n%s", out)
	}
}

func TestReshuffleKeepsDeckMembership(t *testing.T) {
	cards, book := testDeck()
	m := New("JLPT N5", cards, []string{"kanji"}, []string{"meaning"}, book, nil)

	m = update(t, m, key("s"))
	if m.idx != 0 || m.revealed {
		t.Fatalf("reshuffle should rewind the deck")
	}
	if len(m.cards) != len(cards) {
		t.Fatalf("reshuffle changed deck size")
	}
	seen := make(map[string]bool)
	for _, c := range m.cards {
		seen[c.String("kanji")] = true
	}
	for _, c := range cards {
		if !seen[c.String("kanji")] {
			t.Fatalf("card %s lost in reshuffle", c.String("kanji"))
		}
	}
}

func TestEmptyDeck(t *testing.T) {
	m := New("JLPT N5", nil, []string{"kanji"}, nil, nil, nil)
	if out := m.View(); !strings.Contains(out, "nothing to study") {
		t.Fatalf("unexpected empty view:\n%s", out)
	}
	// Keys on an empty deck must not panic.
	m = update(t, m, key("n"), key("l"), key("s"), key(" "))
	_ = m.View()
}
