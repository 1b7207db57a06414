package collection

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"tableflip.dev/kioku/pkg/card"
)

func TestReadDocumentMergesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "n5.json")
	doc := `{
  "name": "JLPT N5 Vocabulary",
  "category": "vocabulary",
  "defaults": {"level": "N5", "source": "minna"},
  "cards": [
    {"kanji": "日", "kana": "ひ", "meaning": "sun"},
    {"kanji": "月", "kana": "つき", "meaning": "moon", "source": "genki"}
  ]
}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if got.Name != "JLPT N5 Vocabulary" || got.Category != CategoryVocabulary {
		t.Fatalf("unexpected header: %q %q", got.Name, got.Category)
	}
	if got.Cards[0].String("level") != "N5" {
		t.Fatalf("default not merged: %+v", got.Cards[0])
	}
	// A card's own value wins over the default.
	if got.Cards[1].String("source") != "genki" {
		t.Fatalf("card value overridden by default: %+v", got.Cards[1])
	}
}

func TestReadDocumentGuessesCategory(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		body string
		want Category
	}{
		{body: `{"name":"g","cards":[{"pattern":"〜ば","meaning":"if"}]}`, want: CategoryGrammar},
		{body: `{"name":"v","cards":[{"kanji":"日"}]}`, want: CategoryVocabulary},
		{body: `{"name":"t","cards":[{"question":"q","answer":"a"}]}`, want: CategoryTrivia},
		{body: `{"name":"x","cards":[{"note":"n"}]}`, want: CategoryGeneric},
	}
	for i, tc := range tests {
		path := filepath.Join(dir, "doc"+string(rune('a'+i))+".json")
		if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
		doc, err := ReadDocument(path)
		if err != nil {
			t.Fatalf("ReadDocument: %v", err)
		}
		if doc.Category != tc.want {
			t.Fatalf("guessed %q, want %q", doc.Category, tc.want)
		}
	}
}

func TestWriteDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	doc := &Document{
		Name:     "Trivia",
		Category: CategoryTrivia,
		Cards: []card.Card{
			{"question": "Which generation introduced Sinnoh?", "answer": "fourth"},
		},
	}
	if err := WriteDocument(path, doc); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	got, err := ReadDocument(path)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !reflect.DeepEqual(got.Cards, doc.Cards) {
		t.Fatalf("round trip mismatch: %+v", got.Cards)
	}
}

func TestValidate(t *testing.T) {
	doc := &Document{
		Name:     "N5",
		Category: CategoryVocabulary,
		Cards: []card.Card{
			{"kanji": "日", "meaning": "sun"},
			{"kanji": "日", "meaning": "day"},
			{"kanji": "月", "nested": map[string]any{"bad": true}},
			{},
		},
	}
	problems := doc.Validate()
	if len(problems) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(problems), problems)
	}
	var texts []string
	for _, p := range problems {
		texts = append(texts, p.String())
	}
	joined := strings.Join(texts, "\n")
	for _, want := range []string{"duplicate study key", "primitive", "no fields"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in problems:\n%s", want, joined)
		}
	}
}

func TestValidateEmptyName(t *testing.T) {
	doc := &Document{Cards: []card.Card{{"a": "b"}}}
	problems := doc.Validate()
	if len(problems) != 1 || !strings.Contains(problems[0].String(), "name required") {
		t.Fatalf("expected name problem, got %v", problems)
	}
}
