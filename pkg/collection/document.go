package collection

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/kioku/pkg/card"
)

// Document is the on-disk JSON interchange format for a collection:
// hand-authored card files that get imported into (or exported from)
// the store. Defaults hold field values shared by every card in the
// document; a card's own value always wins over a default.
type Document struct {
	Name     string      `json:"name"`
	Category Category    `json:"category,omitempty"`
	Defaults card.Card   `json:"defaults,omitempty"`
	Cards    []card.Card `json:"cards"`
}

// ReadDocument loads and normalises a document file: defaults are
// merged into every card and a missing category is guessed from the
// card fields.
func ReadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("collection: read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("collection: parse %s: %w", path, err)
	}
	doc.ApplyDefaults()
	if doc.Category == "" {
		doc.Category = GuessCategory(doc.fieldNames())
	}
	return &doc, nil
}

// WriteDocument writes the document as indented JSON, atomically.
func WriteDocument(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("collection: marshal %s: %w", doc.Name, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// ApplyDefaults merges document defaults into each card. Card values
// win over defaults.
func (d *Document) ApplyDefaults() {
	if len(d.Defaults) == 0 {
		return
	}
	for i, c := range d.Cards {
		merged := make(card.Card, len(c)+len(d.Defaults))
		for k, v := range d.Defaults {
			merged[k] = v
		}
		for k, v := range c {
			merged[k] = v
		}
		d.Cards[i] = merged
	}
}

// fieldNames returns the union of field names across all cards.
func (d *Document) fieldNames() []string {
	seen := make(map[string]bool)
	var fields []string
	for _, c := range d.Cards {
		for k := range c {
			if !seen[k] {
				seen[k] = true
				fields = append(fields, k)
			}
		}
	}
	return fields
}

// KeyField returns the field a category uses to correlate progress, or
// "" when the category does not track progress.
func (c Category) KeyField() string {
	switch c {
	case CategoryVocabulary:
		return "kanji"
	case CategoryGrammar:
		return "pattern"
	default:
		return ""
	}
}

// Problem describes one validation finding. Card is -1 for findings
// that concern the document as a whole.
type Problem struct {
	Card  int
	Field string
	Msg   string
}

func (p Problem) String() string {
	if p.Card < 0 {
		return p.Msg
	}
	if p.Field != "" {
		return fmt.Sprintf("card %d, field %q: %s", p.Card, p.Field, p.Msg)
	}
	return fmt.Sprintf("card %d: %s", p.Card, p.Msg)
}

// Validate checks the document against the authoring rules: a non-empty
// name, a known category, flat primitive-or-primitive-array card
// values, and no duplicate study keys for categories that track
// progress.
func (d *Document) Validate() []Problem {
	var problems []Problem
	if strings.TrimSpace(d.Name) == "" {
		problems = append(problems, Problem{Card: -1, Msg: "document name required"})
	}
	if d.Category != "" {
		if _, err := ParseCategory(string(d.Category)); err != nil {
			problems = append(problems, Problem{Card: -1, Msg: err.Error()})
		}
	}
	for k, v := range d.Defaults {
		if !card.ValidValue(v) {
			problems = append(problems, Problem{Card: -1, Field: k, Msg: "default value must be a primitive or array of primitives"})
		}
	}

	keyField := d.Category.KeyField()
	keys := make(map[string]int)

	for i, c := range d.Cards {
		if len(c) == 0 {
			problems = append(problems, Problem{Card: i, Msg: "card has no fields"})
			continue
		}
		for k, v := range c {
			if strings.TrimSpace(k) == "" {
				problems = append(problems, Problem{Card: i, Msg: "empty field name"})
			}
			if !card.ValidValue(v) {
				problems = append(problems, Problem{Card: i, Field: k, Msg: "value must be a primitive or array of primitives"})
			}
		}
		if keyField == "" {
			continue
		}
		key, _ := c[keyField].(string)
		if key == "" {
			continue
		}
		if prev, dup := keys[key]; dup {
			problems = append(problems, Problem{Card: i, Field: keyField, Msg: fmt.Sprintf("duplicate study key %q (first seen in card %d)", key, prev)})
			continue
		}
		keys[key] = i
	}
	return problems
}
