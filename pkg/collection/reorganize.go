package collection

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"tableflip.dev/kioku/pkg/card"
)

// Group is a run of cards sharing the same composite key value.
type Group struct {
	Key   string
	Cards []card.Card
}

// GroupCards clusters cards by the composite value of the given fields,
// preserving first-appearance order of groups and card order within a
// group. Cards missing every grouping field land in the "" group.
func GroupCards(cards []card.Card, fields []string) []Group {
	if len(fields) == 0 {
		return []Group{{Cards: cards}}
	}
	index := make(map[string]int)
	var groups []Group
	for _, c := range cards {
		key := compositeKey(c, fields)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Cards = append(groups[i].Cards, c)
	}
	return groups
}

func compositeKey(c card.Card, fields []string) string {
	parts := make([]string, 0, len(fields))
	empty := true
	for _, f := range fields {
		v := c.String(f)
		if v != "" {
			empty = false
		}
		parts = append(parts, v)
	}
	if empty {
		return ""
	}
	return strings.Join(parts, "|")
}

// LiftDefaults extracts fields whose value is identical across every
// card into a shared defaults card, returning the defaults and copies
// of the cards with those fields removed. Lifting an empty or
// single-card slice lifts nothing.
func LiftDefaults(cards []card.Card) (card.Card, []card.Card) {
	if len(cards) < 2 {
		return nil, cards
	}
	shared := make(card.Card)
	for k, v := range cards[0] {
		shared[k] = v
	}
	for _, c := range cards[1:] {
		for k, v := range shared {
			other, ok := c[k]
			if !ok || !reflect.DeepEqual(v, other) {
				delete(shared, k)
			}
		}
		if len(shared) == 0 {
			return nil, cards
		}
	}

	trimmed := make([]card.Card, len(cards))
	for i, c := range cards {
		out := c.Clone()
		for k := range shared {
			delete(out, k)
		}
		trimmed[i] = out
	}
	return shared, trimmed
}

// Reorganize splits a document into one consolidated document per
// group, lifting common fields of each group into that document's
// defaults. Grouping field values are themselves lifted, so the output
// documents carry the key in defaults instead of on every card.
func Reorganize(doc *Document, fields []string) []*Document {
	groups := GroupCards(doc.Cards, fields)
	out := make([]*Document, 0, len(groups))
	for _, g := range groups {
		defaults, cards := LiftDefaults(g.Cards)
		name := doc.Name
		if g.Key != "" {
			name = fmt.Sprintf("%s - %s", doc.Name, g.Key)
		}
		out = append(out, &Document{
			Name:     name,
			Category: doc.Category,
			Defaults: defaults,
			Cards:    cards,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
