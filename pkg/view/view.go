// Package view derives the ordered, filtered card list a renderer
// should display for a collection. The derivation is a pure function of
// (cards, persisted state, progress): the order itself is never stored,
// only the seed that reproduces it.
package view

import (
	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/shuffle"
	"tableflip.dev/kioku/pkg/state"
)

// View is the derived display list. Indices[i] is the original array
// position of Cards[i], so renderers can map a row back to the source
// card for writes. len(Cards) == len(Indices) always; IsShuffled
// mirrors OrderHash != nil.
type View struct {
	Cards      []card.Card `json:"cards"`
	Indices    []int       `json:"indices"`
	IsShuffled bool        `json:"isShuffled"`
	OrderHash  *uint32     `json:"order_hash_int"`
}

// Compose filters cards through the study filter and then, when a seed
// is persisted, applies the seeded permutation to the filtered subset.
// Filtering happens before permutation, so a fixed seed shuffles
// whatever subset the filter leaves. Compose never mutates its inputs
// and is idempotent: identical inputs yield identical output.
//
// tracker may be nil for collections that do not track progress; the
// filter then passes everything through.
func Compose(cards []card.Card, st state.State, tracker progress.Tracker) View {
	flags := st.Flags()

	base := cards
	indices := identity(len(cards))
	if flags.SkipLearned || flags.FocusOnly {
		base = make([]card.Card, 0, len(cards))
		indices = make([]int, 0, len(cards))
		for i, c := range cards {
			if progress.Visible(c, tracker, flags) {
				base = append(base, c)
				indices = append(indices, i)
			}
		}
	}

	if st.OrderHash == nil || len(base) == 0 {
		return View{Cards: base, Indices: indices}
	}

	seed := *st.OrderHash
	perm := shuffle.Permute(len(base), seed)
	shuffledCards := make([]card.Card, len(base))
	shuffledIndices := make([]int, len(base))
	for i, p := range perm {
		shuffledCards[i] = base[p]
		shuffledIndices[i] = indices[p]
	}
	return View{
		Cards:      shuffledCards,
		Indices:    shuffledIndices,
		IsShuffled: true,
		OrderHash:  &seed,
	}
}

func identity(n int) []int {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
