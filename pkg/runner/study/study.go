package study

import (
	"context"
	"errors"
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/store"
	"tableflip.dev/kioku/pkg/tui/flashcards"
	"tableflip.dev/kioku/pkg/view"
)

// Study opens the interactive flashcard deck for one collection. The
// deck starts in the composed view order, so the persisted seed and
// study filter apply here the same way they do for get.
type Study struct {
	Collection  string
	Front       []string
	Back        []string
	Persistence store.Persistence
}

func (s *Study) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not study, no persistence")
	}
	if s.Collection == "" {
		return errors.New("a collection is required")
	}

	meta, ok := s.Persistence.Meta(ctx, s.Collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", s.Collection)
	}

	cards := s.Persistence.List(ctx, s.Collection)
	st, err := s.Persistence.State(s.Collection)
	if err != nil {
		return err
	}

	var book *progress.Book
	var tracker progress.Tracker
	if kind := progress.KindForCategory(meta.Category); kind != "" {
		book, err = s.Persistence.Progress(kind)
		if err != nil {
			return err
		}
		tracker = book
	}

	v := view.Compose(cards, st, tracker)

	front, back := resolveSides(meta.Category, s.Front, s.Back, v.Cards)

	var save flashcards.SaveFunc
	if book != nil {
		save = func(b *progress.Book) error {
			return s.Persistence.SaveProgress(b)
		}
	}

	m := flashcards.New(s.Collection, v.Cards, front, back, book, save)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

// resolveSides fills in whichever sides the caller left unset. Each
// flag overrides only its own side: a bare --back keeps the category's
// default front, and a bare --front puts every remaining field on the
// back.
func resolveSides(cat collection.Category, front, back []string, cards []card.Card) ([]string, []string) {
	defFront, defBack := defaultSides(cat)
	switch {
	case len(front) == 0 && len(back) == 0:
		return defFront, defBack
	case len(front) == 0:
		return defFront, back
	case len(back) == 0:
		return front, remainingFields(cards, front)
	}
	return front, back
}

// defaultSides picks the front and back fields by category.
func defaultSides(cat collection.Category) (front, back []string) {
	switch cat {
	case collection.CategoryVocabulary:
		return []string{"kanji"}, []string{"kana", "meaning"}
	case collection.CategoryGrammar:
		return []string{"pattern"}, []string{"meaning", "example"}
	case collection.CategoryTrivia:
		return []string{"question"}, []string{"answer"}
	}
	return []string{"name"}, []string{"description"}
}

// remainingFields is the union of card fields not already on the front.
func remainingFields(cards []card.Card, front []string) []string {
	shown := make(map[string]bool, len(front))
	for _, f := range front {
		shown[f] = true
	}
	seen := make(map[string]bool)
	var back []string
	for _, c := range cards {
		for _, f := range c.Fields() {
			if !shown[f] && !seen[f] {
				seen[f] = true
				back = append(back, f)
			}
		}
	}
	sort.Strings(back)
	return back
}
