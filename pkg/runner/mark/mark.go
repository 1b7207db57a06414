package mark

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/store"
)

// Tag selects which progress tag a Mark run updates.
type Tag string

const (
	TagLearned Tag = "learned"
	TagFocus   Tag = "focus"
)

// Mark applies or clears a progress tag for study keys. The keys are
// global to the tracker kind, so marking 日 learned hides it in every
// vocabulary collection that filters learned cards.
type Mark struct {
	Collection  string
	Keys        []string
	Tag         Tag
	Clear       bool
	Persistence store.Persistence
}

func (m *Mark) Do(ctx context.Context) error {
	if m.Persistence == nil {
		return errors.New("can not mark, no persistence")
	}
	if len(m.Keys) == 0 {
		return errors.New("at least one study key required")
	}

	meta, ok := m.Persistence.Meta(ctx, m.Collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", m.Collection)
	}
	kind := progress.KindForCategory(meta.Category)
	if kind == "" {
		return fmt.Errorf("collection %q (%s) does not track progress", m.Collection, meta.Category)
	}

	book, err := m.Persistence.Progress(kind)
	if err != nil {
		return err
	}

	for _, key := range m.Keys {
		switch {
		case m.Tag == TagLearned && m.Clear:
			book.ClearLearned(key)
		case m.Tag == TagLearned:
			book.MarkLearned(key)
		case m.Tag == TagFocus && m.Clear:
			book.ClearFocus(key)
		case m.Tag == TagFocus:
			book.MarkFocus(key)
		default:
			return fmt.Errorf("unknown tag %q", m.Tag)
		}
	}

	if err := m.Persistence.SaveProgress(book); err != nil {
		return err
	}

	verb := "marked"
	if m.Clear {
		verb = "cleared"
	}
	fmt.Printf("%s %d %s key(s) for %s\n", verb, len(m.Keys), m.Tag, kind)
	return nil
}
