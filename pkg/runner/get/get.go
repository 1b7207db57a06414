package get

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kioku/pkg/card"
	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/printers"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/store"
	"tableflip.dev/kioku/pkg/view"
)

// Get prints one collection (or all of them) through the view composer,
// honoring the persisted shuffle seed and study filter.
type Get struct {
	Collection      string
	All             bool
	ListCollections bool
	ShowIndex       bool
	Fields          []string
	Persistence     store.Persistence
}

func (g *Get) Do(ctx context.Context) error {
	if g.Persistence == nil {
		return errors.New("can not get, no persistence")
	}

	pp := printers.PrettyPrint{ShowIndex: g.ShowIndex, Fields: g.Fields}
	fmt.Println("")

	if g.ListCollections {
		for _, meta := range g.Persistence.CollectionsMeta(ctx, "") {
			fmt.Printf("%s (%s)\n", meta.Name, meta.Category)
		}
		return nil
	}

	if g.All || g.Collection == "" {
		all := g.Persistence.MapAll(ctx)
		for _, meta := range g.Persistence.CollectionsMeta(ctx, "") {
			if err := g.print(&pp, meta, all[meta.Name]); err != nil {
				return err
			}
		}
		return nil
	}

	meta, ok := g.Persistence.Meta(ctx, g.Collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", g.Collection)
	}
	return g.print(&pp, meta, g.Persistence.List(ctx, g.Collection))
}

func (g *Get) print(pp *printers.PrettyPrint, meta collection.Meta, cards []card.Card) error {
	st, err := g.Persistence.State(meta.Name)
	if err != nil {
		return err
	}

	var tracker progress.Tracker
	if kind := progress.KindForCategory(meta.Category); kind != "" {
		book, err := g.Persistence.Progress(kind)
		if err != nil {
			return err
		}
		tracker = book
	}

	v := view.Compose(cards, st, tracker)
	pp.Title(meta.Name, v, st.StudyFilter)
	pp.View(v)
	return nil
}
