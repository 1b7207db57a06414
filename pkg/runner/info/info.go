package info

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kioku/pkg/printers"
	"tableflip.dev/kioku/pkg/progress"
	"tableflip.dev/kioku/pkg/store"
)

// Info prints aggregate stats per collection: card counts plus how many
// of the collection's study keys carry learned/focus tags.
type Info struct {
	Persistence store.Persistence
}

func (i *Info) Do(ctx context.Context) error {
	if i.Persistence == nil {
		return errors.New("can not get info, no persistence")
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")

	books := make(map[progress.Kind]*progress.Book)
	for _, meta := range i.Persistence.CollectionsMeta(ctx, "") {
		cards := i.Persistence.List(ctx, meta.Name)

		kind := progress.KindForCategory(meta.Category)
		if kind == "" {
			pp.Summary(meta.Name, string(meta.Category), len(cards), -1, -1)
			continue
		}

		book, ok := books[kind]
		if !ok {
			var err error
			book, err = i.Persistence.Progress(kind)
			if err != nil {
				return err
			}
			books[kind] = book
		}

		learned, focus := 0, 0
		for _, c := range cards {
			key := book.Key(c)
			if key == "" {
				continue
			}
			if book.Learned(key) {
				learned++
			}
			if book.Focus(key) {
				focus++
			}
		}
		pp.Summary(meta.Name, string(meta.Category), len(cards), learned, focus)
	}
	return nil
}
