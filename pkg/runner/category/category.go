package category

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/store"
)

// Category records which study category a collection belongs to, which
// in turn decides its progress tracking and flashcard defaults.
type Category struct {
	Collection  string
	Category    collection.Category
	Persistence store.Persistence
}

func (c *Category) Do(ctx context.Context) error {
	if c.Persistence == nil {
		return errors.New("can not set category, no persistence")
	}
	if c.Collection == "" {
		return errors.New("collection required")
	}

	if _, ok := c.Persistence.Meta(ctx, c.Collection); !ok {
		return fmt.Errorf("unknown collection %q", c.Collection)
	}
	if err := c.Persistence.SetCollectionCategory(c.Collection, c.Category); err != nil {
		return err
	}
	fmt.Printf("%s: category set to %s\n", c.Collection, c.Category)
	return nil
}
