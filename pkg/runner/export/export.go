package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/store"
)

// Export writes a stored collection back out as a document file.
type Export struct {
	Collection  string
	Path        string
	Persistence store.Persistence
}

func (e *Export) Do(ctx context.Context) error {
	if e.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	if e.Collection == "" {
		return errors.New("collection required")
	}

	meta, ok := e.Persistence.Meta(ctx, e.Collection)
	if !ok {
		return fmt.Errorf("unknown collection %q", e.Collection)
	}
	cards := e.Persistence.List(ctx, e.Collection)

	doc := &collection.Document{
		Name:     meta.Name,
		Category: meta.Category,
		Cards:    cards,
	}

	path := e.Path
	if path == "" {
		path = Slug(meta.Name) + ".json"
	}
	if err := collection.WriteDocument(path, doc); err != nil {
		return err
	}
	fmt.Printf("%s: wrote %d cards to %s\n", meta.Name, len(cards), path)
	return nil
}

// Slug converts a collection name into a safe file name stem.
func Slug(name string) string {
	mapped := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ', r == '/', r == '-':
			return '_'
		default:
			return r
		}
	}, strings.TrimSpace(name))
	return strings.Trim(mapped, "_")
}
