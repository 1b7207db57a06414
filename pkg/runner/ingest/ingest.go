package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/store"
)

// Ingest imports collection document files into the store, validating
// each document first.
type Ingest struct {
	Paths       []string
	DryRun      bool
	Persistence store.Persistence
}

func (n *Ingest) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	if len(n.Paths) == 0 {
		return errors.New("at least one document file required")
	}

	failed := 0
	for _, path := range n.Paths {
		doc, err := collection.ReadDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed++
			continue
		}
		if problems := doc.Validate(); len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, p)
			}
			failed++
			continue
		}
		if n.DryRun {
			fmt.Printf("%s: ok, %d cards (dry run)\n", doc.Name, len(doc.Cards))
			continue
		}
		if err := n.Persistence.Import(doc); err != nil {
			return err
		}
		fmt.Printf("%s: imported %d cards (%s)\n", doc.Name, len(doc.Cards), doc.Category)
	}

	if failed > 0 {
		return fmt.Errorf("%d document(s) failed to import", failed)
	}
	return nil
}
