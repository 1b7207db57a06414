package check

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/kioku/pkg/collection"
)

// Check validates collection document files without touching the store.
type Check struct {
	Paths []string
}

func (c *Check) Do(ctx context.Context) error {
	if len(c.Paths) == 0 {
		return errors.New("at least one document file required")
	}

	bad := 0
	for _, path := range c.Paths {
		doc, err := collection.ReadDocument(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			bad++
			continue
		}
		problems := doc.Validate()
		if len(problems) == 0 {
			fmt.Printf("%s: ok (%d cards, %s)\n", path, len(doc.Cards), doc.Category)
			continue
		}
		bad++
		for _, p := range problems {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, p)
		}
	}

	if bad > 0 {
		return fmt.Errorf("%d of %d document(s) failed validation", bad, len(c.Paths))
	}
	return nil
}
