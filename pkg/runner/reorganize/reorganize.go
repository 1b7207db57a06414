package reorganize

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/runner/export"
)

// Reorganize splits a document file into consolidated per-group files,
// lifting fields shared by a whole group into that group's defaults.
type Reorganize struct {
	Path    string
	GroupBy []string
	OutDir  string
	DryRun  bool
}

func (r *Reorganize) Do(ctx context.Context) error {
	if r.Path == "" {
		return errors.New("document file required")
	}
	if len(r.GroupBy) == 0 {
		return errors.New("at least one grouping field required")
	}

	doc, err := collection.ReadDocument(r.Path)
	if err != nil {
		return err
	}
	if problems := doc.Validate(); len(problems) > 0 {
		return fmt.Errorf("%s: %d validation problem(s), fix before reorganizing", r.Path, len(problems))
	}

	outDir := r.OutDir
	if outDir == "" {
		outDir = filepath.Dir(r.Path)
	}

	docs := collection.Reorganize(doc, r.GroupBy)
	for _, d := range docs {
		path := filepath.Join(outDir, export.Slug(d.Name)+".json")
		if r.DryRun {
			fmt.Printf("%s: %d cards, %d lifted defaults (dry run)\n", path, len(d.Cards), len(d.Defaults))
			continue
		}
		if err := collection.WriteDocument(path, d); err != nil {
			return err
		}
		fmt.Printf("%s: %d cards, %d lifted defaults\n", path, len(d.Cards), len(d.Defaults))
	}
	fmt.Printf("split %q into %d document(s)\n", doc.Name, len(docs))
	return nil
}
