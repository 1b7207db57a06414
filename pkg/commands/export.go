package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/export"
	"tableflip.dev/kioku/pkg/store"
)

func addExport(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	var path string

	cmd := &cobra.Command{
		Use:   "export [collection]",
		Short: "Write a collection back out as a document file.",
		Example: `
kioku export "JLPT N5"
kioku export "JLPT N5" --out n5.json
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				co.Collection = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			e := export.Export{
				Collection:  co.Collection,
				Path:        path,
				Persistence: p,
			}
			err = e.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)
	cmd.Flags().StringVar(&path, "out", "", "Output file path. Defaults to a slug of the collection name.")

	topLevel.AddCommand(cmd)
}
