package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/collection"
	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/category"
	"tableflip.dev/kioku/pkg/store"
)

func addCategory(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	var cat collection.Category

	validArgs := make([]string, 0, 4)
	for _, c := range collection.AllCategories() {
		validArgs = append(validArgs, string(c))
	}

	cmd := &cobra.Command{
		Use:   "category [category]",
		Short: "Set a collection's study category.",
		Example: `
kioku category vocabulary -c "JLPT N5"
kioku category trivia -c "Pokemon"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.ExactArgs(1)(cmd, args); err != nil {
				return err
			}
			var err error
			cat, err = collection.ParseCategory(args[0])
			return err
		},
		ValidArgs: validArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			c := category.Category{
				Collection:  co.Collection,
				Category:    cat,
				Persistence: p,
			}
			err = c.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
