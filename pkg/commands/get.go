package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/get"
	"tableflip.dev/kioku/pkg/store"
)

func addGet(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	do := &options.DisplayOptions{}

	cmd := &cobra.Command{
		Use:   "get [collection]",
		Short: "Show a collection in its current view order.",
		Example: `
kioku get "JLPT N5"
kioku get --all
kioku get --list
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
			g := get.Get{
				Collection:      co.Collection,
				All:             co.All,
				ListCollections: co.List,
				ShowIndex:       do.ShowIndex,
				Fields:          do.Fields,
				Persistence:     p,
			}
			if co.All {
				g.Collection = ""
			}
			err = g.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)
	options.AddAllCollectionsArg(cmd, co)
	options.AddDisplayArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
