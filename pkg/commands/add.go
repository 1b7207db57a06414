package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/add"
	"tableflip.dev/kioku/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}

	cmd := &cobra.Command{
		Use:   "add [field=value...]",
		Short: "Append one card to a collection.",
		Example: `
kioku add kanji=日 kana=ひ meaning=sun -c "JLPT N5"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			a := add.Add{
				Collection:  co.Collection,
				Fields:      args,
				Persistence: p,
			}
			err = a.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
