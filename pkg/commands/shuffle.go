package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/shuffle"
	"tableflip.dev/kioku/pkg/store"
)

func addShuffle(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	var seed uint32
	var clear bool

	cmd := &cobra.Command{
		Use:   "shuffle [collection]",
		Short: "Shuffle a collection with a persisted seed.",
		Example: `
kioku shuffle "JLPT N5"
kioku shuffle "JLPT N5" --seed 12345
kioku shuffle "JLPT N5" --clear
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
			s := shuffle.Shuffle{
				Collection:  co.Collection,
				Clear:       clear,
				Seed:        seed,
				HasSeed:     cmd.Flags().Changed("seed"),
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)
	cmd.Flags().Uint32Var(&seed, "seed", 0, "Use this seed instead of a random one.")
	cmd.Flags().BoolVar(&clear, "clear", false, "Restore the natural card order.")

	topLevel.AddCommand(cmd)
}
