package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/filter"
	"tableflip.dev/kioku/pkg/store"
)

func addFilter(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	var skipLearned, focusOnly, clear bool

	cmd := &cobra.Command{
		Use:   "filter [collection]",
		Short: "Set the study filter for a collection.",
		Example: `
kioku filter "JLPT N5" --skip-learned
kioku filter "JLPT N5" --focus-only
kioku filter "JLPT N5" --clear
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
			f := filter.Filter{
				Collection:  co.Collection,
				SkipLearned: skipLearned,
				FocusOnly:   focusOnly,
				Clear:       clear,
				Persistence: p,
			}
			err = f.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)
	cmd.Flags().BoolVar(&skipLearned, "skip-learned", false, "Hide cards already marked learned.")
	cmd.Flags().BoolVar(&focusOnly, "focus-only", false, "Show only cards marked for focus.")
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the study filter.")

	topLevel.AddCommand(cmd)
}
