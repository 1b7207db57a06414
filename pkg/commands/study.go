package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/study"
	"tableflip.dev/kioku/pkg/store"
)

func addStudy(topLevel *cobra.Command) {
	co := &options.CollectionOptions{}
	var front, back []string

	cmd := &cobra.Command{
		Use:   "study [collection]",
		Short: "Flip through a collection as flashcards.",
		Example: `
kioku study "JLPT N5"
kioku study "JLPT N5" --front kanji --back kana,meaning
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
			s := study.Study{
				Collection:  co.Collection,
				Front:       front,
				Back:        back,
				Persistence: p,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)
	cmd.Flags().StringSliceVar(&front, "front", nil, "Fields shown before reveal.")
	cmd.Flags().StringSliceVar(&back, "back", nil, "Fields shown after reveal.")

	topLevel.AddCommand(cmd)
}
