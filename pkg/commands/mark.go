package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/commands/options"
	"tableflip.dev/kioku/pkg/runner/mark"
	"tableflip.dev/kioku/pkg/store"
)

func addLearn(topLevel *cobra.Command) {
	topLevel.AddCommand(markCommand(
		"learn",
		"Mark study keys as learned.",
		`
kioku learn 日 月 -c "JLPT N5"
kioku learn 日 -c "JLPT N5" --clear
`,
		mark.TagLearned,
	))
}

func addFocus(topLevel *cobra.Command) {
	topLevel.AddCommand(markCommand(
		"focus",
		"Mark study keys for focused review.",
		`
kioku focus 日 月 -c "JLPT N5"
kioku focus 日 -c "JLPT N5" --clear
`,
		mark.TagFocus,
	))
}

func markCommand(use, short, example string, tag mark.Tag) *cobra.Command {
	co := &options.CollectionOptions{}
	var clear bool

	cmd := &cobra.Command{
		Use:     use + " [key...]",
		Short:   short,
		Example: example,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			m := mark.Mark{
				Collection:  co.Collection,
				Keys:        args,
				Tag:         tag,
				Clear:       clear,
				Persistence: p,
			}
			err = m.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddCollectionArgs(cmd, co)
	cmd.Flags().BoolVar(&clear, "clear", false, "Remove the tag instead of adding it.")

	return cmd
}
