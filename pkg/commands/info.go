package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/runner/info"
	"tableflip.dev/kioku/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Summarize collections and study progress.",
		Example: `
kioku info
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := info.Info{
				Persistence: p,
			}
			err = i.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
