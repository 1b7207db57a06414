package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/kioku/pkg/runner/check"
)

func addCheck(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Validate collection documents without importing them.",
		Example: `
kioku check n5.json
kioku check data/*.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := check.Check{
				Paths: args,
			}
			err := c.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
